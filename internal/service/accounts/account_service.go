package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/Domenick1991/seatbooking/internal/metrics"
	"github.com/Domenick1991/seatbooking/internal/repository"
)

type AccountUseCase interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type AccountService struct {
	accounts repository.AccountRepository
	hasher   PasswordHasher
	logger   *slog.Logger
	metrics  *metrics.Metrics

	// dummyHash is verified against for unknown usernames so both failure
	// paths cost one bcrypt comparison.
	dummyOnce sync.Once
	dummyHash string
}

type AccountServiceOption func(*AccountService)

func WithLogger(logger *slog.Logger) AccountServiceOption {
	return func(s *AccountService) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) AccountServiceOption {
	return func(s *AccountService) {
		s.metrics = m
	}
}

func NewAccountService(accounts repository.AccountRepository, hasher PasswordHasher, opts ...AccountServiceOption) *AccountService {
	service := &AccountService{accounts: accounts, hasher: hasher, logger: slog.Default()}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *AccountService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if _, exists := s.accounts.FindByUsername(username); exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateUsername, username)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	// Create repeats the uniqueness check under the registry lock.
	if err := s.accounts.Create(domain.Account{Username: username, PasswordHash: hash, CreatedAt: time.Now()}); err != nil {
		return err
	}

	s.metrics.IncAccountsRegistered()
	s.logger.InfoContext(ctx, "account registered", "username", username)
	return nil
}

// Authenticate succeeds only for an existing username whose password matches
// exactly. Every mismatch is reported as domain.ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) error {
	account, ok := s.accounts.FindByUsername(username)
	if !ok {
		_ = s.hasher.Verify(password, s.fallbackHash())
		s.metrics.IncFailedLogins()
		return domain.ErrInvalidCredentials
	}

	if err := s.hasher.Verify(password, account.PasswordHash); err != nil {
		s.metrics.IncFailedLogins()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return domain.ErrInvalidCredentials
		}
		return err
	}
	return nil
}

func (s *AccountService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("seatbooking-unknown-account")
		if err != nil {
			s.logger.Warn("could not prepare fallback hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

var _ AccountUseCase = (*AccountService)(nil)
