package repository

import (
	"fmt"
	"sync"

	"github.com/Domenick1991/seatbooking/internal/domain"
)

type AccountRepository interface {
	Create(account domain.Account) error
	FindByUsername(username string) (domain.Account, bool)
}

type AccountRegistry struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

func NewAccountRegistry() *AccountRegistry {
	return &AccountRegistry{accounts: make(map[string]domain.Account)}
}

// Create stores the account unless the username is taken. The existence check
// and insert happen under one lock.
func (r *AccountRegistry) Create(account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Username]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateUsername, account.Username)
	}
	r.accounts[account.Username] = account
	return nil
}

func (r *AccountRegistry) FindByUsername(username string) (domain.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[username]
	return account, ok
}

var _ AccountRepository = (*AccountRegistry)(nil)
