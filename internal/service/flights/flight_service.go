package flights

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/Domenick1991/seatbooking/internal/metrics"
	"github.com/Domenick1991/seatbooking/internal/repository"
)

type FlightUseCase interface {
	AddFlight(ctx context.Context, input AddFlightInput) (*domain.Flight, error)
	GetFlight(ctx context.Context, flightNumber string) (*domain.Flight, error)
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	ListAvailableSeats(ctx context.Context, flightNumber string) ([]string, error)
	SeedDefaults(ctx context.Context, flights []repository.SeedFlight) int
}

// Cache is the read-through store for the flight listing. Every invalidation
// moves the version; SetFlights stores nothing unless the version is still the
// one read before the registry was listed.
type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	FlightsVersion(ctx context.Context) (int64, error)
	SetFlights(ctx context.Context, version int64, flights []domain.Flight) (bool, error)
	InvalidateFlights(ctx context.Context) error
}

type AddFlightInput struct {
	FlightNumber string `json:"flight_number"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	SeatCapacity int    `json:"seat_capacity"`
}

type FlightService struct {
	repo    repository.FlightRepository
	cache   Cache
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type FlightServiceOption func(*FlightService)

func WithLogger(logger *slog.Logger) FlightServiceOption {
	return func(s *FlightService) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) FlightServiceOption {
	return func(s *FlightService) {
		s.metrics = m
	}
}

// NewFlightService builds the flight catalog. cache may be nil.
func NewFlightService(repo repository.FlightRepository, cache Cache, opts ...FlightServiceOption) *FlightService {
	service := &FlightService{repo: repo, cache: cache, logger: slog.Default()}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *FlightService) AddFlight(ctx context.Context, input AddFlightInput) (*domain.Flight, error) {
	if domain.NormalizeFlightNumber(input.FlightNumber) == "" {
		return nil, fmt.Errorf("%w: flight number is required", domain.ErrInvalidFlight)
	}
	if input.SeatCapacity <= 0 {
		return nil, fmt.Errorf("%w: seat capacity must be positive", domain.ErrInvalidFlight)
	}

	flight, err := s.repo.AddFlight(input.FlightNumber, input.Origin, input.Destination, input.SeatCapacity)
	if err != nil {
		return nil, err
	}
	s.metrics.IncFlightsAdded()
	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "flight added",
		"flight_number", flight.FlightNumber,
		"origin", flight.Origin,
		"destination", flight.Destination,
		"seat_capacity", flight.SeatCapacity,
	)
	return &flight, nil
}

func (s *FlightService) GetFlight(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	flight, err := s.repo.GetFlight(flightNumber)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (s *FlightService) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	if s.cache == nil {
		return s.repo.ListFlights(), nil
	}

	cached, err := s.cache.GetFlights(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "flight cache read failed", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	// The version is read before the registry so that a mutation landing in
	// between makes the write below a no-op.
	version, err := s.cache.FlightsVersion(ctx)
	flights := s.repo.ListFlights()
	if err != nil {
		s.logger.WarnContext(ctx, "flight cache version read failed", "error", err)
		return flights, nil
	}
	stored, err := s.cache.SetFlights(ctx, version, flights)
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "flight cache write failed", "error", err)
	case !stored:
		s.logger.DebugContext(ctx, "flight listing changed while it was read, not cached")
	}
	return flights, nil
}

func (s *FlightService) ListAvailableSeats(ctx context.Context, flightNumber string) ([]string, error) {
	return s.repo.ListAvailableSeats(flightNumber)
}

// SeedDefaults inserts the given flights when absent and returns how many were added.
func (s *FlightService) SeedDefaults(ctx context.Context, flights []repository.SeedFlight) int {
	added := s.repo.Seed(flights)
	for i := 0; i < added; i++ {
		s.metrics.IncFlightsAdded()
	}
	if added > 0 {
		s.invalidate(ctx)
	}
	s.logger.InfoContext(ctx, "seeded flights", "added", added, "requested", len(flights))
	return added
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.logger.WarnContext(ctx, "flight cache invalidation failed", "error", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
