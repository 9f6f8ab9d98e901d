package repository

import (
	"fmt"
	"sync"

	"github.com/Domenick1991/seatbooking/internal/domain"
)

type FlightRepository interface {
	AddFlight(flightNumber, origin, destination string, capacity int) (domain.Flight, error)
	GetFlight(flightNumber string) (domain.Flight, error)
	ListFlights() []domain.Flight
	ListAvailableSeats(flightNumber string) ([]string, error)
	BookSeat(flightNumber, passenger, seat string) (domain.Booking, error)
	CancelSeat(flightNumber, seat string) (domain.Booking, error)
	Seed(flights []SeedFlight) int
}

// SeedFlight describes a flight inserted at startup when absent.
type SeedFlight struct {
	FlightNumber string `yaml:"flight_number"`
	Origin       string `yaml:"origin"`
	Destination  string `yaml:"destination"`
	SeatCapacity int    `yaml:"seat_capacity"`
}

// DefaultFlights are the demo flights seeded when no others are configured.
var DefaultFlights = []SeedFlight{
	{FlightNumber: "AI101", Origin: "Mumbai", Destination: "Delhi", SeatCapacity: 6},
	{FlightNumber: "6E220", Origin: "Bengaluru", Destination: "Hyderabad", SeatCapacity: 4},
}

// FlightRegistry owns every SeatLedger, keyed by canonical flight number.
// mu guards the map and insertion order only; seat state is locked per ledger.
type FlightRegistry struct {
	mu      sync.RWMutex
	ledgers map[string]*SeatLedger
	order   []string
}

func NewFlightRegistry() *FlightRegistry {
	return &FlightRegistry{ledgers: make(map[string]*SeatLedger)}
}

func (r *FlightRegistry) AddFlight(flightNumber, origin, destination string, capacity int) (domain.Flight, error) {
	key := domain.NormalizeFlightNumber(flightNumber)
	ledger := NewSeatLedger(key, domain.NormalizePlace(origin), domain.NormalizePlace(destination), capacity)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ledgers[key]; exists {
		return domain.Flight{}, fmt.Errorf("%w: %s", domain.ErrDuplicateFlight, key)
	}
	r.ledgers[key] = ledger
	r.order = append(r.order, key)
	return ledger.Snapshot(), nil
}

// Ledger returns the live ledger for a flight number in any casing.
func (r *FlightRegistry) Ledger(flightNumber string) (*SeatLedger, bool) {
	key := domain.NormalizeFlightNumber(flightNumber)

	r.mu.RLock()
	defer r.mu.RUnlock()

	ledger, ok := r.ledgers[key]
	return ledger, ok
}

func (r *FlightRegistry) GetFlight(flightNumber string) (domain.Flight, error) {
	ledger, err := r.find(flightNumber)
	if err != nil {
		return domain.Flight{}, err
	}
	return ledger.Snapshot(), nil
}

// ListFlights returns snapshots in insertion order.
func (r *FlightRegistry) ListFlights() []domain.Flight {
	r.mu.RLock()
	ledgers := make([]*SeatLedger, 0, len(r.order))
	for _, key := range r.order {
		ledgers = append(ledgers, r.ledgers[key])
	}
	r.mu.RUnlock()

	flights := make([]domain.Flight, 0, len(ledgers))
	for _, l := range ledgers {
		flights = append(flights, l.Snapshot())
	}
	return flights
}

func (r *FlightRegistry) ListAvailableSeats(flightNumber string) ([]string, error) {
	ledger, err := r.find(flightNumber)
	if err != nil {
		return nil, err
	}
	return ledger.AvailableSeats(), nil
}

func (r *FlightRegistry) BookSeat(flightNumber, passenger, seat string) (domain.Booking, error) {
	ledger, err := r.find(flightNumber)
	if err != nil {
		return domain.Booking{}, err
	}
	return ledger.BookSeat(passenger, seat)
}

func (r *FlightRegistry) CancelSeat(flightNumber, seat string) (domain.Booking, error) {
	ledger, err := r.find(flightNumber)
	if err != nil {
		return domain.Booking{}, err
	}
	return ledger.CancelBooking(seat)
}

// Seed inserts each flight whose number is not yet registered and reports how
// many were added. Calling it again is a no-op.
func (r *FlightRegistry) Seed(flights []SeedFlight) int {
	added := 0
	for _, f := range flights {
		if _, err := r.AddFlight(f.FlightNumber, f.Origin, f.Destination, f.SeatCapacity); err == nil {
			added++
		}
	}
	return added
}

func (r *FlightRegistry) find(flightNumber string) (*SeatLedger, error) {
	ledger, ok := r.Ledger(flightNumber)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFlightNotFound, domain.NormalizeFlightNumber(flightNumber))
	}
	return ledger, nil
}

var _ FlightRepository = (*FlightRegistry)(nil)
