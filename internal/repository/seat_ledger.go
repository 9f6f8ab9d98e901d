package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
)

// SeatLedger is the authoritative seat state of one flight. Every check-then-act
// sequence runs under mu, so concurrent bookings against the same flight serialize
// while unrelated flights proceed independently.
type SeatLedger struct {
	mu sync.Mutex

	flightNumber string
	origin       string
	destination  string
	capacity     int
	available    int
	bookings     map[domain.Seat]domain.Booking
	createdAt    time.Time

	now func() time.Time
}

// NewSeatLedger creates an empty ledger. Capacity is taken as given: a
// non-positive capacity produces a flight that accepts no bookings.
func NewSeatLedger(flightNumber, origin, destination string, capacity int) *SeatLedger {
	return &SeatLedger{
		flightNumber: flightNumber,
		origin:       origin,
		destination:  destination,
		capacity:     capacity,
		available:    capacity,
		bookings:     make(map[domain.Seat]domain.Booking),
		createdAt:    time.Now(),
		now:          time.Now,
	}
}

func (l *SeatLedger) FlightNumber() string {
	return l.flightNumber
}

// BookSeat assigns the seat to the passenger. It fails with a wrapped
// domain.ErrSeatUnavailable, checked in this order, when the flight is full,
// the label is not a seat of this flight, or the seat is taken. Nothing
// changes on failure.
func (l *SeatLedger) BookSeat(passenger, label string) (domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.available <= 0 {
		return domain.Booking{}, fmt.Errorf("%w: flight %s is full", domain.ErrSeatUnavailable, l.flightNumber)
	}
	seat, err := domain.ParseSeat(label, l.capacity)
	if err != nil {
		return domain.Booking{}, err
	}
	if _, taken := l.bookings[seat]; taken {
		return domain.Booking{}, fmt.Errorf("%w: seat %s already booked", domain.ErrSeatUnavailable, seat)
	}

	booking := domain.Booking{
		FlightNumber: l.flightNumber,
		Seat:         seat,
		Passenger:    passenger,
		BookedAt:     l.now(),
	}
	l.bookings[seat] = booking
	l.available--
	l.checkInvariant()
	return booking, nil
}

// CancelBooking releases a booked seat and returns the booking it held.
func (l *SeatLedger) CancelBooking(label string) (domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	seat, err := domain.ParseSeat(label, l.capacity)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("%w: seat %q", domain.ErrSeatNotBooked, label)
	}
	booking, ok := l.bookings[seat]
	if !ok {
		return domain.Booking{}, fmt.Errorf("%w: seat %s", domain.ErrSeatNotBooked, seat)
	}
	delete(l.bookings, seat)
	l.available++
	l.checkInvariant()
	return booking, nil
}

// AvailableSeats lists free seat labels in ascending order. It is recomputed
// from the booking map on every call.
func (l *SeatLedger) AvailableSeats() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	seats := make([]string, 0, max(l.available, 0))
	for s := domain.Seat(1); int(s) <= l.capacity; s++ {
		if _, taken := l.bookings[s]; !taken {
			seats = append(seats, s.String())
		}
	}
	return seats
}

// Snapshot returns a copy of the ledger state that is safe to hand out.
func (l *SeatLedger) Snapshot() domain.Flight {
	l.mu.Lock()
	defer l.mu.Unlock()

	bookings := make([]domain.Booking, 0, len(l.bookings))
	for _, b := range l.bookings {
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Seat < bookings[j].Seat })

	return domain.Flight{
		FlightNumber:   l.flightNumber,
		Origin:         l.origin,
		Destination:    l.destination,
		SeatCapacity:   l.capacity,
		AvailableSeats: l.available,
		Bookings:       bookings,
		CreatedAt:      l.createdAt,
	}
}

// checkInvariant must be called with mu held. A mismatch is a programming
// error, not a booking outcome.
func (l *SeatLedger) checkInvariant() {
	if l.available != l.capacity-len(l.bookings) || l.available < 0 || l.available > l.capacity {
		panic(fmt.Sprintf("seat ledger %s corrupted: capacity=%d available=%d booked=%d",
			l.flightNumber, l.capacity, l.available, len(l.bookings)))
	}
}
