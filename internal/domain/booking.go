package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Seat is a 1-based seat index within a flight. Labels only exist at the boundary.
type Seat int

// ParseSeat converts a seat label into a Seat within [1, capacity].
// Malformed and out-of-range labels are both rejected with ErrSeatUnavailable.
func ParseSeat(label string, capacity int) (Seat, error) {
	n, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil {
		return 0, fmt.Errorf("%w: seat %q is not a number", ErrSeatUnavailable, label)
	}
	if n < 1 || n > capacity {
		return 0, fmt.Errorf("%w: seat %d outside 1..%d", ErrSeatUnavailable, n, capacity)
	}
	return Seat(n), nil
}

func (s Seat) String() string {
	return strconv.Itoa(int(s))
}

func (s Seat) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Seat) UnmarshalText(text []byte) error {
	n, err := strconv.Atoi(string(text))
	if err != nil {
		return fmt.Errorf("decode seat %q: %w", text, err)
	}
	*s = Seat(n)
	return nil
}

type Booking struct {
	FlightNumber string    `json:"flight_number"`
	Seat         Seat      `json:"seat"`
	Passenger    string    `json:"passenger"`
	BookedAt     time.Time `json:"booked_at"`
}
