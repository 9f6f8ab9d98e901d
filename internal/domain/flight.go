package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Flight struct {
	FlightNumber   string    `json:"flight_number"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	SeatCapacity   int       `json:"seat_capacity"`
	AvailableSeats int       `json:"available_seats"`
	Bookings       []Booking `json:"bookings"`
	CreatedAt      time.Time `json:"created_at"`
}

// NormalizeFlightNumber returns the canonical registry key for a flight number.
func NormalizeFlightNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

// NormalizePlace title-cases an origin or destination for display.
// A Caser is stateful, so one is built per call.
func NormalizePlace(place string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(place))
}
