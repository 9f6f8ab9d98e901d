package domain

import "errors"

// Expected, recoverable outcomes. Callers match them with errors.Is; the wrapped
// message carries the specific cause.
var (
	ErrDuplicateFlight    = errors.New("flight already exists")
	ErrFlightNotFound     = errors.New("flight not found")
	ErrSeatUnavailable    = errors.New("seat not available")
	ErrSeatNotBooked      = errors.New("seat not booked")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrInvalidFlight = errors.New("invalid flight")
	ErrInvalidInput  = errors.New("invalid input")
)
