package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/seatbooking/internal/kafka"
)

// Sender turns seat events into passenger notices. Delivery is a structured log
// line; there is no outbound channel yet.
type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.SeatEvent) error {
	s.logger.InfoContext(ctx, Message(event),
		"event_id", event.ID,
		"type", event.Type,
		"flight_number", event.FlightNumber,
		"seat", event.Seat,
	)
	return nil
}

// Message renders the notice text for an event.
func Message(event kafka.SeatEvent) string {
	switch event.Type {
	case kafka.EventSeatBooked:
		return fmt.Sprintf("%s: seat %s on flight %s is confirmed", event.Passenger, event.Seat, event.FlightNumber)
	case kafka.EventSeatCancelled:
		return fmt.Sprintf("%s: booking for seat %s on flight %s was cancelled", event.Passenger, event.Seat, event.FlightNumber)
	default:
		return fmt.Sprintf("%s: update %q for seat %s on flight %s", event.Passenger, event.Type, event.Seat, event.FlightNumber)
	}
}
