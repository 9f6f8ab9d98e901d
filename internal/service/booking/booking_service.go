package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/Domenick1991/seatbooking/internal/kafka"
	"github.com/Domenick1991/seatbooking/internal/metrics"
	"github.com/Domenick1991/seatbooking/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	BookSeat(ctx context.Context, input BookSeatInput) (*domain.Booking, error)
	CancelSeat(ctx context.Context, flightNumber, seatNumber string) (*domain.Booking, error)
}

// CacheInvalidator drops the cached flight listing after a seat change.
type CacheInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, attempts int) error
}

type BookSeatInput struct {
	FlightNumber  string `json:"flight_number"`
	PassengerName string `json:"passenger_name"`
	SeatNumber    string `json:"seat_number"`
}

type BookingService struct {
	flights            repository.FlightRepository
	cache              CacheInvalidator
	producer           Producer
	seatEventsTopic    string
	notificationsTopic string
	publishAttempts    int
	logger             *slog.Logger
	metrics            *metrics.Metrics
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithPublishAttempts bounds how many times each seat event is sent before
// the failure is logged and dropped.
func WithPublishAttempts(attempts int) BookingServiceOption {
	return func(s *BookingService) {
		s.publishAttempts = attempts
	}
}

func WithLogger(logger *slog.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

// NewBookingService wires seat operations to the registry. cache and producer
// may be nil; events are then not published.
func NewBookingService(
	flights repository.FlightRepository,
	cache CacheInvalidator,
	producer Producer,
	seatEventsTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		flights:         flights,
		cache:           cache,
		producer:        producer,
		seatEventsTopic: seatEventsTopic,
		publishAttempts: 1,
		logger:          slog.Default(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) BookSeat(ctx context.Context, input BookSeatInput) (*domain.Booking, error) {
	booking, err := s.flights.BookSeat(input.FlightNumber, strings.TrimSpace(input.PassengerName), strings.TrimSpace(input.SeatNumber))
	if err != nil {
		s.metrics.IncBookingsRejected(rejectReason(err))
		s.logger.DebugContext(ctx, "booking rejected", "flight_number", input.FlightNumber, "seat", input.SeatNumber, "error", err)
		return nil, err
	}

	s.metrics.IncSeatsBooked()
	s.afterChange(ctx, kafka.EventSeatBooked, booking)
	return &booking, nil
}

func (s *BookingService) CancelSeat(ctx context.Context, flightNumber, seatNumber string) (*domain.Booking, error) {
	booking, err := s.flights.CancelSeat(flightNumber, strings.TrimSpace(seatNumber))
	if err != nil {
		return nil, err
	}

	s.metrics.IncSeatsCancelled()
	s.afterChange(ctx, kafka.EventSeatCancelled, booking)
	return &booking, nil
}

func (s *BookingService) afterChange(ctx context.Context, eventType string, booking domain.Booking) {
	s.logger.InfoContext(ctx, eventType,
		"flight_number", booking.FlightNumber,
		"seat", booking.Seat.String(),
	)
	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.logger.WarnContext(ctx, "flight cache invalidation failed", "error", err)
		}
	}
	if err := s.publish(ctx, eventType, booking); err != nil {
		s.logger.WarnContext(ctx, "failed to publish seat event", "type", eventType, "flight_number", booking.FlightNumber, "error", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking domain.Booking) error {
	if s.producer == nil || s.seatEventsTopic == "" {
		return nil
	}
	event := kafka.SeatEvent{
		ID:           uuid.NewString(),
		Type:         eventType,
		FlightNumber: booking.FlightNumber,
		Seat:         booking.Seat.String(),
		Passenger:    booking.Passenger,
		OccurredAt:   s.now(),
	}
	if err := s.producer.PublishWithRetry(ctx, s.seatEventsTopic, booking.FlightNumber, event, s.publishAttempts); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.PublishWithRetry(ctx, s.notificationsTopic, booking.FlightNumber, event, s.publishAttempts)
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound):
		return "flight_not_found"
	case errors.Is(err, domain.ErrSeatUnavailable):
		return "seat_unavailable"
	default:
		return "other"
	}
}

var _ BookingUseCase = (*BookingService)(nil)
