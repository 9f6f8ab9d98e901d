package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/Domenick1991/seatbooking/internal/kafka"
	"github.com/Domenick1991/seatbooking/internal/metrics"
	"github.com/Domenick1991/seatbooking/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishWithRetry(ctx context.Context, topic, key string, value interface{}, attempts int) error {
	args := m.Called(ctx, topic, key, value, attempts)
	return args.Error(0)
}

func newSeededRegistry(t *testing.T) *repository.FlightRegistry {
	t.Helper()
	registry := repository.NewFlightRegistry()
	require.Equal(t, 2, registry.Seed(repository.DefaultFlights))
	return registry
}

func TestBookingService_BookSeat_Success(t *testing.T) {
	registry := newSeededRegistry(t)
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}
	m := metrics.New(prometheus.NewRegistry())
	fixed := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	service := NewBookingService(registry, mockCache, mockProducer, "seat-events",
		WithNotificationsTopic("notifications"), WithMetrics(m))
	service.now = func() time.Time { return fixed }
	ctx := context.Background()

	isBookedEvent := mock.MatchedBy(func(e kafka.SeatEvent) bool {
		return e.Type == kafka.EventSeatBooked && e.FlightNumber == "AI101" && e.Seat == "3" &&
			e.Passenger == "Ravi" && e.ID != "" && e.OccurredAt.Equal(fixed)
	})
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()
	mockProducer.On("PublishWithRetry", ctx, "seat-events", "AI101", isBookedEvent, 1).Return(nil).Once()
	mockProducer.On("PublishWithRetry", ctx, "notifications", "AI101", isBookedEvent, 1).Return(nil).Once()

	booking, err := service.BookSeat(ctx, BookSeatInput{FlightNumber: "ai101", PassengerName: "  Ravi ", SeatNumber: " 3 "})

	require.NoError(t, err)
	assert.Equal(t, "AI101", booking.FlightNumber)
	assert.Equal(t, domain.Seat(3), booking.Seat)
	assert.Equal(t, "Ravi", booking.Passenger)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SeatsBooked))

	seats, err := registry.ListAvailableSeats("AI101")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "4", "5", "6"}, seats)

	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_BookSeat_Rejected(t *testing.T) {
	testCases := []struct {
		name        string
		input       BookSeatInput
		expectedErr error
		reason      string
	}{
		{
			name:        "unknown flight",
			input:       BookSeatInput{FlightNumber: "XX999", PassengerName: "Ravi", SeatNumber: "1"},
			expectedErr: domain.ErrFlightNotFound,
			reason:      "flight_not_found",
		},
		{
			name:        "out of range",
			input:       BookSeatInput{FlightNumber: "6E220", PassengerName: "Ravi", SeatNumber: "5"},
			expectedErr: domain.ErrSeatUnavailable,
			reason:      "seat_unavailable",
		},
		{
			name:        "not a number",
			input:       BookSeatInput{FlightNumber: "6E220", PassengerName: "Ravi", SeatNumber: "window"},
			expectedErr: domain.ErrSeatUnavailable,
			reason:      "seat_unavailable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockCache := &MockCache{}
			mockProducer := &MockProducer{}
			m := metrics.New(prometheus.NewRegistry())
			service := NewBookingService(newSeededRegistry(t), mockCache, mockProducer, "seat-events", WithMetrics(m))

			booking, err := service.BookSeat(context.Background(), tc.input)

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Nil(t, booking)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsRejected.WithLabelValues(tc.reason)))
			mockCache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
			mockProducer.AssertNotCalled(t, "PublishWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBookingService_BookSeat_PublishFailureDoesNotFail(t *testing.T) {
	registry := newSeededRegistry(t)
	mockProducer := &MockProducer{}
	service := NewBookingService(registry, nil, mockProducer, "seat-events")
	ctx := context.Background()

	mockProducer.On("PublishWithRetry", ctx, "seat-events", "6E220", mock.Anything, 1).Return(errors.New("broker down")).Once()

	booking, err := service.BookSeat(ctx, BookSeatInput{FlightNumber: "6E220", PassengerName: "Asha", SeatNumber: "2"})

	require.NoError(t, err)
	assert.Equal(t, domain.Seat(2), booking.Seat)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_BookSeat_UsesConfiguredPublishAttempts(t *testing.T) {
	registry := newSeededRegistry(t)
	mockProducer := &MockProducer{}
	service := NewBookingService(registry, nil, mockProducer, "seat-events", WithPublishAttempts(3))
	ctx := context.Background()

	mockProducer.On("PublishWithRetry", ctx, "seat-events", "AI101", mock.Anything, 3).Return(nil).Once()

	_, err := service.BookSeat(ctx, BookSeatInput{FlightNumber: "AI101", PassengerName: "Asha", SeatNumber: "4"})

	require.NoError(t, err)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_NoProducer(t *testing.T) {
	service := NewBookingService(newSeededRegistry(t), nil, nil, "seat-events")

	_, err := service.BookSeat(context.Background(), BookSeatInput{FlightNumber: "AI101", PassengerName: "Asha", SeatNumber: "1"})
	require.NoError(t, err)

	_, err = service.CancelSeat(context.Background(), "AI101", "1")
	require.NoError(t, err)
}

func TestBookingService_CancelSeat(t *testing.T) {
	registry := newSeededRegistry(t)
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}
	m := metrics.New(prometheus.NewRegistry())
	service := NewBookingService(registry, mockCache, mockProducer, "seat-events", WithMetrics(m))
	ctx := context.Background()

	_, err := registry.BookSeat("AI101", "Ravi", "3")
	require.NoError(t, err)
	before, err := registry.GetFlight("AI101")
	require.NoError(t, err)

	isCancelled := mock.MatchedBy(func(e kafka.SeatEvent) bool {
		return e.Type == kafka.EventSeatCancelled && e.Seat == "3" && e.Passenger == "Ravi"
	})
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()
	mockProducer.On("PublishWithRetry", ctx, "seat-events", "AI101", isCancelled, 1).Return(nil).Once()

	released, err := service.CancelSeat(ctx, "AI101", "3")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", released.Passenger)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SeatsCancelled))

	_, err = service.CancelSeat(ctx, "AI101", "3")
	assert.ErrorIs(t, err, domain.ErrSeatNotBooked)

	after, err := registry.GetFlight("AI101")
	require.NoError(t, err)
	assert.Equal(t, before.AvailableSeats+1, after.AvailableSeats)
	assert.Empty(t, after.Bookings)

	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CancelSeat_UnknownFlight(t *testing.T) {
	service := NewBookingService(newSeededRegistry(t), nil, nil, "")

	_, err := service.CancelSeat(context.Background(), "ZZ000", "1")

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestBookingService_ConcurrentBookings(t *testing.T) {
	const attempts = 40

	registry := newSeededRegistry(t)
	service := NewBookingService(registry, nil, nil, "")

	var succeeded atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := BookSeatInput{FlightNumber: "6E220", PassengerName: fmt.Sprintf("p%d", i), SeatNumber: fmt.Sprint(i%6 + 1)}
			if _, err := service.BookSeat(context.Background(), input); err == nil {
				succeeded.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(4), succeeded.Load())
	flight, err := registry.GetFlight("6E220")
	require.NoError(t, err)
	assert.Equal(t, 0, flight.AvailableSeats)
	assert.Len(t, flight.Bookings, 4)
}
