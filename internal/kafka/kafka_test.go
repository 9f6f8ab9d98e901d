package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, nil)
	defer p.Close()

	assert.NotNil(t, p.writer)
	assert.NotNil(t, p.logger)
}

func TestProducer_CheckConnection_NoBrokers(t *testing.T) {
	p := NewProducer(nil, nil)
	defer p.Close()

	assert.Error(t, p.CheckConnection(context.Background()))
}

func TestProducer_PublishWithRetry_StopsOnCancel(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"}, nil)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := p.PublishWithRetry(ctx, "seat-events", "AI101", SeatEvent{Type: EventSeatBooked}, 5)
	assert.Error(t, err)
}

func TestProducer_PublishWithRetry_AtLeastOneAttempt(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"}, nil)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := p.PublishWithRetry(ctx, "seat-events", "AI101", SeatEvent{Type: EventSeatBooked}, 0)
	assert.ErrorContains(t, err, "failed after 1 retries")
}

func TestDecodeSeatEvent(t *testing.T) {
	event := SeatEvent{
		ID:           "evt-1",
		Type:         EventSeatCancelled,
		FlightNumber: "AI101",
		Seat:         "3",
		Passenger:    "Ravi",
		OccurredAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	data, err := json.Marshal(event)
	require.NoError(t, err)

	decoded, err := DecodeSeatEvent(kafka.Message{Value: data})
	require.NoError(t, err)
	assert.Equal(t, event, decoded)

	_, err = DecodeSeatEvent(kafka.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}
