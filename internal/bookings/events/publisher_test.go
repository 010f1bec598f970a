package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"resourcebook/pkg/kafka"
	"resourcebook/pkg/middleware"
	"resourcebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultTimeout = time.Second

type recordingProducer struct {
	messages []kafka.Message
	err      error
	ctxErr   error
}

func (r *recordingProducer) Publish(ctx context.Context, msg kafka.Message) error {
	r.ctxErr = ctx.Err()
	r.messages = append(r.messages, msg)
	return r.err
}

func TestKafkaPublisher_BookingCreated(t *testing.T) {
	producer := &recordingProducer{}
	pub := NewKafkaPublisher(producer, "bookings", defaultTimeout)

	booking := &model.Booking{ID: "665f1c2e9b1d4a0012345678", Resource: "Room A", Date: "2024-05-01"}
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	require.NoError(t, pub.BookingCreated(ctx, booking))

	require.Len(t, producer.messages, 1)
	msg := producer.messages[0]
	assert.Equal(t, booking.ID, msg.Key)
	assert.Equal(t, TypeBookingCreated, msg.EventType())
	assert.Equal(t, "req-1", msg.CorrelationID())
	assert.Equal(t, "bookings", msg.Headers[kafka.HeaderSource])
	assert.NotEmpty(t, msg.EventID())

	var event BookingEvent
	require.NoError(t, msg.DecodeValue(&event))
	assert.Equal(t, booking.ID, event.BookingID)
	require.NotNil(t, event.Booking)
	assert.Equal(t, "Room A", event.Booking.Resource)
}

func TestKafkaPublisher_BookingDeleted(t *testing.T) {
	producer := &recordingProducer{}
	pub := NewKafkaPublisher(producer, "bookings", defaultTimeout)

	require.NoError(t, pub.BookingDeleted(context.Background(), "665f1c2e9b1d4a0012345678"))

	require.Len(t, producer.messages, 1)
	msg := producer.messages[0]
	assert.Equal(t, "665f1c2e9b1d4a0012345678", msg.Key)
	assert.Equal(t, TypeBookingDeleted, msg.EventType())
	_, hasCorrelation := msg.Headers[kafka.HeaderCorrelationID]
	assert.False(t, hasCorrelation)
}

func TestKafkaPublisher_CreateAndDeleteShareKey(t *testing.T) {
	producer := &recordingProducer{}
	pub := NewKafkaPublisher(producer, "bookings", defaultTimeout)

	booking := &model.Booking{ID: "665f1c2e9b1d4a0012345678", Resource: "Room A", Date: "2024-05-01"}
	require.NoError(t, pub.BookingCreated(context.Background(), booking))
	require.NoError(t, pub.BookingDeleted(context.Background(), booking.ID))

	require.Len(t, producer.messages, 2)
	assert.Equal(t, producer.messages[0].Key, producer.messages[1].Key)
}

func TestKafkaPublisher_SurvivesCanceledRequest(t *testing.T) {
	producer := &recordingProducer{}
	pub := NewKafkaPublisher(producer, "bookings", defaultTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, pub.BookingDeleted(ctx, "665f1c2e9b1d4a0012345678"))
	assert.NoError(t, producer.ctxErr)
}

func TestKafkaPublisher_ReturnsProducerError(t *testing.T) {
	sentinel := errors.New("broker down")
	pub := NewKafkaPublisher(&recordingProducer{err: sentinel}, "bookings", defaultTimeout)

	err := pub.BookingDeleted(context.Background(), "665f1c2e9b1d4a0012345678")
	assert.ErrorIs(t, err, sentinel)
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher()
	assert.NoError(t, pub.BookingCreated(context.Background(), &model.Booking{}))
	assert.NoError(t, pub.BookingDeleted(context.Background(), "x"))
}
