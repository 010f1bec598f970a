package events

import (
	"context"
	"time"

	"resourcebook/pkg/kafka"
	"resourcebook/pkg/middleware"
	"resourcebook/pkg/model"
)

const (
	TypeBookingCreated = "booking.created"
	TypeBookingDeleted = "booking.deleted"

	SchemaVersion = "1"
)

// BookingEvent is the payload of every booking event.
type BookingEvent struct {
	Type       string         `json:"type"`
	BookingID  string         `json:"bookingId"`
	Booking    *model.Booking `json:"booking,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// Publisher announces booking changes. Callers treat failures as non-fatal.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
	BookingDeleted(ctx context.Context, id string) error
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer messagePublisher
	source   string
	timeout  time.Duration
}

// NewKafkaPublisher publishes through producer. Each publish gets its own
// timeout detached from the request context, so a client hanging up does
// not drop the event.
func NewKafkaPublisher(producer messagePublisher, source string, timeout time.Duration) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
		timeout:  timeout,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	return p.publish(ctx, BookingEvent{
		Type:       TypeBookingCreated,
		BookingID:  booking.ID,
		Booking:    booking,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *kafkaPublisher) BookingDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, BookingEvent{
		Type:       TypeBookingDeleted,
		BookingID:  id,
		OccurredAt: time.Now().UTC(),
	})
}

// publish keys every event by booking id, so the created and deleted events
// of one booking land on the same partition in order.
func (p *kafkaPublisher) publish(ctx context.Context, event BookingEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(event.Type).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	return p.producer.Publish(ctx, msg)
}

type noopPublisher struct{}

// NewNoopPublisher is used when no Kafka brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) BookingCreated(context.Context, *model.Booking) error { return nil }

func (noopPublisher) BookingDeleted(context.Context, string) error { return nil }
