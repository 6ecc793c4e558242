package notifier

import (
	"context"
	"time"

	"roomly/pkg/kafka"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

const publishTimeout = 5 * time.Second

// Kafka publishes reservation events to a Kafka topic, keyed by booking id so
// all events for one booking land on the same partition in order. Publishing
// happens on a separate goroutine; failures are logged and otherwise dropped,
// never propagated to the reservation outcome.
type Kafka struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafka(producer *kafka.Producer, log *logger.Logger) *Kafka {
	return &Kafka{
		producer: producer,
		log:      log,
	}
}

func (n *Kafka) BookingCreated(ctx context.Context, booking *model.Booking) {
	n.publish(EventReservationCreated, booking)
}

func (n *Kafka) BookingModified(ctx context.Context, booking *model.Booking) {
	n.publish(EventReservationModified, booking)
}

func (n *Kafka) BookingCancelled(ctx context.Context, booking *model.Booking) {
	n.publish(EventReservationCancelled, booking)
}

func (n *Kafka) publish(kind string, booking *model.Booking) {
	event := ReservationEvent{
		Kind:       kind,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		Owner:      booking.Owner,
		Interval:   booking.Interval,
		Status:     booking.Status,
		OccurredAt: time.Now().UTC(),
	}

	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(event).
		WithEventType(kind).
		WithSchemaVersion(SchemaVersion).
		WithSource("reservations").
		Build()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := n.producer.Publish(ctx, msg); err != nil {
			n.log.Error("Failed to publish reservation event",
				"event_type", kind,
				"booking_id", booking.ID,
				"room_id", booking.RoomID,
				"error", err,
			)
			return
		}

		n.log.Debug("Reservation event published",
			"event_type", kind,
			"booking_id", booking.ID,
		)
	}()
}
