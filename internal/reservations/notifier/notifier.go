package notifier

import (
	"context"
	"time"

	"roomly/pkg/model"
)

// Event kinds published on the reservation topic. Downstream consumers
// (email, calendar sync) subscribe to these; delivery is their concern.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationModified  = "reservation.modified"
	EventReservationCancelled = "reservation.cancelled"
)

const SchemaVersion = "1"

// Notifier is the fire-and-forget side channel for reservation outcomes.
// Implementations must never block the caller on delivery and must never
// surface delivery failures to the reservation decision.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingModified(ctx context.Context, booking *model.Booking)
	BookingCancelled(ctx context.Context, booking *model.Booking)
}

// ReservationEvent is the payload published for every event kind.
type ReservationEvent struct {
	Kind       string              `json:"kind"`
	BookingID  string              `json:"booking_id"`
	RoomID     string              `json:"room_id"`
	Owner      model.Owner         `json:"owner"`
	Interval   model.Interval      `json:"interval"`
	Status     model.BookingStatus `json:"status"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// Nop discards all notifications. Used in tests and when event publishing is
// disabled.
type Nop struct{}

func (Nop) BookingCreated(context.Context, *model.Booking)   {}
func (Nop) BookingModified(context.Context, *model.Booking)  {}
func (Nop) BookingCancelled(context.Context, *model.Booking) {}
