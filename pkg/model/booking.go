package model

import (
	"time"
)

type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Terminal reports whether no further status transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

type Owner struct {
	UserID string `json:"user_id" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

type Booking struct {
	ID        string        `json:"id"`
	RoomID    string        `json:"room_id"`
	Owner     Owner         `json:"owner"`
	Interval  Interval      `json:"interval"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Clone returns an independent copy. The store hands out clones only, so no
// caller ever holds a mutable reference into the authoritative records.
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	copied := *b
	return &copied
}

// BookingRequest is the inbound payload for creating a booking. The owner
// identity arrives separately from the authenticated request context.
type BookingRequest struct {
	RoomID    string    `json:"room_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

// BookingChange is the inbound payload for moving a booking to a new interval.
type BookingChange struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}
