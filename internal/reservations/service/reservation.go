package service

import (
	"context"
	"fmt"
	"time"

	"roomly/internal/reservations/catalog"
	"roomly/internal/reservations/conflict"
	"roomly/internal/reservations/notifier"
	"roomly/internal/reservations/store"
	"roomly/pkg/clock"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

type ReservationService interface {
	Create(ctx context.Context, req *model.BookingRequest, owner model.Owner) (*model.Booking, error)
	Modify(ctx context.Context, id string, owner model.Owner, change *model.BookingChange) (*model.Booking, error)
	Cancel(ctx context.Context, id string, owner model.Owner) (*model.Booking, error)
	GetByID(ctx context.Context, id string, owner model.Owner) (*model.Booking, error)
	ListByOwner(ctx context.Context, userID string, includeCancelled bool) ([]*model.Booking, error)
	ListByRoom(ctx context.Context, roomID string, includeCancelled bool) ([]*model.Booking, error)
}

type reservationService struct {
	store    *store.Store
	rooms    catalog.Provider
	notifier notifier.Notifier
	clock    clock.Clock
	cfg      *config.Config
}

func NewReservationService(
	bookings *store.Store,
	rooms catalog.Provider,
	events notifier.Notifier,
	clk clock.Clock,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		store:    bookings,
		rooms:    rooms,
		notifier: events,
		clock:    clk,
		cfg:      cfg,
	}
}

func (s *reservationService) Create(ctx context.Context, req *model.BookingRequest, owner model.Owner) (*model.Booking, error) {
	now := s.clock.Now()

	iv, err := model.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if err := s.checkPolicy(iv, now); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		ID:        store.NewID(),
		RoomID:    room.ID,
		Owner:     owner,
		Interval:  iv,
		Status:    model.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.store.Update(room.ID, func(tx *store.RoomTx) error {
		verdict := conflict.Resolve(tx.Active(), iv, "")
		if !verdict.Accepted() {
			c := verdict.Conflict
			return apperrors.RoomConflict(c.ID, c.Interval.Start, c.Interval.End)
		}
		return tx.Insert(booking)
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeRoomConflict) {
			s.cfg.Log.Info("Booking rejected with conflict",
				"room_id", room.ID,
				"user_id", owner.UserID,
				"interval", iv.String(),
			)
			return nil, err
		}
		s.cfg.Log.Error("Failed to create booking", "room_id", room.ID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"user_id", owner.UserID,
		"start_time", iv.Start,
	)
	s.notifier.BookingCreated(context.WithoutCancel(ctx), booking)
	return booking, nil
}

func (s *reservationService) Modify(ctx context.Context, id string, owner model.Owner, change *model.BookingChange) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	now := s.clock.Now()

	current, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Precondition order is fixed: existence, then ownership/state/cutoff,
	// then the new interval. The caller learns they cannot change the booking
	// before anything about the new data is inspected.
	var updated *model.Booking
	err = s.store.Update(current.RoomID, func(tx *store.RoomTx) error {
		cur, err := tx.Get(id)
		if err != nil {
			return err
		}
		if err := s.checkChangeable(cur, owner, now); err != nil {
			return err
		}

		newIv, err := model.NewInterval(change.StartTime, change.EndTime)
		if err != nil {
			return err
		}
		if err := s.checkPolicy(newIv, now); err != nil {
			return err
		}

		verdict := conflict.Resolve(tx.Active(), newIv, id)
		if !verdict.Accepted() {
			c := verdict.Conflict
			return apperrors.RoomConflict(c.ID, c.Interval.Start, c.Interval.End)
		}

		updated, err = tx.SetInterval(id, newIv, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Booking modified successfully",
		"id", id,
		"room_id", updated.RoomID,
		"start_time", updated.Interval.Start,
	)
	s.notifier.BookingModified(context.WithoutCancel(ctx), updated)
	return updated, nil
}

func (s *reservationService) Cancel(ctx context.Context, id string, owner model.Owner) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	now := s.clock.Now()

	current, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Freeing capacity can never introduce a conflict, so no resolver pass.
	var cancelled *model.Booking
	err = s.store.Update(current.RoomID, func(tx *store.RoomTx) error {
		cur, err := tx.Get(id)
		if err != nil {
			return err
		}
		if err := s.checkChangeable(cur, owner, now); err != nil {
			return err
		}

		cancelled, err = tx.SetStatus(id, model.StatusCancelled, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Booking cancelled successfully", "id", id, "room_id", cancelled.RoomID)
	s.notifier.BookingCancelled(context.WithoutCancel(ctx), cancelled)
	return cancelled, nil
}

func (s *reservationService) GetByID(ctx context.Context, id string, owner model.Owner) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.Owner.UserID != owner.UserID {
		return nil, apperrors.Forbidden("booking belongs to a different user")
	}
	return booking, nil
}

func (s *reservationService) ListByOwner(ctx context.Context, userID string, includeCancelled bool) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}
	return filterCancelled(s.store.ListByOwner(userID), includeCancelled), nil
}

func (s *reservationService) ListByRoom(ctx context.Context, roomID string, includeCancelled bool) ([]*model.Booking, error) {
	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return filterCancelled(s.store.ListByRoom(roomID), includeCancelled), nil
}

// checkPolicy enforces the temporal rules shared by create and modify:
// duration within the configured bounds (inclusive) and a start strictly in
// the future.
func (s *reservationService) checkPolicy(iv model.Interval, now time.Time) error {
	d := iv.Duration()
	if d < s.cfg.MinBookingDuration || d > s.cfg.MaxBookingDuration {
		return apperrors.InvalidDuration(d, s.cfg.MinBookingDuration, s.cfg.MaxBookingDuration)
	}
	if !iv.IsFuture(now) {
		return apperrors.PastStart()
	}
	return nil
}

// checkChangeable gates modify and cancel: the caller must own the booking,
// the booking must still be active, and the change cutoff window before the
// booking's current start must not have begun. Called under the room lock so
// the decision is made against the committed state.
func (s *reservationService) checkChangeable(b *model.Booking, owner model.Owner, now time.Time) error {
	if b.Owner.UserID != owner.UserID {
		return apperrors.Forbidden("booking belongs to a different user")
	}
	if b.Status != model.StatusActive {
		return apperrors.InvalidState(fmt.Sprintf("booking is %s and can no longer be changed", b.Status))
	}
	if !now.Add(s.cfg.ChangeCutoff).Before(b.Interval.Start) {
		return apperrors.LockedForChange(s.cfg.ChangeCutoff)
	}
	return nil
}

func filterCancelled(bookings []*model.Booking, includeCancelled bool) []*model.Booking {
	if includeCancelled {
		return bookings
	}
	out := make([]*model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status != model.StatusCancelled {
			out = append(out, b)
		}
	}
	return out
}
