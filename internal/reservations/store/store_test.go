package store

import (
	"sync"
	"testing"
	"time"

	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func newBooking(id, roomID, userID string, start, end time.Time) *model.Booking {
	return &model.Booking{
		ID:       id,
		RoomID:   roomID,
		Owner:    model.Owner{UserID: userID, Email: userID + "@example.com"},
		Interval: model.Interval{Start: start, End: end},
		Status:   model.StatusActive,
	}
}

func mustInsert(t *testing.T, s *Store, b *model.Booking) {
	t.Helper()
	err := s.Update(b.RoomID, func(tx *RoomTx) error {
		return tx.Insert(b)
	})
	if err != nil {
		t.Fatalf("insert %s: %v", b.ID, err)
	}
}

func TestInsertAndGetByID(t *testing.T) {
	s := New()
	b := newBooking("b-1", "room-001", "alice", at(14, 0), at(15, 0))
	mustInsert(t, s, b)

	got, err := s.GetByID("b-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.RoomID != "room-001" || got.Owner.UserID != "alice" {
		t.Errorf("unexpected booking: %+v", got)
	}

	// The returned record is a copy; mutating it must not touch the store.
	got.Status = model.StatusCancelled
	again, _ := s.GetByID("b-1")
	if again.Status != model.StatusActive {
		t.Error("store record mutated through a returned copy")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	s := New()
	_, err := s.GetByID("missing")
	if !apperrors.IsCode(err, apperrors.CodeBookingNotFound) {
		t.Errorf("expected BOOKING_NOT_FOUND, got %v", err)
	}
}

func TestInsertDuplicateID(t *testing.T) {
	s := New()
	mustInsert(t, s, newBooking("b-1", "room-001", "alice", at(14, 0), at(15, 0)))

	err := s.Update("room-001", func(tx *RoomTx) error {
		return tx.Insert(newBooking("b-1", "room-001", "bob", at(16, 0), at(17, 0)))
	})
	if !apperrors.IsCode(err, apperrors.CodeDuplicateID) {
		t.Errorf("expected DUPLICATE_ID, got %v", err)
	}
}

func TestActiveOrderedByStart(t *testing.T) {
	s := New()
	mustInsert(t, s, newBooking("b-2", "room-001", "alice", at(16, 0), at(17, 0)))
	mustInsert(t, s, newBooking("b-1", "room-001", "alice", at(14, 0), at(15, 0)))
	mustInsert(t, s, newBooking("b-3", "room-001", "alice", at(18, 0), at(19, 0)))

	var ids []string
	s.View("room-001", func(v RoomView) {
		for _, b := range v.Active() {
			ids = append(ids, b.ID)
		}
	})

	want := []string{"b-1", "b-2", "b-3"}
	if len(ids) != len(want) {
		t.Fatalf("got %d bookings, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestActiveExcludesTerminalStatuses(t *testing.T) {
	s := New()
	mustInsert(t, s, newBooking("b-1", "room-001", "alice", at(14, 0), at(15, 0)))
	mustInsert(t, s, newBooking("b-2", "room-001", "alice", at(16, 0), at(17, 0)))

	err := s.Update("room-001", func(tx *RoomTx) error {
		_, err := tx.SetStatus("b-1", model.StatusCancelled, at(13, 0))
		return err
	})
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	s.View("room-001", func(v RoomView) {
		active := v.Active()
		if len(active) != 1 || active[0].ID != "b-2" {
			t.Errorf("active = %+v, want only b-2", active)
		}
	})

	// Cancelled records are retained, not deleted.
	if _, err := s.GetByID("b-1"); err != nil {
		t.Errorf("cancelled booking should remain readable: %v", err)
	}
	all := s.ListByRoom("room-001")
	if len(all) != 2 {
		t.Errorf("ListByRoom returned %d records, want 2", len(all))
	}
}

func TestSetIntervalReorders(t *testing.T) {
	s := New()
	mustInsert(t, s, newBooking("b-1", "room-001", "alice", at(14, 0), at(15, 0)))
	mustInsert(t, s, newBooking("b-2", "room-001", "alice", at(16, 0), at(17, 0)))

	err := s.Update("room-001", func(tx *RoomTx) error {
		_, err := tx.SetInterval("b-1", model.Interval{Start: at(18, 0), End: at(19, 0)}, at(12, 0))
		return err
	})
	if err != nil {
		t.Fatalf("SetInterval: %v", err)
	}

	s.View("room-001", func(v RoomView) {
		active := v.Active()
		if active[0].ID != "b-2" || active[1].ID != "b-1" {
			t.Errorf("order after move = [%s %s], want [b-2 b-1]", active[0].ID, active[1].ID)
		}
	})

	got, _ := s.GetByID("b-1")
	if !got.Interval.Start.Equal(at(18, 0)) {
		t.Errorf("interval not updated: %v", got.Interval)
	}
	if !got.UpdatedAt.Equal(at(12, 0)) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, at(12, 0))
	}
}

func TestListByOwnerAcrossRooms(t *testing.T) {
	s := New()
	mustInsert(t, s, newBooking("b-1", "room-001", "alice", at(16, 0), at(17, 0)))
	mustInsert(t, s, newBooking("b-2", "room-002", "alice", at(14, 0), at(15, 0)))
	mustInsert(t, s, newBooking("b-3", "room-001", "bob", at(10, 0), at(11, 0)))

	got := s.ListByOwner("alice")
	if len(got) != 2 {
		t.Fatalf("got %d bookings, want 2", len(got))
	}
	if got[0].ID != "b-2" || got[1].ID != "b-1" {
		t.Errorf("order = [%s %s], want [b-2 b-1]", got[0].ID, got[1].ID)
	}
}

func TestCompleteElapsed(t *testing.T) {
	s := New()
	mustInsert(t, s, newBooking("b-1", "room-001", "alice", at(10, 0), at(11, 0)))
	mustInsert(t, s, newBooking("b-2", "room-001", "alice", at(14, 0), at(15, 0)))
	mustInsert(t, s, newBooking("b-3", "room-002", "bob", at(9, 0), at(10, 0)))

	n := s.CompleteElapsed(at(12, 0))
	if n != 2 {
		t.Errorf("CompleteElapsed = %d, want 2", n)
	}

	b1, _ := s.GetByID("b-1")
	if b1.Status != model.StatusCompleted {
		t.Errorf("b-1 status = %s, want completed", b1.Status)
	}
	b2, _ := s.GetByID("b-2")
	if b2.Status != model.StatusActive {
		t.Errorf("b-2 status = %s, want active", b2.Status)
	}

	// Idempotent: a second pass finds nothing new.
	if n := s.CompleteElapsed(at(12, 0)); n != 0 {
		t.Errorf("second CompleteElapsed = %d, want 0", n)
	}
}

func TestCompleteElapsedSkipsCancelled(t *testing.T) {
	s := New()
	mustInsert(t, s, newBooking("b-1", "room-001", "alice", at(10, 0), at(11, 0)))
	s.Update("room-001", func(tx *RoomTx) error {
		_, err := tx.SetStatus("b-1", model.StatusCancelled, at(9, 0))
		return err
	})

	if n := s.CompleteElapsed(at(12, 0)); n != 0 {
		t.Errorf("CompleteElapsed = %d, want 0", n)
	}
	b, _ := s.GetByID("b-1")
	if b.Status != model.StatusCancelled {
		t.Errorf("cancelled booking was transitioned to %s", b.Status)
	}
}

func TestConcurrentUpdatesSameRoomSerialize(t *testing.T) {
	s := New()
	const workers = 50

	var wg sync.WaitGroup
	inserted := make([]bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Everyone targets the same slot; the read-check-write runs
			// under the room lock, so exactly one insert lands.
			err := s.Update("room-001", func(tx *RoomTx) error {
				for _, b := range tx.Active() {
					if b.Interval.Overlaps(model.Interval{Start: at(14, 0), End: at(15, 0)}) {
						return apperrors.RoomConflict(b.ID, b.Interval.Start, b.Interval.End)
					}
				}
				return tx.Insert(newBooking(NewID(), "room-001", "alice", at(14, 0), at(15, 0)))
			})
			inserted[i] = err == nil
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, ok := range inserted {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("%d inserts succeeded, want exactly 1", wins)
	}
	if got := len(s.ListByRoom("room-001")); got != 1 {
		t.Errorf("room has %d records, want 1", got)
	}
}

func TestConcurrentUpdatesDistinctRooms(t *testing.T) {
	s := New()
	const rooms = 20

	var wg sync.WaitGroup
	for i := 0; i < rooms; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			roomID := "room-" + string(rune('a'+i))
			err := s.Update(roomID, func(tx *RoomTx) error {
				return tx.Insert(newBooking(NewID(), roomID, "alice", at(14, 0), at(15, 0)))
			})
			if err != nil {
				t.Errorf("insert into %s: %v", roomID, err)
			}
		}(i)
	}
	wg.Wait()

	if got := len(s.ListByOwner("alice")); got != rooms {
		t.Errorf("owner has %d bookings, want %d", got, rooms)
	}
}
