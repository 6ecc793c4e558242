package service

import (
	"context"
	"testing"
	"time"

	"roomly/internal/reservations/catalog"
	"roomly/internal/reservations/notifier"
	"roomly/internal/reservations/store"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

func newAvailabilityFixture(t *testing.T) (AvailabilityService, ReservationService, *testClock) {
	t.Helper()
	clk := &testClock{now: testNow}
	bookings := store.New()
	rooms := catalog.New(
		model.Room{ID: "room-001", Name: "Room A", Capacity: 8, Location: "Floor 2", Amenities: []string{"projector", "whiteboard"}},
		model.Room{ID: "room-002", Name: "Room B", Capacity: 4, Location: "Floor 1", Amenities: []string{"whiteboard"}},
		model.Room{ID: "room-003", Name: "Room C", Capacity: 20, Location: "Floor 2"},
	)
	cfg := testConfig()
	return NewAvailabilityService(bookings, rooms, cfg),
		NewReservationService(bookings, rooms, notifier.Nop{}, clk, cfg),
		clk
}

func TestIsRoomFree(t *testing.T) {
	avail, res, _ := newAvailabilityFixture(t)
	start := testNow.Add(4 * time.Hour)

	free, err := avail.IsRoomFree(context.Background(), "room-001", model.Interval{Start: start, End: start.Add(time.Hour)})
	if err != nil {
		t.Fatalf("IsRoomFree: %v", err)
	}
	if !free {
		t.Error("empty room should be free")
	}

	if _, err := res.Create(context.Background(), request("room-001", start, start.Add(time.Hour)), alice); err != nil {
		t.Fatalf("Create: %v", err)
	}

	free, _ = avail.IsRoomFree(context.Background(), "room-001", model.Interval{Start: start.Add(30 * time.Minute), End: start.Add(90 * time.Minute)})
	if free {
		t.Error("overlapping interval should not be free")
	}

	// Touching the booked end is free under half-open semantics.
	free, _ = avail.IsRoomFree(context.Background(), "room-001", model.Interval{Start: start.Add(time.Hour), End: start.Add(2 * time.Hour)})
	if !free {
		t.Error("interval starting at the booked end should be free")
	}
}

func TestIsRoomFreeUnknownRoom(t *testing.T) {
	avail, _, _ := newAvailabilityFixture(t)
	start := testNow.Add(4 * time.Hour)

	_, err := avail.IsRoomFree(context.Background(), "room-999", model.Interval{Start: start, End: start.Add(time.Hour)})
	if !apperrors.IsCode(err, apperrors.CodeRoomNotFound) {
		t.Errorf("expected ROOM_NOT_FOUND, got %v", err)
	}
}

func TestIsRoomFreeIgnoresCancelled(t *testing.T) {
	avail, res, _ := newAvailabilityFixture(t)
	start := testNow.Add(4 * time.Hour)
	iv := model.Interval{Start: start, End: start.Add(time.Hour)}

	b, _ := res.Create(context.Background(), request("room-001", start, start.Add(time.Hour)), alice)
	if _, err := res.Cancel(context.Background(), b.ID, alice); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	free, _ := avail.IsRoomFree(context.Background(), "room-001", iv)
	if !free {
		t.Error("cancelled bookings must not block availability")
	}
}

func TestListAvailableRooms(t *testing.T) {
	avail, res, _ := newAvailabilityFixture(t)
	start := testNow.Add(4 * time.Hour)
	iv := model.Interval{Start: start, End: start.Add(time.Hour)}

	if _, err := res.Create(context.Background(), request("room-002", start, start.Add(time.Hour)), alice); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rooms, err := avail.ListAvailableRooms(context.Background(), iv, RoomFilter{})
	if err != nil {
		t.Fatalf("ListAvailableRooms: %v", err)
	}

	var ids []string
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	if len(ids) != 2 || ids[0] != "room-001" || ids[1] != "room-003" {
		t.Errorf("available = %v, want [room-001 room-003] in catalog order", ids)
	}
}

func TestListAvailableRoomsFilter(t *testing.T) {
	avail, _, _ := newAvailabilityFixture(t)
	start := testNow.Add(4 * time.Hour)
	iv := model.Interval{Start: start, End: start.Add(time.Hour)}

	tests := []struct {
		name   string
		filter RoomFilter
		want   []string
	}{
		{"min capacity", RoomFilter{MinCapacity: 8}, []string{"room-001", "room-003"}},
		{"amenities", RoomFilter{Amenities: []string{"projector"}}, []string{"room-001"}},
		{"location", RoomFilter{Location: "floor 1"}, []string{"room-002"}},
		{"combined no match", RoomFilter{MinCapacity: 10, Amenities: []string{"projector"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rooms, err := avail.ListAvailableRooms(context.Background(), iv, tt.filter)
			if err != nil {
				t.Fatalf("ListAvailableRooms: %v", err)
			}
			if len(rooms) != len(tt.want) {
				t.Fatalf("got %d rooms, want %d", len(rooms), len(tt.want))
			}
			for i, id := range tt.want {
				if rooms[i].ID != id {
					t.Errorf("rooms[%d] = %s, want %s", i, rooms[i].ID, id)
				}
			}
		})
	}
}
