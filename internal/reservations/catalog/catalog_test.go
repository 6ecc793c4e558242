package catalog

import (
	"context"
	"testing"

	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

func TestGetRoom(t *testing.T) {
	c := New(
		model.Room{ID: "room-001", Name: "Room A", Capacity: 8},
		model.Room{ID: "room-002", Name: "Room B", Capacity: 4},
	)

	room, err := c.GetRoom(context.Background(), "room-001")
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if room.Name != "Room A" {
		t.Errorf("Name = %s, want Room A", room.Name)
	}

	// Returned rooms are copies.
	room.Name = "mutated"
	again, _ := c.GetRoom(context.Background(), "room-001")
	if again.Name != "Room A" {
		t.Error("catalog entry mutated through a returned copy")
	}
}

func TestGetRoomNotFound(t *testing.T) {
	c := New()
	_, err := c.GetRoom(context.Background(), "room-999")
	if !apperrors.IsCode(err, apperrors.CodeRoomNotFound) {
		t.Errorf("expected ROOM_NOT_FOUND, got %v", err)
	}
}

func TestListRoomsPreservesRegistrationOrder(t *testing.T) {
	c := New(
		model.Room{ID: "room-003"},
		model.Room{ID: "room-001"},
		model.Room{ID: "room-002"},
	)

	rooms := c.ListRooms(context.Background())
	want := []string{"room-003", "room-001", "room-002"}
	if len(rooms) != len(want) {
		t.Fatalf("got %d rooms, want %d", len(rooms), len(want))
	}
	for i, id := range want {
		if rooms[i].ID != id {
			t.Errorf("rooms[%d] = %s, want %s", i, rooms[i].ID, id)
		}
	}
}

func TestNewSkipsDuplicateIDs(t *testing.T) {
	c := New(
		model.Room{ID: "room-001", Name: "first"},
		model.Room{ID: "room-001", Name: "second"},
	)

	rooms := c.ListRooms(context.Background())
	if len(rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(rooms))
	}
	if rooms[0].Name != "first" {
		t.Errorf("Name = %s, first registration should win", rooms[0].Name)
	}
}

func TestDefaultRooms(t *testing.T) {
	c := New(DefaultRooms()...)

	rooms := c.ListRooms(context.Background())
	if len(rooms) != 6 {
		t.Fatalf("got %d rooms, want 6", len(rooms))
	}
	for _, room := range rooms {
		if room.ID == "" || room.Name == "" || room.Capacity <= 0 {
			t.Errorf("incomplete room: %+v", room)
		}
	}
}
