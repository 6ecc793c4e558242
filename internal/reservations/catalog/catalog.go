package catalog

import (
	"context"
	"sync"

	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

// Provider is the read-only room catalog contract the reservation side
// consults. Rooms are reference data created and maintained elsewhere.
type Provider interface {
	GetRoom(ctx context.Context, id string) (*model.Room, error)
	ListRooms(ctx context.Context) []*model.Room
}

// Catalog is an in-memory Provider. Listing order is the registration order,
// which availability queries preserve.
type Catalog struct {
	mu      sync.RWMutex
	ordered []*model.Room
	byID    map[string]*model.Room
}

func New(rooms ...model.Room) *Catalog {
	c := &Catalog{byID: make(map[string]*model.Room)}
	for i := range rooms {
		room := rooms[i].Clone()
		if _, exists := c.byID[room.ID]; exists {
			continue
		}
		c.byID[room.ID] = room
		c.ordered = append(c.ordered, room)
	}
	return c
}

func (c *Catalog) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	room, ok := c.byID[id]
	if !ok {
		return nil, apperrors.RoomNotFound(id)
	}
	return room.Clone(), nil
}

func (c *Catalog) ListRooms(ctx context.Context) []*model.Room {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*model.Room, 0, len(c.ordered))
	for _, room := range c.ordered {
		out = append(out, room.Clone())
	}
	return out
}

// DefaultRooms is the standard office floor plan used when no external catalog
// is wired in.
func DefaultRooms() []model.Room {
	return []model.Room{
		{
			ID:        "room-001",
			Name:      "Innovation Hub",
			Capacity:  10,
			Location:  "Building A, Floor 3",
			Amenities: []string{"projector", "whiteboard", "video_conferencing"},
		},
		{
			ID:        "room-002",
			Name:      "Executive Boardroom",
			Capacity:  20,
			Location:  "Building A, Floor 5",
			Amenities: []string{"projector", "whiteboard", "video_conferencing", "phone"},
		},
		{
			ID:        "room-003",
			Name:      "Brainstorm Space",
			Capacity:  6,
			Location:  "Building B, Floor 2",
			Amenities: []string{"whiteboard", "tv_screen"},
		},
		{
			ID:        "room-004",
			Name:      "Team Collaboration Room",
			Capacity:  8,
			Location:  "Building A, Floor 2",
			Amenities: []string{"projector", "whiteboard"},
		},
		{
			ID:        "room-005",
			Name:      "Conference Hall",
			Capacity:  50,
			Location:  "Building C, Floor 1",
			Amenities: []string{"projector", "whiteboard", "video_conferencing", "phone", "sound_system"},
		},
		{
			ID:        "room-006",
			Name:      "Quick Meeting Pod",
			Capacity:  4,
			Location:  "Building B, Floor 1",
			Amenities: []string{"whiteboard"},
		},
	}
}
