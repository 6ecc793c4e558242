package service

import (
	"context"
	"strings"

	"roomly/internal/reservations/catalog"
	"roomly/internal/reservations/conflict"
	"roomly/internal/reservations/store"
	"roomly/pkg/config"
	"roomly/pkg/model"
)

// RoomFilter narrows the candidate rooms before their availability is probed.
// Zero values leave a dimension unconstrained.
type RoomFilter struct {
	MinCapacity int
	Amenities   []string
	Location    string
}

func (f RoomFilter) Matches(room *model.Room) bool {
	if f.MinCapacity > 0 && room.Capacity < f.MinCapacity {
		return false
	}
	if !room.HasAmenities(f.Amenities) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(room.Location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}

type AvailabilityService interface {
	IsRoomFree(ctx context.Context, roomID string, iv model.Interval) (bool, error)
	ListAvailableRooms(ctx context.Context, iv model.Interval, filter RoomFilter) ([]*model.Room, error)
}

type availabilityService struct {
	store *store.Store
	rooms catalog.Provider
	cfg   *config.Config
}

func NewAvailabilityService(bookings *store.Store, rooms catalog.Provider, cfg *config.Config) AvailabilityService {
	return &availabilityService{
		store: bookings,
		rooms: rooms,
		cfg:   cfg,
	}
}

// IsRoomFree reports whether no active booking on the room overlaps the
// interval. It reuses the conflict resolver with no exclusion, so query and
// reservation decisions can never disagree.
func (s *availabilityService) IsRoomFree(ctx context.Context, roomID string, iv model.Interval) (bool, error) {
	if err := iv.Validate(); err != nil {
		return false, err
	}
	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		return false, err
	}

	free := false
	s.store.View(roomID, func(v store.RoomView) {
		free = conflict.Resolve(v.Active(), iv, "").Accepted()
	})
	return free, nil
}

// ListAvailableRooms returns the rooms passing the filter that are free for
// the interval, in catalog order. Ranking, if any, is a presentation concern
// left to callers.
func (s *availabilityService) ListAvailableRooms(ctx context.Context, iv model.Interval, filter RoomFilter) ([]*model.Room, error) {
	if err := iv.Validate(); err != nil {
		return nil, err
	}

	available := make([]*model.Room, 0)
	for _, room := range s.rooms.ListRooms(ctx) {
		if !filter.Matches(room) {
			continue
		}

		free := false
		s.store.View(room.ID, func(v store.RoomView) {
			free = conflict.Resolve(v.Active(), iv, "").Accepted()
		})
		if free {
			available = append(available, room)
		}
	}
	return available, nil
}
