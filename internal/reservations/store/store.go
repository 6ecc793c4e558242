package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

// Store is the authoritative, in-memory collection of booking records,
// partitioned by room. Every mutation for a room runs under that room's
// exclusive lock, so a read-check-then-write sequence inside Update is atomic
// per room while distinct rooms proceed independently. Records are never
// physically deleted; cancelled and completed bookings are retained for
// history.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*roomSet

	// index maps booking id to room id so lookups do not scan every room.
	// Leaf lock: never held while acquiring a room lock.
	indexMu sync.RWMutex
	index   map[string]string
}

type roomSet struct {
	mu   sync.RWMutex
	byID map[string]*model.Booking
	// ordered holds every record sorted by interval start ascending. The
	// stable order keeps conflict scans deterministic.
	ordered []*model.Booking
}

func New() *Store {
	return &Store{
		rooms: make(map[string]*roomSet),
		index: make(map[string]string),
	}
}

// NewID mints a fresh booking identifier. Identifiers are store-generated,
// never taken from caller input, and never reused.
func NewID() string {
	return uuid.NewString()
}

func (s *Store) roomSetFor(roomID string, create bool) *roomSet {
	s.mu.RLock()
	set, ok := s.rooms[roomID]
	s.mu.RUnlock()
	if ok || !create {
		return set
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok = s.rooms[roomID]; ok {
		return set
	}
	set = &roomSet{byID: make(map[string]*model.Booking)}
	s.rooms[roomID] = set
	return set
}

// Update runs fn under the room's exclusive lock. Exactly one mutation is in
// flight per room at a time; fn must not call back into the store.
func (s *Store) Update(roomID string, fn func(tx *RoomTx) error) error {
	set := s.roomSetFor(roomID, true)
	set.mu.Lock()
	defer set.mu.Unlock()
	return fn(&RoomTx{store: s, roomID: roomID, set: set})
}

// View runs fn under the room's shared lock: readers of one room never observe
// a mutation mid-flight, and concurrent reads do not block each other.
func (s *Store) View(roomID string, fn func(v RoomView)) {
	set := s.roomSetFor(roomID, false)
	if set == nil {
		fn(RoomView{})
		return
	}
	set.mu.RLock()
	defer set.mu.RUnlock()
	fn(RoomView{set: set})
}

// GetByID returns a copy of the booking, or BookingNotFound.
func (s *Store) GetByID(id string) (*model.Booking, error) {
	s.indexMu.RLock()
	roomID, ok := s.index[id]
	s.indexMu.RUnlock()
	if !ok {
		return nil, apperrors.BookingNotFound(id)
	}

	set := s.roomSetFor(roomID, false)
	if set == nil {
		return nil, apperrors.BookingNotFound(id)
	}

	set.mu.RLock()
	defer set.mu.RUnlock()
	b, ok := set.byID[id]
	if !ok {
		return nil, apperrors.BookingNotFound(id)
	}
	return b.Clone(), nil
}

// ListByRoom returns copies of every booking on the room, interval start
// ascending, cancelled and completed records included.
func (s *Store) ListByRoom(roomID string) []*model.Booking {
	set := s.roomSetFor(roomID, false)
	if set == nil {
		return nil
	}

	set.mu.RLock()
	defer set.mu.RUnlock()
	out := make([]*model.Booking, 0, len(set.ordered))
	for _, b := range set.ordered {
		out = append(out, b.Clone())
	}
	return out
}

// ListByOwner returns copies of the user's bookings across all rooms, interval
// start ascending.
func (s *Store) ListByOwner(userID string) []*model.Booking {
	var out []*model.Booking
	for _, set := range s.allRoomSets() {
		set.mu.RLock()
		for _, b := range set.ordered {
			if b.Owner.UserID == userID {
				out = append(out, b.Clone())
			}
		}
		set.mu.RUnlock()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Interval.Start.Before(out[j].Interval.Start)
	})
	return out
}

// CompleteElapsed transitions active bookings whose interval has fully passed
// to completed and returns how many were transitioned. Completion is purely
// informational: an elapsed active booking already cannot conflict with any
// future interval.
func (s *Store) CompleteElapsed(now time.Time) int {
	transitioned := 0
	for _, set := range s.allRoomSets() {
		set.mu.Lock()
		for _, b := range set.ordered {
			if b.Status == model.StatusActive && b.Interval.Elapsed(now) {
				b.Status = model.StatusCompleted
				b.UpdatedAt = now
				transitioned++
			}
		}
		set.mu.Unlock()
	}
	return transitioned
}

func (s *Store) allRoomSets() []*roomSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sets := make([]*roomSet, 0, len(s.rooms))
	for _, set := range s.rooms {
		sets = append(sets, set)
	}
	return sets
}

// RoomTx is a scoped exclusive-access handle to one room's booking set, valid
// only inside the Update callback that produced it.
type RoomTx struct {
	store  *Store
	roomID string
	set    *roomSet
}

// Active returns copies of the room's active bookings, interval start ascending.
func (tx *RoomTx) Active() []*model.Booking {
	return tx.set.active()
}

func (tx *RoomTx) Get(id string) (*model.Booking, error) {
	b, ok := tx.set.byID[id]
	if !ok {
		return nil, apperrors.BookingNotFound(id)
	}
	return b.Clone(), nil
}

func (tx *RoomTx) Insert(b *model.Booking) error {
	if _, exists := tx.set.byID[b.ID]; exists {
		return apperrors.DuplicateID(b.ID)
	}

	record := b.Clone()
	tx.set.byID[record.ID] = record
	tx.set.insertOrdered(record)

	tx.store.indexMu.Lock()
	tx.store.index[record.ID] = tx.roomID
	tx.store.indexMu.Unlock()
	return nil
}

// SetInterval replaces the booking's interval in place, preserving identity
// and owner, and returns a copy of the updated record.
func (tx *RoomTx) SetInterval(id string, iv model.Interval, now time.Time) (*model.Booking, error) {
	b, ok := tx.set.byID[id]
	if !ok {
		return nil, apperrors.BookingNotFound(id)
	}

	tx.set.removeOrdered(b)
	b.Interval = iv
	b.UpdatedAt = now
	tx.set.insertOrdered(b)
	return b.Clone(), nil
}

// SetStatus flips the booking's status and returns a copy of the updated record.
func (tx *RoomTx) SetStatus(id string, status model.BookingStatus, now time.Time) (*model.Booking, error) {
	b, ok := tx.set.byID[id]
	if !ok {
		return nil, apperrors.BookingNotFound(id)
	}

	b.Status = status
	b.UpdatedAt = now
	return b.Clone(), nil
}

// RoomView is a scoped shared-access handle to one room's booking set, valid
// only inside the View callback that produced it.
type RoomView struct {
	set *roomSet
}

// Active returns copies of the room's active bookings, interval start ascending.
func (v RoomView) Active() []*model.Booking {
	if v.set == nil {
		return nil
	}
	return v.set.active()
}

func (rs *roomSet) active() []*model.Booking {
	var out []*model.Booking
	for _, b := range rs.ordered {
		if b.Status == model.StatusActive {
			out = append(out, b.Clone())
		}
	}
	return out
}

func (rs *roomSet) insertOrdered(b *model.Booking) {
	idx := sort.Search(len(rs.ordered), func(i int) bool {
		return rs.ordered[i].Interval.Start.After(b.Interval.Start)
	})
	rs.ordered = append(rs.ordered, nil)
	copy(rs.ordered[idx+1:], rs.ordered[idx:])
	rs.ordered[idx] = b
}

func (rs *roomSet) removeOrdered(b *model.Booking) {
	for i, cur := range rs.ordered {
		if cur == b {
			rs.ordered = append(rs.ordered[:i], rs.ordered[i+1:]...)
			return
		}
	}
}
