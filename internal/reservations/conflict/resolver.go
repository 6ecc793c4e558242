package conflict

import (
	"roomly/pkg/model"
)

// Verdict is the outcome of a conflict check. A nil Conflict means the
// candidate interval was accepted; otherwise Conflict is the first active
// booking, in interval start order, that overlaps the candidate.
type Verdict struct {
	Conflict *model.Booking
}

func (v Verdict) Accepted() bool {
	return v.Conflict == nil
}

// Resolve decides whether a candidate interval may be booked against the
// room's current active bookings. The caller passes the bookings in interval
// start order and must hold the room's lock for the duration of the check plus
// any commit, so the first accepted request wins and a concurrent loser
// observes the committed booking. excludeID skips the booking being modified
// so it never conflicts with itself; pass "" for a create or a pure
// availability probe.
//
// The scan is linear in the number of active bookings per room, which is small
// in practice; an interval index would have to preserve these exact outcomes.
func Resolve(active []*model.Booking, candidate model.Interval, excludeID string) Verdict {
	for _, b := range active {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.Interval.Overlaps(candidate) {
			return Verdict{Conflict: b}
		}
	}
	return Verdict{}
}
