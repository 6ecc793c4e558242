package clock

import "time"

// Clock is injected wherever the current time is read so that duration,
// future-start and change-cutoff checks stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now() }
