package model

import (
	"fmt"
	"time"

	apperrors "roomly/pkg/errors"
)

// Interval is a half-open time range [Start, End): the start instant is
// included, the end instant is not. Two intervals that merely touch at an
// endpoint do not overlap.
type Interval struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

func (i Interval) Validate() error {
	if i.Start.IsZero() || i.End.IsZero() {
		return apperrors.InvalidInterval("interval start and end times are required")
	}
	if !i.Start.Before(i.End) {
		return apperrors.InvalidInterval(fmt.Sprintf(
			"interval start (%s) must be before end (%s)",
			i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339)))
	}
	return nil
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsFuture reports whether the interval starts strictly after now.
func (i Interval) IsFuture(now time.Time) bool {
	return i.Start.After(now)
}

// Elapsed reports whether the interval has fully passed.
func (i Interval) Elapsed(now time.Time) bool {
	return !i.End.After(now)
}

func (i Interval) Equal(o Interval) bool {
	return i.Start.Equal(o.Start) && i.End.Equal(o.End)
}

func (i Interval) String() string {
	return fmt.Sprintf("%s - %s", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}
