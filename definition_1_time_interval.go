package scheduler

import (
	"fmt"
)

type Kind string

const (
	KindSolo     Kind = "solo"
	KindEnsemble Kind = "ensemble"
	KindConcert  Kind = "concert"
)

// Payload is carried along with an interval and never interpreted by the engines.
type Payload struct {
	Owner string
	Label string
	Kind  Kind
}

// Interval is the half-open span [TimeStart, TimeEnd) on Date.
type Interval struct {
	ID   string
	Date Date

	TimeStart TimeOfDay
	TimeEnd   TimeOfDay

	Payload
}

func (interval Interval) Validate() error {
	if !interval.TimeStart.IsValid() || !interval.TimeEnd.IsValid() {
		return fmt.Errorf(
			"%w: %s (%s)",

			ErrOutOfRange,
			interval.String(),
			interval.ID,
		)
	}

	if interval.TimeStart >= interval.TimeEnd {
		return fmt.Errorf(
			"%w: %s (%s)",

			ErrInvalidInterval,
			interval.String(),
			interval.ID,
		)
	}

	return nil
}

func (interval Interval) Duration() int {
	return int(interval.TimeEnd - interval.TimeStart)
}

// Covers reports whether the grid cell starting at t falls inside the interval.
func (interval Interval) Covers(t TimeOfDay) bool {
	return interval.TimeStart <= t && t < interval.TimeEnd
}

// Overlaps uses half-open semantics, touching endpoints do not overlap.
// Intervals on different dates never overlap.
func (interval Interval) Overlaps(other Interval) bool {
	return interval.Date == other.Date &&
		overlaps(interval.TimeStart, interval.TimeEnd, other.TimeStart, other.TimeEnd)
}

func overlaps(startA, endA, startB, endB TimeOfDay) bool {
	return startA < endB && startB < endA
}

func (interval Interval) String() string {
	return fmt.Sprintf(
		"%s %s-%s",

		interval.Date,
		interval.TimeStart,
		interval.TimeEnd,
	)
}

func filterByDate(intervals []Interval, date Date) []Interval {
	result := make([]Interval, 0, len(intervals))

	for _, interval := range intervals {
		if interval.Date == date {
			result = append(result, interval)
		}
	}

	return result
}
