package scheduler

import (
	"fmt"
)

// CommonRange is a maximal span every participant is available for.
type CommonRange struct {
	Date      Date
	TimeStart TimeOfDay
	TimeEnd   TimeOfDay
}

func (r CommonRange) Duration() int {
	return int(r.TimeEnd - r.TimeStart)
}

// Slots expands the range back into its slot keys.
func (r CommonRange) Slots(granularity Granularity) []SlotKey {
	if granularity <= 0 {
		return nil
	}

	result := make([]SlotKey, 0, r.Duration()/granularity.Minutes())

	for t := r.TimeStart; t < r.TimeEnd; t = t.AddMinutes(granularity.Minutes()) {
		result = append(
			result,
			SlotKey{
				Date: r.Date,
				Time: t,
			},
		)
	}

	return result
}

// Interval turns a confirmed range into a bookable interval.
func (r CommonRange) Interval(id string, payload Payload) Interval {
	return Interval{
		ID:        id,
		Date:      r.Date,
		TimeStart: r.TimeStart,
		TimeEnd:   r.TimeEnd,
		Payload:   payload,
	}
}

// String renders "YYYY-MM-DD | HH:mm ~ HH:mm".
func (r CommonRange) String() string {
	return fmt.Sprintf(
		"%s | %s ~ %s",

		r.Date,
		r.TimeStart,
		r.TimeEnd,
	)
}
