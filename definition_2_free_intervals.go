package scheduler

import "sort"

// FreeIntervals returns the gaps inside window not covered by any booking on window.Date.
// A nil result with true means the whole window is free.
func FreeIntervals(bookings []Interval, window Interval) ([]Interval, bool) {
	busy := filterByDate(bookings, window.Date)

	sort.SliceStable(
		busy,
		func(i, j int) bool {
			return busy[i].TimeStart < busy[j].TimeStart
		},
	)

	var free []Interval

	currentStart := window.TimeStart

	// Check if any busy interval overlaps
	hasOverlap := false

	for _, booking := range busy {
		if booking.TimeEnd <= currentStart {
			continue
		}

		if booking.TimeStart >= window.TimeEnd {
			break
		}

		hasOverlap = true

		if booking.TimeStart > currentStart {
			free = append(
				free,
				Interval{
					Date:      window.Date,
					TimeStart: currentStart,
					TimeEnd:   booking.TimeStart,
				},
			)
		}

		currentStart = max(currentStart, booking.TimeEnd)
	}

	if !hasOverlap {
		return nil,
			true
	}

	if currentStart < window.TimeEnd {
		free = append(
			free,
			Interval{
				Date:      window.Date,
				TimeStart: currentStart,
				TimeEnd:   window.TimeEnd,
			},
		)
	}

	return free,
		false
}
