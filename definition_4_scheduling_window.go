package scheduler

import (
	"errors"
	"fmt"
	"slices"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

// SchedulingWindow is the grid every participant of one room is offered:
// the same dates, the same daily limits and the same granularity.
type SchedulingWindow struct {
	Dates []Date `valid:"required"`

	TimeStart   TimeOfDay
	TimeEnd     TimeOfDay
	Granularity Granularity
}

func (w *SchedulingWindow) Validate() error {
	if _, errValidation := govalidator.ValidateStruct(w); errValidation != nil {
		return goerrors.ErrServiceValidation{
			ServiceName: "Availability",
			Caller:      "SchedulingWindow.Validate",
			Issue:       errValidation,
		}
	}

	if errGranularity := w.Granularity.Validate(); errGranularity != nil {
		return errGranularity
	}

	if !w.TimeStart.IsValid() || !w.TimeEnd.IsValid() || w.TimeStart >= w.TimeEnd {
		return goerrors.ErrValidation{
			Caller: "SchedulingWindow.Validate",
			Issue: goerrors.ErrInvalidInput{
				InputName:  "TimeEnd",
				InputValue: w.TimeEnd.String(),
				Issue:      ErrInvalidInterval,
			},
		}
	}

	if !w.TimeStart.IsAligned(w.Granularity) || !w.TimeEnd.IsAligned(w.Granularity) {
		return fmt.Errorf(
			"%w: window %s-%s is not on a %d minute grid",

			ErrGranularityMismatch,
			w.TimeStart,
			w.TimeEnd,
			w.Granularity,
		)
	}

	seen := make(map[Date]struct{}, len(w.Dates))

	for _, date := range w.Dates {
		if _, exists := seen[date]; exists {
			return goerrors.ErrValidation{
				Caller: "SchedulingWindow.Validate",
				Issue: goerrors.ErrInvalidInput{
					InputName:  "Dates",
					InputValue: date.String(),
					Issue:      errors.New("duplicate date"),
				},
			}
		}

		seen[date] = struct{}{}
	}

	return nil
}

func (w *SchedulingWindow) sortedDates() []Date {
	dates := slices.Clone(w.Dates)

	slices.SortFunc(
		dates,
		func(a, b Date) int {
			return a.Compare(b)
		},
	)

	return dates
}

// Grid enumerates every slot offered to the participants, in chronological order.
func (w *SchedulingWindow) Grid() []SlotKey {
	if w.Granularity <= 0 {
		return nil
	}

	var result []SlotKey

	for _, date := range w.sortedDates() {
		for t := w.TimeStart; t < w.TimeEnd; t = t.AddMinutes(w.Granularity.Minutes()) {
			result = append(
				result,
				SlotKey{
					Date: date,
					Time: t,
				},
			)
		}
	}

	return result
}

func (w *SchedulingWindow) contains(key SlotKey) bool {
	return slices.Contains(w.Dates, key.Date) &&
		w.TimeStart <= key.Time &&
		key.Time < w.TimeEnd
}

// CheckSlots rejects a response not taken on this window's grid.
func (w *SchedulingWindow) CheckSlots(set *DaySlotSet) error {
	for _, key := range set.Keys() {
		if !key.Time.IsAligned(w.Granularity) {
			return fmt.Errorf(
				"%w: participant %q slot %s is not on a %d minute grid",

				ErrGranularityMismatch,
				set.Participant,
				key,
				w.Granularity,
			)
		}

		if !w.contains(key) {
			return fmt.Errorf(
				"%w: participant %q slot %s",

				ErrOffGrid,
				set.Participant,
				key,
			)
		}
	}

	return nil
}
