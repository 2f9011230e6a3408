package scheduler

import (
	"fmt"
	"slices"

	goerrors "github.com/TudorHulban/go-errors"
)

// IntersectSlots returns, in chronological order, the keys present in every set.
// No sets means no one to intersect, the result is empty.
func IntersectSlots(sets []*DaySlotSet) []SlotKey {
	if len(sets) == 0 {
		return nil
	}

	smallest := sets[0]

	for _, set := range sets[1:] {
		if set.Len() < smallest.Len() {
			smallest = set
		}
	}

	result := make([]SlotKey, 0, smallest.Len())

	for _, key := range smallest.Keys() {
		inAll := true

		for _, set := range sets {
			if !set.Contains(key) {
				inAll = false

				break
			}
		}

		if inAll {
			result = append(result, key)
		}
	}

	return result
}

// MergeSlots collapses consecutive keys of one date into ranges.
// Keys not aligned to granularity are refused, merging them would be wrong.
func MergeSlots(keys []SlotKey, granularity Granularity) ([]CommonRange, error) {
	if errGranularity := granularity.Validate(); errGranularity != nil {
		return nil,
			errGranularity
	}

	if len(keys) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(keys)

	slices.SortFunc(
		sorted,
		func(a, b SlotKey) int {
			return a.Compare(b)
		},
	)

	sorted = slices.Compact(sorted)

	for _, key := range sorted {
		if !key.Time.IsAligned(granularity) {
			return nil,
				fmt.Errorf(
					"%w: slot %s is not on a %d minute grid",

					ErrGranularityMismatch,
					key,
					granularity,
				)
		}

		if key.Time >= EndOfDay {
			return nil,
				fmt.Errorf("%w: slot %s", ErrOutOfRange, key)
		}
	}

	step := granularity.Minutes()

	var result []CommonRange

	open := sorted[0]
	previous := sorted[0]

	closeRange := func() {
		result = append(
			result,
			CommonRange{
				Date:      open.Date,
				TimeStart: open.Time,
				TimeEnd:   previous.Time.AddMinutes(step),
			},
		)
	}

	for _, current := range sorted[1:] {
		if current.Date == previous.Date && current.Time == previous.Time.AddMinutes(step) {
			previous = current

			continue
		}

		closeRange()

		open = current
		previous = current
	}

	closeRange()

	return result,
		nil
}

type ParamsCommonAvailability struct {
	Participants []*DaySlotSet

	// Window, when set, is checked against every response and its granularity wins.
	Window      *SchedulingWindow
	Granularity Granularity
}

// CommonAvailability returns the ranges every responding participant can attend.
func CommonAvailability(params *ParamsCommonAvailability) ([]CommonRange, error) {
	granularity := params.Granularity

	if params.Window != nil {
		if errValidation := params.Window.Validate(); errValidation != nil {
			return nil,
				errValidation
		}

		if granularity != 0 && granularity != params.Window.Granularity {
			return nil,
				fmt.Errorf(
					"%w: requested %d, window uses %d",

					ErrGranularityMismatch,
					granularity,
					params.Window.Granularity,
				)
		}

		granularity = params.Window.Granularity
	}

	if granularity == 0 {
		granularity = DefaultGranularity
	}

	if errGranularity := granularity.Validate(); errGranularity != nil {
		return nil,
			errGranularity
	}

	for ix, participant := range params.Participants {
		if participant == nil {
			return nil,
				goerrors.ErrValidation{
					Caller: "CommonAvailability",
					Issue: goerrors.ErrNilInput{
						InputName: fmt.Sprintf("Participants[%d]", ix),
					},
				}
		}

		if params.Window != nil {
			if errCheck := params.Window.CheckSlots(participant); errCheck != nil {
				return nil,
					errCheck
			}

			continue
		}

		for key := range participant.slots {
			if !key.Time.IsAligned(granularity) {
				return nil,
					fmt.Errorf(
						"%w: participant %q slot %s is not on a %d minute grid",

						ErrGranularityMismatch,
						participant.Participant,
						key,
						granularity,
					)
			}
		}
	}

	return MergeSlots(
		IntersectSlots(params.Participants),
		granularity,
	)
}
