package scheduler

import (
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"
)

type ParamsEndTimes struct {
	Existing []Interval

	Date      Date
	TimeStart TimeOfDay

	Granularity Granularity // zero means DefaultGranularity
	Cap         int         // zero means DefaultEndTimeCap
}

func (p *ParamsEndTimes) normalize(caller string) (Granularity, int, error) {
	granularity := ternary(p.Granularity == 0, DefaultGranularity, p.Granularity)
	limit := ternary(p.Cap == 0, DefaultEndTimeCap, p.Cap)

	if errGranularity := granularity.Validate(); errGranularity != nil {
		return 0, 0, errGranularity
	}

	if limit < 0 {
		return 0, 0,
			goerrors.ErrValidation{
				Caller: caller,
				Issue: goerrors.ErrNegativeInput{
					InputName: "Cap",
				},
			}
	}

	if !p.TimeStart.IsValid() {
		return 0, 0,
			fmt.Errorf("%w: time start %d", ErrOutOfRange, p.TimeStart)
	}

	return granularity, limit, nil
}

// EndTimeCandidates lists the end times a booking starting at TimeStart may take.
// Enumeration stops before the first end that would overlap a booking of the same
// date, after the "24:00" sentinel, or once Cap candidates were produced.
// An empty result means no booking can start there.
func EndTimeCandidates(params *ParamsEndTimes) ([]TimeOfDay, error) {
	granularity, limit, errNormalize := params.normalize("EndTimeCandidates")
	if errNormalize != nil {
		return nil,
			errNormalize
	}

	sameDate := filterByDate(params.Existing, params.Date)

	result := make([]TimeOfDay, 0)

	if params.TimeStart.IsEndOfDay() {
		return result, nil
	}

	candidate := params.TimeStart.AddMinutes(granularity.Minutes())

	for len(result) < limit {
		// a start off the grid still ends the day at the sentinel
		candidate = min(candidate, EndOfDay)

		if overlapsAny(params.TimeStart, candidate, sameDate) {
			break
		}

		result = append(result, candidate)

		if candidate.IsEndOfDay() {
			break
		}

		candidate = candidate.AddMinutes(granularity.Minutes())
	}

	return result,
		nil
}

func overlapsAny(timeStart, timeEnd TimeOfDay, intervals []Interval) bool {
	for _, interval := range intervals {
		if overlaps(timeStart, timeEnd, interval.TimeStart, interval.TimeEnd) {
			return true
		}
	}

	return false
}

type ParamsStartTimes struct {
	Existing []Interval

	Date      Date
	TimeStart TimeOfDay // first grid cell offered
	TimeEnd   TimeOfDay // cells start before this

	Granularity Granularity
}

// StartTimeCandidates lists the grid cells of a date from which a booking can be made.
func StartTimeCandidates(params *ParamsStartTimes) ([]TimeOfDay, error) {
	granularity := ternary(params.Granularity == 0, DefaultGranularity, params.Granularity)

	if errGranularity := granularity.Validate(); errGranularity != nil {
		return nil,
			errGranularity
	}

	if !params.TimeStart.IsValid() || !params.TimeEnd.IsValid() || params.TimeStart > params.TimeEnd {
		return nil,
			goerrors.ErrValidation{
				Caller: "StartTimeCandidates",
				Issue: goerrors.ErrInvalidInput{
					InputName:  "TimeEnd",
					InputValue: params.TimeEnd.String(),
					Issue:      ErrInvalidInterval,
				},
			}
	}

	sameDate := filterByDate(params.Existing, params.Date)

	result := make([]TimeOfDay, 0)

	for t := params.TimeStart; t < params.TimeEnd; t = t.AddMinutes(granularity.Minutes()) {
		ends, errEnds := EndTimeCandidates(
			&ParamsEndTimes{
				Existing:    sameDate,
				Date:        params.Date,
				TimeStart:   t,
				Granularity: granularity,
				Cap:         1,
			},
		)
		if errEnds != nil {
			return nil,
				errEnds
		}

		if len(ends) > 0 {
			result = append(result, t)
		}
	}

	return result,
		nil
}
