package scheduler

import (
	"time"

	goerrors "github.com/TudorHulban/go-errors"
)

type DayLayout struct {
	Date     Date
	Clusters []Cluster
}

// Placements flattens the clusters of the day.
func (d DayLayout) Placements() []Placement {
	var result []Placement

	for _, cluster := range d.Clusters {
		result = append(result, cluster.Placements...)
	}

	return result
}

type ParamsLayoutWeek struct {
	Intervals []Interval

	AnyDayOfWeek Date
	WeekStartsOn time.Weekday
}

// LayoutWeek lays out the seven days of the week holding AnyDayOfWeek.
// Intervals outside the week are ignored.
func LayoutWeek(params *ParamsLayoutWeek) ([]DayLayout, error) {
	if params.AnyDayOfWeek.IsZero() {
		return nil,
			goerrors.ErrValidation{
				Caller: "LayoutWeek",
				Issue: goerrors.ErrNilInput{
					InputName: "AnyDayOfWeek",
				},
			}
	}

	dates := params.AnyDayOfWeek.WeekDates(params.WeekStartsOn)

	perDate := make(map[Date][]Interval, DaysPerWeek)

	for _, interval := range params.Intervals {
		perDate[interval.Date] = append(perDate[interval.Date], interval)
	}

	result := make([]DayLayout, len(dates))

	for ix, date := range dates {
		clusters, errLayout := LayoutDay(perDate[date])
		if errLayout != nil {
			return nil,
				errLayout
		}

		result[ix] = DayLayout{
			Date:     date,
			Clusters: clusters,
		}
	}

	return result,
		nil
}

// BookingAt returns the first interval covering the grid cell at (date, t).
func BookingAt(intervals []Interval, date Date, t TimeOfDay) (Interval, bool) {
	for _, interval := range intervals {
		if interval.Date == date && interval.Covers(t) {
			return interval, true
		}
	}

	return Interval{}, false
}
