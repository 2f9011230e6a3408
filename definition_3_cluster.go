package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
)

// Placement is an interval with the column it is drawn in.
type Placement struct {
	Interval

	Column      int
	ColumnCount int
}

// Cluster is a maximal group of transitively overlapping intervals of one date.
type Cluster struct {
	Placements []Placement

	TimeStart   TimeOfDay
	TimeEnd     TimeOfDay
	ColumnCount int
}

func (c Cluster) String() string {
	var sb strings.Builder

	sb.WriteString(
		fmt.Sprintf(
			"Cluster %s-%s, %d column(s):\n",

			c.TimeStart,
			c.TimeEnd,
			c.ColumnCount,
		),
	)

	for _, placement := range c.Placements {
		sb.WriteString(
			fmt.Sprintf(
				"- [%s-%s] column %d/%d → %s %q\n",

				placement.TimeStart,
				placement.TimeEnd,
				placement.Column,
				placement.ColumnCount,
				placement.ID,
				placement.Label,
			),
		)
	}

	return sb.String()
}

// ClusterDay groups the intervals of one date into clusters and assigns columns.
// Intervals must be valid and share a date, see LayoutDay for the checked variant.
func ClusterDay(intervals []Interval) []Cluster {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)

	// stable, so equal starts keep the input order
	sort.SliceStable(
		sorted,
		func(i, j int) bool {
			return sorted[i].TimeStart < sorted[j].TimeStart
		},
	)

	var result []Cluster

	clusterStart := 0
	clusterEnd := sorted[0].TimeEnd

	for ix := 1; ix < len(sorted); ix++ {
		if sorted[ix].TimeStart >= clusterEnd {
			result = append(result, assignColumns(sorted[clusterStart:ix]))

			clusterStart = ix
			clusterEnd = sorted[ix].TimeEnd

			continue
		}

		clusterEnd = max(clusterEnd, sorted[ix].TimeEnd)
	}

	return append(result, assignColumns(sorted[clusterStart:]))
}

// assignColumns places each member in the leftmost track free at its start.
// tracks holds, per column, the index of the last member placed there.
func assignColumns(members []Interval) Cluster {
	placements := make([]Placement, len(members))
	tracks := make([]int, 0, 1)

	clusterEnd := members[0].TimeEnd

	for ix, member := range members {
		column := -1

		for trackIx, lastIx := range tracks {
			if members[lastIx].TimeEnd <= member.TimeStart {
				column = trackIx

				break
			}
		}

		if column == -1 {
			tracks = append(tracks, ix)
			column = len(tracks) - 1
		} else {
			tracks[column] = ix
		}

		placements[ix] = Placement{
			Interval: member,
			Column:   column,
		}

		clusterEnd = max(clusterEnd, member.TimeEnd)
	}

	for ix := range placements {
		placements[ix].ColumnCount = len(tracks)
	}

	return Cluster{
		Placements:  placements,
		TimeStart:   members[0].TimeStart,
		TimeEnd:     clusterEnd,
		ColumnCount: len(tracks),
	}
}

// LayoutDay validates the intervals and clusters them, failing fast on bad input.
func LayoutDay(intervals []Interval) ([]Cluster, error) {
	for _, interval := range intervals {
		if errValidation := interval.Validate(); errValidation != nil {
			return nil,
				errValidation
		}

		if interval.Date != intervals[0].Date {
			return nil,
				goerrors.ErrInvalidInput{
					Caller:     "LayoutDay",
					InputName:  "Date",
					InputValue: interval.Date.String(),
					Issue: errors.New(
						"intervals span more than one date",
					),
				}
		}
	}

	return ClusterDay(intervals),
		nil
}
