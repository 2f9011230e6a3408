package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, text string) TimeOfDay {
	t.Helper()

	result, errParse := ParseTimeOfDay(text)
	require.NoError(t, errParse)

	return result
}

func mustDate(t *testing.T, text string) Date {
	t.Helper()

	result, errParse := ParseDate(text)
	require.NoError(t, errParse)

	return result
}

func mustSlot(t *testing.T, text string) SlotKey {
	t.Helper()

	result, errParse := ParseSlotKey(text)
	require.NoError(t, errParse)

	return result
}

func newInterval(t *testing.T, id, date, start, end string) Interval {
	t.Helper()

	return Interval{
		ID:        id,
		Date:      mustDate(t, date),
		TimeStart: mustTime(t, start),
		TimeEnd:   mustTime(t, end),
	}
}

func timesOf(t *testing.T, texts ...string) []TimeOfDay {
	t.Helper()

	result := make([]TimeOfDay, len(texts))

	for ix, text := range texts {
		result[ix] = mustTime(t, text)
	}

	return result
}
