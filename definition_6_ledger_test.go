package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestLedger(t *testing.T) (*Ledger, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)

	ledger, errCr := NewLedger(
		&ParamsNewLedger{
			Logger: zap.New(core),
			Now: func() time.Time {
				return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
			},
		},
	)
	require.NoError(t, errCr)
	require.NotNil(t, ledger)

	return ledger, logs
}

func paramsBook(t *testing.T, date, start, end, label string) *ParamsBook {
	t.Helper()

	return &ParamsBook{
		Date:      mustDate(t, date),
		TimeStart: mustTime(t, start),
		TimeEnd:   mustTime(t, end),
		Owner:     "member",
		Label:     label,
	}
}

func TestErrorsLedger(t *testing.T) {
	t.Run(
		"1. nil params",
		func(t *testing.T) {
			ledger, errCr := NewLedger(nil)
			require.Error(t, errCr)
			require.Nil(t, ledger)
		},
	)

	t.Run(
		"2. bad granularity",
		func(t *testing.T) {
			ledger, errCr := NewLedger(
				&ParamsNewLedger{
					Settings: Settings{
						Granularity: 25,
						EndTimeCap:  48,
					},
				},
			)
			require.Error(t, errCr)
			require.Nil(t, ledger)
		},
	)

	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	t.Run(
		"3. missing owner and label",
		func(t *testing.T) {
			booking, errBook := ledger.Book(
				ctx,
				&ParamsBook{
					Date:      mustDate(t, "2026-02-10"),
					TimeStart: mustTime(t, "09:00"),
					TimeEnd:   mustTime(t, "10:00"),
				},
			)
			require.Error(t, errBook)
			require.Nil(t, booking)
		},
	)

	t.Run(
		"4. missing date",
		func(t *testing.T) {
			params := paramsBook(t, "2026-02-10", "09:00", "10:00", "practice")
			params.Date = Date{}

			_, errBook := ledger.Book(ctx, params)
			require.Error(t, errBook)
		},
	)

	t.Run(
		"5. inverted interval",
		func(t *testing.T) {
			_, errBook := ledger.Book(ctx, paramsBook(t, "2026-02-10", "10:00", "09:00", "practice"))
			require.ErrorIs(t, errBook, ErrInvalidInterval)
		},
	)

	t.Run(
		"6. off the grid",
		func(t *testing.T) {
			_, errBook := ledger.Book(ctx, paramsBook(t, "2026-02-10", "09:10", "10:00", "practice"))
			require.ErrorIs(t, errBook, ErrGranularityMismatch)
		},
	)

	t.Run(
		"7. cancelled context",
		func(t *testing.T) {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, errBook := ledger.Book(cancelled, paramsBook(t, "2026-02-10", "09:00", "10:00", "practice"))
			require.ErrorIs(t, errBook, context.Canceled)
		},
	)
}

func TestLifeCycleLedger(t *testing.T) {
	ledger, logs := newTestLedger(t)
	ctx := context.Background()

	first, errFirst := ledger.Book(ctx, paramsBook(t, "2026-02-10", "10:00", "11:00", "practice"))
	require.NoError(t, errFirst)
	require.NotEmpty(t, first.ID)
	require.Equal(t, KindSolo, first.Kind)
	require.Equal(t, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC), first.CreatedAt)

	_, errConflict := ledger.Book(ctx, paramsBook(t, "2026-02-10", "10:30", "12:00", "late"))
	require.ErrorIs(t, errConflict, ErrBookingConflict)

	var conflict *ErrConflict
	require.ErrorAs(t, errConflict, &conflict)
	require.Equal(t, first.ID, conflict.Existing.ID)

	touching, errTouching := ledger.Book(ctx, paramsBook(t, "2026-02-10", "09:00", "10:00", "early"))
	require.NoError(t, errTouching)

	require.Equal(t,
		[]string{touching.ID, first.ID},
		[]string{ledger.Day(mustDate(t, "2026-02-10"))[0].ID, ledger.Day(mustDate(t, "2026-02-10"))[1].ID},
	)

	ends, errEnds := ledger.EndTimes(mustDate(t, "2026-02-10"), mustTime(t, "08:00"))
	require.NoError(t, errEnds)
	require.Equal(t, timesOf(t, "08:30", "09:00"), ends)

	free := ledger.FreeTime(mustDate(t, "2026-02-10"), mustTime(t, "08:00"), mustTime(t, "12:00"))
	require.Equal(t,
		[]Interval{
			newInterval(t, "", "2026-02-10", "08:00", "09:00"),
			newInterval(t, "", "2026-02-10", "11:00", "12:00"),
		},
		free,
	)

	require.Len(t, ledger.FreeTime(mustDate(t, "2026-02-12"), mustTime(t, "08:00"), mustTime(t, "12:00")), 1)

	require.NoError(t, ledger.Remove(ctx, first.ID))
	require.ErrorIs(t, ledger.Remove(ctx, first.ID), ErrBookingNotFound)
	require.Len(t, ledger.Day(mustDate(t, "2026-02-10")), 1)

	require.Equal(t, 2, logs.FilterMessage("booking accepted").Len())
	require.Equal(t, 1, logs.FilterMessage("booking refused").Len())
	require.Equal(t, 1, logs.FilterMessage("booking removed").Len())
}

func TestLedgerConcurrentBookingsOfOneSlot(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	const callers = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		accepted  int
		conflicts int
	)

	params := make([]*ParamsBook, callers)

	for ix := range params {
		params[ix] = paramsBook(t, "2026-02-10", "20:00", "22:00", "gig")
	}

	for _, param := range params {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, errBook := ledger.Book(ctx, param)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case errBook == nil:
				accepted++
			case errors.Is(errBook, ErrBookingConflict):
				conflicts++
			}
		}()
	}

	wg.Wait()

	require.Equal(t, 1, accepted)
	require.Equal(t, callers-1, conflicts)
	require.Len(t, ledger.Day(mustDate(t, "2026-02-10")), 1)
}

func TestLedgerBookConcert(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	bookings, errConcert := ledger.BookConcert(
		ctx,
		&ParamsBookConcert{
			ParamsBook:     *paramsBook(t, "2026-03-07", "19:00", "21:00", "spring concert"),
			RehearsalStart: mustTime(t, "15:00"),
			RehearsalEnd:   mustTime(t, "17:00"),
		},
	)
	require.NoError(t, errConcert)
	require.Len(t, bookings, 2)
	require.Equal(t, KindConcert, bookings[0].Kind)
	require.Equal(t, "rehearsal: spring concert", bookings[1].Label)

	// rehearsal clashes, neither part is stored
	_, errClash := ledger.BookConcert(
		ctx,
		&ParamsBookConcert{
			ParamsBook:     *paramsBook(t, "2026-03-07", "22:00", "24:00", "late show"),
			RehearsalStart: mustTime(t, "16:00"),
			RehearsalEnd:   mustTime(t, "17:30"),
		},
	)
	require.ErrorIs(t, errClash, ErrBookingConflict)
	require.Len(t, ledger.Day(mustDate(t, "2026-03-07")), 2)

	_, errSelf := ledger.BookConcert(
		ctx,
		&ParamsBookConcert{
			ParamsBook:     *paramsBook(t, "2026-03-08", "19:00", "21:00", "overlapping rehearsal"),
			RehearsalStart: mustTime(t, "20:00"),
			RehearsalEnd:   mustTime(t, "22:00"),
		},
	)
	require.ErrorIs(t, errSelf, ErrBookingConflict)
	require.Empty(t, ledger.Day(mustDate(t, "2026-03-08")))
}

func TestLedgerConfirmRangeAndViews(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	ranges, errAvailability := CommonAvailability(
		&ParamsCommonAvailability{
			Participants: []*DaySlotSet{
				slotSet(t, "P1", "2026-02-03", "14:00", "14:30", "15:00"),
				slotSet(t, "P2", "2026-02-03", "14:30", "15:00", "15:30"),
			},
		},
	)
	require.NoError(t, errAvailability)
	require.Len(t, ranges, 1)

	ensemble, errConfirm := ledger.ConfirmRange(
		ctx,
		&ParamsConfirmRange{
			CommonRange: ranges[0],
			Owner:       "band",
			Label:       "weekly rehearsal",
		},
	)
	require.NoError(t, errConfirm)
	require.Equal(t, KindEnsemble, ensemble.Kind)
	require.Equal(t, mustTime(t, "14:30"), ensemble.TimeStart)
	require.Equal(t, mustTime(t, "15:30"), ensemble.TimeEnd)

	_, errAgain := ledger.ConfirmRange(ctx, &ParamsConfirmRange{CommonRange: ranges[0], Owner: "band", Label: "again"})
	require.ErrorIs(t, errAgain, ErrBookingConflict)

	_, errSolo := ledger.Book(ctx, paramsBook(t, "2026-02-03", "14:00", "15:00", "solo practice"))
	require.ErrorIs(t, errSolo, ErrBookingConflict)

	_, errLater := ledger.Book(ctx, paramsBook(t, "2026-02-05", "09:00", "10:00", "later"))
	require.NoError(t, errLater)

	_, errPast := ledger.Book(ctx, paramsBook(t, "2026-01-20", "09:00", "10:00", "past"))
	require.NoError(t, errPast)

	upcoming := ledger.Upcoming(mustDate(t, "2026-02-01"), 0)
	require.Len(t, upcoming, 2)
	require.Equal(t, "weekly rehearsal", upcoming[0].Label)
	require.Equal(t, "later", upcoming[1].Label)

	require.Len(t, ledger.Upcoming(mustDate(t, "2026-02-01"), 1), 1)
	require.Len(t, ledger.Week(mustDate(t, "2026-02-04")), 2)

	days, errLayout := ledger.LayoutWeek(mustDate(t, "2026-02-04"))
	require.NoError(t, errLayout)
	require.Len(t, days, DaysPerWeek)
	require.Len(t, days[2].Placements(), 1)

	require.Contains(t, ledger.String(), "past")
}
