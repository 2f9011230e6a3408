package scheduler

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Booking struct {
	Interval

	CreatedAt time.Time
}

// daySchedule holds the bookings of one date, writes to it are serialized.
type daySchedule struct {
	mu       sync.Mutex
	bookings []Booking
}

// Ledger stores bookings in memory and guarantees that two callers booking
// the same date are serialized, so only one of them can get a given slot.
type Ledger struct {
	logger   *zap.Logger
	settings Settings
	now      func() time.Time

	mu   sync.RWMutex
	days map[Date]*daySchedule
}

type ParamsNewLedger struct {
	Logger   *zap.Logger
	Settings Settings
	Now      func() time.Time
}

func NewLedger(params *ParamsNewLedger) (*Ledger, error) {
	if params == nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewLedger",
				Issue: goerrors.ErrNilInput{
					InputName: "params",
				},
			}
	}

	settings := params.Settings
	if settings == (Settings{}) {
		settings = DefaultSettings()
	}

	if errValidation := settings.Validate(); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Ledger",
				Caller:      "NewLedger",
				Issue:       errValidation,
			}
	}

	return &Ledger{
			logger:   ternary(params.Logger == nil, zap.NewNop(), params.Logger),
			settings: settings,
			now:      ternary(params.Now == nil, time.Now, params.Now),

			days: make(map[Date]*daySchedule),
		},
		nil
}

func (l *Ledger) Settings() Settings {
	return l.settings
}

func (l *Ledger) day(date Date) *daySchedule {
	l.mu.RLock()
	schedule, exists := l.days[date]
	l.mu.RUnlock()

	if exists {
		return schedule
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if schedule, exists = l.days[date]; exists {
		return schedule
	}

	schedule = &daySchedule{}
	l.days[date] = schedule

	return schedule
}

type ParamsBook struct {
	Date Date

	TimeStart TimeOfDay
	TimeEnd   TimeOfDay

	Owner string `valid:"required"`
	Label string `valid:"required"`
	Kind  Kind
}

func (p *ParamsBook) interval() Interval {
	return Interval{
		Date:      p.Date,
		TimeStart: p.TimeStart,
		TimeEnd:   p.TimeEnd,

		Payload: Payload{
			Owner: p.Owner,
			Label: p.Label,
			Kind:  ternary(p.Kind == "", KindSolo, p.Kind),
		},
	}
}

func (l *Ledger) validate(caller string, params *ParamsBook) (Interval, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return Interval{},
			goerrors.ErrServiceValidation{
				ServiceName: "Ledger",
				Caller:      caller,
				Issue:       errValidation,
			}
	}

	if params.Date.IsZero() {
		return Interval{},
			goerrors.ErrValidation{
				Caller: caller,
				Issue: goerrors.ErrNilInput{
					InputName: "Date",
				},
			}
	}

	interval := params.interval()

	if errValidation := interval.Validate(); errValidation != nil {
		return Interval{},
			errValidation
	}

	if !interval.TimeStart.IsAligned(l.settings.Granularity) ||
		!interval.TimeEnd.IsAligned(l.settings.Granularity) {
		return Interval{},
			fmt.Errorf(
				"%w: %s is not on a %d minute grid",

				ErrGranularityMismatch,
				interval,
				l.settings.Granularity,
			)
	}

	return interval,
		nil
}

// Book stores a booking unless it overlaps one already stored on that date.
func (l *Ledger) Book(ctx context.Context, params *ParamsBook) (*Booking, error) {
	result, errBook := l.bookAll(ctx, "Book", params)
	if errBook != nil {
		return nil,
			errBook
	}

	return result[0],
		nil
}

type ParamsBookConcert struct {
	ParamsBook

	// optional, both zero means no rehearsal
	RehearsalStart TimeOfDay
	RehearsalEnd   TimeOfDay
}

// BookConcert stores the concert and its rehearsal, or neither of them.
func (l *Ledger) BookConcert(ctx context.Context, params *ParamsBookConcert) ([]*Booking, error) {
	concert := params.ParamsBook
	concert.Kind = KindConcert

	all := []*ParamsBook{&concert}

	if params.RehearsalStart != 0 || params.RehearsalEnd != 0 {
		rehearsal := concert
		rehearsal.TimeStart = params.RehearsalStart
		rehearsal.TimeEnd = params.RehearsalEnd
		rehearsal.Label = "rehearsal: " + concert.Label

		all = append(all, &rehearsal)
	}

	return l.bookAll(ctx, "BookConcert", all...)
}

type ParamsConfirmRange struct {
	CommonRange

	Owner string
	Label string
}

// ConfirmRange books the ensemble session the participants agreed on.
func (l *Ledger) ConfirmRange(ctx context.Context, params *ParamsConfirmRange) (*Booking, error) {
	return l.Book(
		ctx,
		&ParamsBook{
			Date:      params.Date,
			TimeStart: params.TimeStart,
			TimeEnd:   params.TimeEnd,
			Owner:     params.Owner,
			Label:     params.Label,
			Kind:      KindEnsemble,
		},
	)
}

func (l *Ledger) bookAll(ctx context.Context, caller string, params ...*ParamsBook) ([]*Booking, error) {
	if errCtx := ctx.Err(); errCtx != nil {
		return nil,
			errCtx
	}

	requested := make([]Interval, len(params))

	for ix, param := range params {
		interval, errValidation := l.validate(caller, param)
		if errValidation != nil {
			return nil,
				errValidation
		}

		if ix > 0 && interval.Date != requested[0].Date {
			return nil,
				goerrors.ErrInvalidInput{
					Caller:     caller,
					InputName:  "Date",
					InputValue: interval.Date.String(),
					Issue:      ErrInvalidInterval,
				}
		}

		for _, previous := range requested[:ix] {
			if previous.Overlaps(interval) {
				return nil,
					&ErrConflict{
						Requested: interval,
						Existing:  previous,
					}
			}
		}

		requested[ix] = interval
	}

	schedule := l.day(requested[0].Date)

	schedule.mu.Lock()
	defer schedule.mu.Unlock()

	for _, interval := range requested {
		for _, existing := range schedule.bookings {
			if existing.Overlaps(interval) {
				l.logger.Info(
					"booking refused",
					zap.String("caller", caller),
					zap.Stringer("requested", interval),
					zap.String("conflicting", existing.ID),
				)

				return nil,
					&ErrConflict{
						Requested: interval,
						Existing:  existing.Interval,
					}
			}
		}
	}

	result := make([]*Booking, len(requested))

	for ix, interval := range requested {
		interval.ID = uuid.NewString()

		booking := Booking{
			Interval:  interval,
			CreatedAt: l.now(),
		}

		schedule.bookings = append(schedule.bookings, booking)
		result[ix] = &booking

		l.logger.Info(
			"booking accepted",
			zap.String("caller", caller),
			zap.String("id", interval.ID),
			zap.Stringer("interval", interval),
			zap.String("kind", string(interval.Kind)),
		)
	}

	slices.SortStableFunc(
		schedule.bookings,
		func(a, b Booking) int {
			return int(a.TimeStart) - int(b.TimeStart)
		},
	)

	return result,
		nil
}

func (l *Ledger) Remove(_ context.Context, id string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, schedule := range l.days {
		schedule.mu.Lock()

		ix := slices.IndexFunc(
			schedule.bookings,
			func(b Booking) bool {
				return b.ID == id
			},
		)

		if ix >= 0 {
			schedule.bookings = slices.Delete(schedule.bookings, ix, ix+1)
			schedule.mu.Unlock()

			l.logger.Info("booking removed", zap.String("id", id))

			return nil
		}

		schedule.mu.Unlock()
	}

	return fmt.Errorf("%w: %s", ErrBookingNotFound, id)
}

// Day returns the intervals booked on date ordered by start.
func (l *Ledger) Day(date Date) []Interval {
	l.mu.RLock()
	schedule, exists := l.days[date]
	l.mu.RUnlock()

	if !exists {
		return nil
	}

	schedule.mu.Lock()
	defer schedule.mu.Unlock()

	result := make([]Interval, len(schedule.bookings))

	for ix, booking := range schedule.bookings {
		result[ix] = booking.Interval
	}

	return result
}

// Week returns the intervals booked in the week holding anyDayOfWeek.
func (l *Ledger) Week(anyDayOfWeek Date) []Interval {
	var result []Interval

	for _, date := range anyDayOfWeek.WeekDates(l.settings.WeekStartsOn) {
		result = append(result, l.Day(date)...)
	}

	return result
}

// Upcoming returns bookings from today on, by date then start, at most limit of them.
// A limit of zero uses the configured one.
func (l *Ledger) Upcoming(today Date, limit int) []Interval {
	l.mu.RLock()

	dates := make([]Date, 0, len(l.days))

	for date := range l.days {
		if !date.Before(today) {
			dates = append(dates, date)
		}
	}

	l.mu.RUnlock()

	slices.SortFunc(
		dates,
		func(a, b Date) int {
			return a.Compare(b)
		},
	)

	limit = ternary(limit == 0, l.settings.UpcomingLimit, limit)

	var result []Interval

	for _, date := range dates {
		for _, interval := range l.Day(date) {
			if limit > 0 && len(result) == limit {
				return result
			}

			result = append(result, interval)
		}
	}

	return result
}

// EndTimes offers the end times for a booking starting at timeStart on date.
func (l *Ledger) EndTimes(date Date, timeStart TimeOfDay) ([]TimeOfDay, error) {
	return EndTimeCandidates(
		&ParamsEndTimes{
			Existing:    l.Day(date),
			Date:        date,
			TimeStart:   timeStart,
			Granularity: l.settings.Granularity,
			Cap:         l.settings.EndTimeCap,
		},
	)
}

// LayoutWeek lays out the stored bookings of the week holding anyDayOfWeek.
func (l *Ledger) LayoutWeek(anyDayOfWeek Date) ([]DayLayout, error) {
	return LayoutWeek(
		&ParamsLayoutWeek{
			Intervals:    l.Week(anyDayOfWeek),
			AnyDayOfWeek: anyDayOfWeek,
			WeekStartsOn: l.settings.WeekStartsOn,
		},
	)
}

// FreeTime returns the unbooked gaps of a date inside [timeStart, timeEnd).
func (l *Ledger) FreeTime(date Date, timeStart, timeEnd TimeOfDay) []Interval {
	window := Interval{
		Date:      date,
		TimeStart: timeStart,
		TimeEnd:   timeEnd,
	}

	free, isFree := FreeIntervals(l.Day(date), window)
	if isFree {
		return []Interval{window}
	}

	return free
}

func (l *Ledger) String() string {
	var sb strings.Builder

	sb.WriteString("Ledger:\n")

	for _, interval := range l.Upcoming(Date{}, -1) {
		sb.WriteString(
			fmt.Sprintf(
				"- %s %s %s %q by %s\n",

				interval.ID,
				interval.String(),
				interval.Kind,
				interval.Label,
				interval.Owner,
			),
		)
	}

	return sb.String()
}
