package scheduler

import (
	"fmt"
	"time"
)

const layoutDate = "2006-01-02"

const DaysPerWeek = 7

// Date is a calendar date without time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func DateOf(t time.Time) Date {
	year, month, day := t.Date()

	return Date{
		Year:  year,
		Month: month,
		Day:   day,
	}
}

func ParseDate(text string) (Date, error) {
	t, errParse := time.Parse(layoutDate, text)
	if errParse != nil {
		return Date{},
			&ErrTimeParse{
				Raw:   text,
				Issue: fmt.Errorf("%w: %s", ErrInvalidFormat, errParse),
			}
	}

	return DateOf(t),
		nil
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) AddDays(days int) Date {
	return DateOf(d.Time().AddDate(0, 0, days))
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) Compare(other Date) int {
	return d.Time().Compare(other.Time())
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// StartOfWeek returns the closest date on or before d falling on weekStartsOn.
func (d Date) StartOfWeek(weekStartsOn time.Weekday) Date {
	back := (int(d.Weekday()) - int(weekStartsOn) + DaysPerWeek) % DaysPerWeek

	return d.AddDays(-back)
}

// WeekDates returns the seven dates of the week holding d.
func (d Date) WeekDates(weekStartsOn time.Weekday) []Date {
	start := d.StartOfWeek(weekStartsOn)

	result := make([]Date, DaysPerWeek)

	for ix := range result {
		result[ix] = start.AddDays(ix)
	}

	return result
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, errParse := ParseDate(string(text))
	if errParse != nil {
		return errParse
	}

	*d = parsed

	return nil
}
