package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
)

const (
	MinutesPerDay = 1440

	StartOfDay = TimeOfDay(0)
	EndOfDay   = TimeOfDay(MinutesPerDay) // "24:00", a booking running until midnight

	// storedEndOfDay is how the store persists the midnight sentinel.
	storedEndOfDay = "23:59:59"

	patternTimeOfDay = `^\d{1,2}:\d{2}(:\d{2})?$`
)

// TimeOfDay counts minutes since midnight, in [0, 1440].
type TimeOfDay int

// ParseTimeOfDay accepts "HH:mm" or "HH:mm:ss", seconds are ignored.
func ParseTimeOfDay(text string) (TimeOfDay, error) {
	if !govalidator.Matches(text, patternTimeOfDay) {
		return 0,
			&ErrTimeParse{
				Raw:   text,
				Issue: ErrInvalidFormat,
			}
	}

	parts := strings.Split(text, ":")

	values := make([]int, 3)

	for ix, part := range parts {
		value, errConv := strconv.Atoi(part)
		if errConv != nil {
			return 0,
				&ErrTimeParse{
					Raw:   text,
					Issue: fmt.Errorf("%w: %s", ErrInvalidFormat, errConv),
				}
		}

		values[ix] = value
	}

	hour, minute, second := values[0], values[1], values[2]

	if minute > 59 || second > 59 {
		return 0,
			&ErrTimeParse{
				Raw:   text,
				Issue: fmt.Errorf("%w: minute %d, second %d", ErrOutOfRange, minute, second),
			}
	}

	if hour > 24 || (hour == 24 && (minute != 0 || second != 0)) {
		return 0,
			&ErrTimeParse{
				Raw:   text,
				Issue: fmt.Errorf("%w: hour %d", ErrOutOfRange, hour),
			}
	}

	return TimeOfDay(hour*60 + minute),
		nil
}

// ParseStoredTimeOfDay reads times as persisted, where "23:59:59" stands for "24:00".
func ParseStoredTimeOfDay(text string) (TimeOfDay, error) {
	if text == storedEndOfDay {
		return EndOfDay, nil
	}

	return ParseTimeOfDay(text)
}

func FromMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return 0,
			fmt.Errorf("%w: %d minutes", ErrOutOfRange, minutes)
	}

	return TimeOfDay(minutes),
		nil
}

func (t TimeOfDay) Minutes() int {
	return int(t)
}

func (t TimeOfDay) AddMinutes(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t < other
}

func (t TimeOfDay) IsEndOfDay() bool {
	return t == EndOfDay
}

func (t TimeOfDay) IsValid() bool {
	return t >= StartOfDay && t <= EndOfDay
}

func (t TimeOfDay) IsAligned(granularity Granularity) bool {
	return granularity > 0 && int(t)%int(granularity) == 0
}

// String renders "HH:mm", the sentinel being "24:00".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// StorageString renders "HH:mm:ss" the way the store keeps TIME columns.
func (t TimeOfDay) StorageString() string {
	if t.IsEndOfDay() {
		return storedEndOfDay
	}

	return t.String() + ":00"
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, errParse := ParseStoredTimeOfDay(string(text))
	if errParse != nil {
		return errParse
	}

	*t = parsed

	return nil
}
