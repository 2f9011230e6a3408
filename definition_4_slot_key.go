package scheduler

import (
	"fmt"
	"strings"
)

// SlotKey identifies one discrete slot, rendered "YYYY-MM-DD HH:mm".
type SlotKey struct {
	Date Date
	Time TimeOfDay
}

func NewSlotKey(date Date, t TimeOfDay) (SlotKey, error) {
	// a slot starting at the midnight sentinel has no room left in the day
	if t < StartOfDay || t >= EndOfDay {
		return SlotKey{},
			fmt.Errorf("%w: slot start %s", ErrOutOfRange, t)
	}

	return SlotKey{
			Date: date,
			Time: t,
		},
		nil
}

func ParseSlotKey(text string) (SlotKey, error) {
	datePart, timePart, found := strings.Cut(text, " ")
	if !found {
		return SlotKey{},
			&ErrTimeParse{
				Raw:   text,
				Issue: ErrInvalidFormat,
			}
	}

	date, errDate := ParseDate(datePart)
	if errDate != nil {
		return SlotKey{},
			errDate
	}

	t, errTime := ParseTimeOfDay(timePart)
	if errTime != nil {
		return SlotKey{},
			errTime
	}

	key, errKey := NewSlotKey(date, t)
	if errKey != nil {
		return SlotKey{},
			&ErrTimeParse{
				Raw:   text,
				Issue: errKey,
			}
	}

	return key,
		nil
}

func (k SlotKey) Compare(other SlotKey) int {
	if byDate := k.Date.Compare(other.Date); byDate != 0 {
		return byDate
	}

	return int(k.Time) - int(other.Time)
}

func (k SlotKey) String() string {
	return k.Date.String() + " " + k.Time.String()
}
