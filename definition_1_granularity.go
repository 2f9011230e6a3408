package scheduler

import (
	"fmt"
	"time"
)

const (
	DefaultGranularity   = Granularity(30)
	DefaultEndTimeCap    = 48
	DefaultUpcomingLimit = 20
	DefaultWeekStartsOn  = time.Sunday
)

// Granularity is the slot length in minutes shared by one scheduling round.
type Granularity int

func (g Granularity) Validate() error {
	if g <= 0 || MinutesPerDay%int(g) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidGranularity, g)
	}

	return nil
}

func (g Granularity) Minutes() int {
	return int(g)
}

// Settings are the knobs the engines need from their caller.
type Settings struct {
	Granularity   Granularity
	EndTimeCap    int
	UpcomingLimit int
	WeekStartsOn  time.Weekday
}

func DefaultSettings() Settings {
	return Settings{
		Granularity:   DefaultGranularity,
		EndTimeCap:    DefaultEndTimeCap,
		UpcomingLimit: DefaultUpcomingLimit,
		WeekStartsOn:  DefaultWeekStartsOn,
	}
}

func (s Settings) Validate() error {
	if errGranularity := s.Granularity.Validate(); errGranularity != nil {
		return errGranularity
	}

	if s.EndTimeCap <= 0 {
		return fmt.Errorf("%w: end time cap %d", ErrOutOfRange, s.EndTimeCap)
	}

	if s.WeekStartsOn < time.Sunday || s.WeekStartsOn > time.Saturday {
		return fmt.Errorf("%w: week start %d", ErrOutOfRange, s.WeekStartsOn)
	}

	return nil
}
