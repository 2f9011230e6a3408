package scheduler

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat       = errors.New("invalid format")
	ErrOutOfRange          = errors.New("out of range")
	ErrInvalidInterval     = errors.New("invalid interval, time start must be before time end")
	ErrGranularityMismatch = errors.New("granularity mismatch")
	ErrInvalidGranularity  = errors.New("granularity must be a positive divisor of 1440")
	ErrOffGrid             = errors.New("slot outside scheduling window")
	ErrBookingConflict     = errors.New("requested time slot is busy")
	ErrBookingNotFound     = errors.New("booking not found")
)

// ErrTimeParse carries the offending raw input next to the taxonomy error.
type ErrTimeParse struct {
	Raw   string
	Issue error
}

func (e *ErrTimeParse) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Raw, e.Issue)
}

func (e *ErrTimeParse) Unwrap() error {
	return e.Issue
}

// ErrConflict is returned when a booking would overlap one already stored.
type ErrConflict struct {
	Requested Interval
	Existing  Interval
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf(
		"%s: %s overlaps %s (%s)",

		ErrBookingConflict,
		e.Requested.String(),
		e.Existing.String(),
		e.Existing.ID,
	)
}

func (e *ErrConflict) Unwrap() error {
	return ErrBookingConflict
}
