package domain

import "errors"

var (
	// ErrInvalidDate returned for malformed or out-of-range calendar dates
	ErrInvalidDate = errors.New("domain: invalid date")

	// ErrUnknownWeekday returned for weekday codes outside the canonical set
	ErrUnknownWeekday = errors.New("domain: unknown weekday code")

	// ErrInvalidSchedule returned when a ScheduleConfig violates its invariants
	ErrInvalidSchedule = errors.New("domain: invalid schedule config")

	// ErrInvalidSlotStatus returned for status values other than open/closed
	ErrInvalidSlotStatus = errors.New("domain: invalid slot status")

	// ErrInvalidViewMode returned for view modes other than day/week/month
	ErrInvalidViewMode = errors.New("domain: invalid view mode")
)
