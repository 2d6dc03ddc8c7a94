package domain

import (
	"fmt"
	"time"
)

// ScheduleConfig is an organization's booking rules, read-only for the scheduling core.
// A fresh value is produced whenever an admin saves settings.
type ScheduleConfig struct {
	OrgID             int64
	StartHour         int           // first bookable hour, inclusive
	EndHour           int           // last bookable hour, inclusive
	SlotMinuteOffset  int           // display-only minute component of every slot start
	WorkingDays       []WeekdayCode // canonical Mon..Sun order
	MaxEntriesPerSlot int
	CancelLeadHours   int // self-cancellation must happen at least this many hours before the slot, 0 = unlimited
	UpdatedAt         time.Time
}

// DefaultScheduleConfig is used for organizations without saved settings.
func DefaultScheduleConfig(orgID int64) ScheduleConfig {
	days := make([]WeekdayCode, len(DefaultWorkingDays))
	copy(days, DefaultWorkingDays)
	return ScheduleConfig{
		OrgID:             orgID,
		StartHour:         DefaultStartHour,
		EndHour:           DefaultEndHour,
		SlotMinuteOffset:  DefaultSlotMinuteOffset,
		WorkingDays:       days,
		MaxEntriesPerSlot: DefaultMaxEntriesPerSlot,
		CancelLeadHours:   DefaultCancelLeadHours,
	}
}

// Validate checks the config invariants.
func (c ScheduleConfig) Validate() error {
	if c.StartHour < MinHour || c.StartHour > MaxHour {
		return fmt.Errorf("%w: startHour %d out of range %d..%d", ErrInvalidSchedule, c.StartHour, MinHour, MaxHour)
	}
	if c.EndHour < MinHour || c.EndHour > MaxHour {
		return fmt.Errorf("%w: endHour %d out of range %d..%d", ErrInvalidSchedule, c.EndHour, MinHour, MaxHour)
	}
	if c.StartHour > c.EndHour {
		return fmt.Errorf("%w: startHour %d is after endHour %d", ErrInvalidSchedule, c.StartHour, c.EndHour)
	}
	if c.SlotMinuteOffset < 0 || c.SlotMinuteOffset > MaxSlotMinuteOffset {
		return fmt.Errorf("%w: slotMinuteOffset %d out of range 0..%d", ErrInvalidSchedule, c.SlotMinuteOffset, MaxSlotMinuteOffset)
	}
	if c.MaxEntriesPerSlot < MinEntriesPerSlot || c.MaxEntriesPerSlot > MaxEntriesPerSlot {
		return fmt.Errorf("%w: maxEntriesPerSlot %d out of range %d..%d",
			ErrInvalidSchedule, c.MaxEntriesPerSlot, MinEntriesPerSlot, MaxEntriesPerSlot)
	}
	if c.CancelLeadHours < 0 || c.CancelLeadHours > MaxCancelLeadHours {
		return fmt.Errorf("%w: cancelLeadHours %d out of range 0..%d", ErrInvalidSchedule, c.CancelLeadHours, MaxCancelLeadHours)
	}
	for _, d := range c.WorkingDays {
		if !d.Valid() {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, string(d))
		}
	}
	return nil
}

// IsWorkingDay reports whether d's weekday is in WorkingDays.
func (c ScheduleConfig) IsWorkingDay(d Date) bool {
	code := WeekdayCodeOf(d.Weekday())
	for _, wd := range c.WorkingDays {
		if wd == code {
			return true
		}
	}
	return false
}

// Hours returns the canonical hour keys StartHour..EndHour.
func (c ScheduleConfig) Hours() []int {
	if c.StartHour > c.EndHour {
		return nil
	}
	hours := make([]int, 0, c.EndHour-c.StartHour+1)
	for h := c.StartHour; h <= c.EndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// InRange reports whether hour lies in [StartHour, EndHour].
func (c ScheduleConfig) InRange(hour int) bool {
	return hour >= c.StartHour && hour <= c.EndHour
}

// SlotLabel display label like "09:30".
func (c ScheduleConfig) SlotLabel(hour int) string {
	return fmt.Sprintf("%02d:%02d", hour, c.SlotMinuteOffset)
}

// SlotStart moment the slot begins in loc.
func (c ScheduleConfig) SlotStart(date Date, hour int, loc *time.Location) time.Time {
	return date.In(loc).Add(time.Duration(hour)*time.Hour + time.Duration(c.SlotMinuteOffset)*time.Minute)
}

// Clone returns a deep copy so the caller may keep it as an immutable snapshot.
func (c ScheduleConfig) Clone() ScheduleConfig {
	out := c
	out.WorkingDays = make([]WeekdayCode, len(c.WorkingDays))
	copy(out.WorkingDays, c.WorkingDays)
	return out
}
