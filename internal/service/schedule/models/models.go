package models

import (
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// UpdateScheduleRequest настройки, которые сохраняет администратор.
// WorkingDays в любом порядке и регистре, допускаются русские сокращения
type UpdateScheduleRequest struct {
	OrgID             int64
	StartHour         int
	EndHour           int
	SlotMinuteOffset  int
	WorkingDays       []string
	MaxEntriesPerSlot int
	CancelLeadHours   int
}

// ScheduleResponse настройки организации
type ScheduleResponse struct {
	OrgID             int64
	StartHour         int
	EndHour           int
	SlotMinuteOffset  int
	WorkingDays       []string
	MaxEntriesPerSlot int
	CancelLeadHours   int
	IsDefault         bool // организация ещё не сохраняла настройки
	UpdatedAt         *time.Time
}

// FromDomainConfig конвертирует доменную модель в ответ
func FromDomainConfig(cfg domain.ScheduleConfig, isDefault bool) *ScheduleResponse {
	resp := &ScheduleResponse{
		OrgID:             cfg.OrgID,
		StartHour:         cfg.StartHour,
		EndHour:           cfg.EndHour,
		SlotMinuteOffset:  cfg.SlotMinuteOffset,
		WorkingDays:       domain.WeekdayStrings(cfg.WorkingDays),
		MaxEntriesPerSlot: cfg.MaxEntriesPerSlot,
		CancelLeadHours:   cfg.CancelLeadHours,
		IsDefault:         isDefault,
	}
	if !cfg.UpdatedAt.IsZero() {
		updatedAt := cfg.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
