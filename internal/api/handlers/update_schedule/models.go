package update_schedule

import "github.com/m04kA/SMC-SlotCalendar/internal/service/schedule/models"

// UpdateScheduleRequest HTTP request model.
// Рабочие дни в любом порядке: ["Пн", "wed", "Mon"]
type UpdateScheduleRequest struct {
	StartHour         int      `json:"startHour"`
	EndHour           int      `json:"endHour"`
	SlotMinuteOffset  int      `json:"slotMinuteOffset"`
	WorkingDays       []string `json:"workingDays"`
	MaxEntriesPerSlot int      `json:"maxEntriesPerSlot"`
	CancelLeadHours   int      `json:"cancelLeadHours"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(orgID int64) *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		OrgID:             orgID,
		StartHour:         r.StartHour,
		EndHour:           r.EndHour,
		SlotMinuteOffset:  r.SlotMinuteOffset,
		WorkingDays:       r.WorkingDays,
		MaxEntriesPerSlot: r.MaxEntriesPerSlot,
		CancelLeadHours:   r.CancelLeadHours,
	}
}
