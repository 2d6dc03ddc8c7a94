package get_schedule

import (
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/service/schedule/models"
)

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	OrgID             int64    `json:"orgId"`
	StartHour         int      `json:"startHour"`
	EndHour           int      `json:"endHour"`
	SlotMinuteOffset  int      `json:"slotMinuteOffset"`
	WorkingDays       []string `json:"workingDays"`
	MaxEntriesPerSlot int      `json:"maxEntriesPerSlot"`
	CancelLeadHours   int      `json:"cancelLeadHours"`
	IsDefault         bool     `json:"isDefault"`
	UpdatedAt         *string  `json:"updatedAt,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.ScheduleResponse) *ScheduleResponse {
	out := &ScheduleResponse{
		OrgID:             resp.OrgID,
		StartHour:         resp.StartHour,
		EndHour:           resp.EndHour,
		SlotMinuteOffset:  resp.SlotMinuteOffset,
		WorkingDays:       resp.WorkingDays,
		MaxEntriesPerSlot: resp.MaxEntriesPerSlot,
		CancelLeadHours:   resp.CancelLeadHours,
		IsDefault:         resp.IsDefault,
	}
	if resp.UpdatedAt != nil {
		updatedAt := resp.UpdatedAt.Format(time.RFC3339)
		out.UpdatedAt = &updatedAt
	}
	return out
}
