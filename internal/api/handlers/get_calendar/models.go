package get_calendar

import (
	"strconv"

	getCalendar "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	OrgID    int64            `json:"orgId"`
	Date     string           `json:"date"` // "15.01.2024"
	View     string           `json:"view"`
	Schedule ScheduleResponse `json:"schedule"`
	Days     []DayResponse    `json:"days"`
}

// ScheduleResponse настройки, по которым построена сетка
type ScheduleResponse struct {
	StartHour         int      `json:"startHour"`
	EndHour           int      `json:"endHour"`
	SlotMinuteOffset  int      `json:"slotMinuteOffset"`
	WorkingDays       []string `json:"workingDays"`
	MaxEntriesPerSlot int      `json:"maxEntriesPerSlot"`
}

// DayResponse день сетки
type DayResponse struct {
	Date        string         `json:"date"`
	Weekday     string         `json:"weekday"`
	ShowThisDay bool           `json:"showThisDay"`
	Slots       []SlotResponse `json:"slots"`
}

// SlotResponse слот. Hour - строка без ведущих нулей ("9")
type SlotResponse struct {
	Hour      string             `json:"hour"`
	Label     string             `json:"label"`
	Status    string             `json:"status"`
	Occupancy int                `json:"occupancy"`
	Capacity  int                `json:"capacity"`
	Free      int                `json:"free"`
	Overflow  bool               `json:"overflow"`
	Bookable  bool               `json:"bookable"`
	Occupants []OccupantResponse `json:"occupants"`
}

// OccupantResponse бронирование в слоте
type OccupantResponse struct {
	BookingID     int64  `json:"bookingId"`
	UserID        int64  `json:"userId"`
	IsMine        bool   `json:"isMine"`
	CreatedBySelf bool   `json:"createdBySelf"`
	UserName      string `json:"userName,omitempty"`
	UserPhone     string `json:"userPhone,omitempty"`
	Comment       string `json:"comment,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	return &CalendarResponse{
		OrgID: resp.OrgID,
		Date:  resp.Date.String(),
		View:  string(resp.View),
		Schedule: ScheduleResponse{
			StartHour:         resp.Config.StartHour,
			EndHour:           resp.Config.EndHour,
			SlotMinuteOffset:  resp.Config.SlotMinuteOffset,
			WorkingDays:       resp.Config.WorkingDays,
			MaxEntriesPerSlot: resp.Config.MaxEntriesPerSlot,
		},
		Days: FromUseCaseDays(resp.Days),
	}
}

// FromUseCaseDays конвертирует дни сетки
func FromUseCaseDays(days []getCalendar.Day) []DayResponse {
	out := make([]DayResponse, 0, len(days))
	for _, d := range days {
		day := DayResponse{
			Date:        d.Date.String(),
			Weekday:     d.Weekday,
			ShowThisDay: d.ShowThisDay,
			Slots:       make([]SlotResponse, 0, len(d.Slots)),
		}
		for _, s := range d.Slots {
			slot := SlotResponse{
				Hour:      strconv.Itoa(s.Hour),
				Label:     s.Label,
				Status:    s.Status.String(),
				Occupancy: s.Occupancy,
				Capacity:  s.Capacity,
				Free:      s.Free,
				Overflow:  s.Overflow,
				Bookable:  s.Bookable,
				Occupants: make([]OccupantResponse, 0, len(s.Occupants)),
			}
			for _, o := range s.Occupants {
				slot.Occupants = append(slot.Occupants, OccupantResponse{
					BookingID:     o.BookingID,
					UserID:        o.UserID,
					IsMine:        o.IsMine,
					CreatedBySelf: o.CreatedBySelf,
					UserName:      o.UserName,
					UserPhone:     o.UserPhone,
					Comment:       o.Comment,
				})
			}
			day.Slots = append(day.Slots, slot)
		}
		out = append(out, day)
	}
	return out
}
