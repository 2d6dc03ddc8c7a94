package create_booking

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	calendarHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/get_calendar"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	createBooking "github.com/m04kA/SMC-SlotCalendar/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date          string `json:"date"`                    // "15.01.2024"
	Hour          string `json:"hour"`                    // "10"
	UserID        int64  `json:"userId,omitempty"`        // только для администратора
	SeenOccupancy *int   `json:"seenOccupancy,omitempty"` // занятость слота в сетке клиента
	UserName      string `json:"userName,omitempty"`
	UserPhone     string `json:"userPhone,omitempty"`
	Comment       string `json:"comment,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64                        `json:"id"`
	OrgID         int64                        `json:"orgId"`
	UserID        int64                        `json:"userId"`
	Date          string                       `json:"date"`
	Hour          string                       `json:"hour"`
	SlotStatus    string                       `json:"slotStatus"`
	CreatedBySelf bool                         `json:"createdBySelf"`
	UserName      string                       `json:"userName,omitempty"`
	UserPhone     string                       `json:"userPhone,omitempty"`
	Comment       string                       `json:"comment,omitempty"`
	CreatedAt     string                       `json:"createdAt"`
	Day           *calendarHandler.DayResponse `json:"day,omitempty"` // день после записи
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(orgID, actorID int64, isAdmin bool) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	hour, err := handlers.ParseHour(r.Hour)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		OrgID:         orgID,
		ActorID:       actorID,
		IsAdmin:       isAdmin,
		UserID:        r.UserID,
		Date:          date,
		Hour:          hour,
		SeenOccupancy: r.SeenOccupancy,
		UserName:      r.UserName,
		UserPhone:     r.UserPhone,
		Comment:       r.Comment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		OrgID:         resp.OrgID,
		UserID:        resp.UserID,
		Date:          resp.Date.String(),
		Hour:          strconv.Itoa(resp.Hour),
		SlotStatus:    resp.SlotStatus.String(),
		CreatedBySelf: resp.CreatedBySelf,
		UserName:      resp.UserName,
		UserPhone:     resp.UserPhone,
		Comment:       resp.Comment,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
