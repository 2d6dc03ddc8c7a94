package cancel_booking

import (
	"strconv"

	calendarHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/get_calendar"
	manageSlots "github.com/m04kA/SMC-SlotCalendar/internal/usecase/manage_slots"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID  int64                        `json:"bookingId"`
	Date       string                       `json:"date"`
	Hour       string                       `json:"hour"`
	SlotStatus string                       `json:"slotStatus"` // статус слота после отмены
	Occupancy  int                          `json:"occupancy"`
	Day        *calendarHandler.DayResponse `json:"day,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *manageSlots.CancelResponse) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:  resp.BookingID,
		Date:       resp.Date.String(),
		Hour:       strconv.Itoa(resp.Hour),
		SlotStatus: resp.SlotStatus.String(),
		Occupancy:  resp.Occupancy,
	}
}
