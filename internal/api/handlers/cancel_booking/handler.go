package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	calendarHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/get_calendar"
	"github.com/m04kA/SMC-SlotCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
	getCalendar "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
	manageSlots "github.com/m04kA/SMC-SlotCalendar/internal/usecase/manage_slots"
)

const (
	msgInvalidOrgID     = "некорректный ID организации"
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgTooLate          = "отменить бронирование уже нельзя: слишком мало времени до начала"
	msgInvalidInput     = "некорректные данные запроса"
)

type Handler struct {
	useCase  CancelBookingUseCase
	calendar CalendarUseCase
	logger   Logger
}

func NewHandler(useCase CancelBookingUseCase, calendar CalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		calendar: calendar,
		logger:   logger,
	}
}

// Handle DELETE /api/v1/orgs/{orgId}/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orgID, err := handlers.PathInt64(r, "orgId")
	if err != nil {
		h.logger.Warn("DELETE /orgs/{id}/bookings/{id} - Invalid org ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /orgs/{id}/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /orgs/{id}/bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	isAdmin := middleware.IsAdmin(r.Context())

	result, err := h.useCase.Cancel(r.Context(), &manageSlots.CancelRequest{
		OrgID:     orgID,
		ActorID:   userID,
		IsAdmin:   isAdmin,
		BookingID: bookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrBookingNotFound):
			h.logger.Warn("DELETE /orgs/{id}/bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lifecycle.ErrAccessDenied):
			h.logger.Warn("DELETE /orgs/{id}/bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, lifecycle.ErrTooLateToCancel):
			h.logger.Warn("DELETE /orgs/{id}/bookings/{id} - Too late to cancel: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgTooLate)

		case errors.Is(err, manageSlots.ErrInvalidInput), errors.Is(err, lifecycle.ErrInvalidInput):
			h.logger.Warn("DELETE /orgs/{id}/bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("DELETE /orgs/{id}/bookings/{id} - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)
	response.Day = h.refreshedDay(r, orgID, userID, isAdmin, result.Date)

	h.logger.Info("DELETE /orgs/{id}/bookings/{id} - Booking cancelled successfully: booking_id=%d, user_id=%d, slot=%s",
		bookingID, userID, result.SlotStatus)
	handlers.RespondJSON(w, http.StatusOK, response)
}

func (h *Handler) refreshedDay(r *http.Request, orgID, userID int64, isAdmin bool, date domain.Date) *calendarHandler.DayResponse {
	resp, err := h.calendar.Execute(r.Context(), &getCalendar.Request{
		OrgID:   orgID,
		ActorID: userID,
		IsAdmin: isAdmin,
		Date:    date,
		View:    domain.ViewDay,
	})
	if err != nil || len(resp.Days) != 1 {
		h.logger.Warn("DELETE /orgs/{id}/bookings/{id} - Failed to refresh day %s: %v", date, err)
		return nil
	}
	return &calendarHandler.FromUseCaseDays(resp.Days)[0]
}
