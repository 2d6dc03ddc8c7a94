package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	calendarHandler "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/get_calendar"
	"github.com/m04kA/SMC-SlotCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
	createBooking "github.com/m04kA/SMC-SlotCalendar/internal/usecase/create_booking"
	getCalendar "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
)

const (
	msgInvalidOrgID       = "некорректный ID организации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректная дата (DD.MM.YYYY) или час слота"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgCapacityExceeded   = "в этом слоте больше нет мест"
	msgSlotFull           = "слот уже заполнен, выберите другое время"
	msgSlotClosed         = "слот закрыт администратором"
	msgOutsideSchedule    = "выбранное время вне рабочего расписания"
	msgSlotInPast         = "нельзя записаться на прошедшее время"
	msgForbidden          = "доступ запрещен"
	msgUserNotFound       = "пользователь не найден"
)

type Handler struct {
	useCase  CreateBookingUseCase
	calendar CalendarUseCase
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, calendar CalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		calendar: calendar,
		logger:   logger,
	}
}

// Handle POST /api/v1/orgs/{orgId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orgID, err := handlers.PathInt64(r, "orgId")
	if err != nil {
		h.logger.Warn("POST /orgs/{id}/bookings - Invalid org ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orgs/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	isAdmin := middleware.IsAdmin(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orgs/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и часа)
	useCaseReq, err := req.ToUseCaseRequest(orgID, userID, isAdmin)
	if err != nil {
		h.logger.Warn("POST /orgs/{id}/bookings - Failed to parse slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrCapacityExceeded):
			h.logger.Warn("POST /orgs/{id}/bookings - Capacity exceeded: org_id=%d, user_id=%d", orgID, userID)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, lifecycle.ErrSlotFull):
			h.logger.Warn("POST /orgs/{id}/bookings - Slot full: org_id=%d, user_id=%d", orgID, userID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, lifecycle.ErrSlotClosed):
			h.logger.Warn("POST /orgs/{id}/bookings - Slot closed: org_id=%d, user_id=%d", orgID, userID)
			handlers.RespondConflict(w, msgSlotClosed)

		case errors.Is(err, lifecycle.ErrOutsideSchedule):
			h.logger.Warn("POST /orgs/{id}/bookings - Outside schedule: org_id=%d, user_id=%d", orgID, userID)
			handlers.RespondBadRequest(w, msgOutsideSchedule)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /orgs/{id}/bookings - Slot in past: org_id=%d, user_id=%d", orgID, userID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrInvalidInput), errors.Is(err, lifecycle.ErrInvalidInput):
			h.logger.Warn("POST /orgs/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /orgs/{id}/bookings - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /orgs/{id}/bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("POST /orgs/{id}/bookings - Failed to create booking: org_id=%d, user_id=%d, error=%v",
				orgID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)
	response.Day = h.refreshedDay(r, orgID, userID, isAdmin, result.Date)

	h.logger.Info("POST /orgs/{id}/bookings - Booking created successfully: booking_id=%d, org_id=%d, user_id=%d",
		result.ID, orgID, result.UserID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// refreshedDay день бронирования после записи. Ошибка не отменяет успешный ответ
func (h *Handler) refreshedDay(r *http.Request, orgID, userID int64, isAdmin bool, date domain.Date) *calendarHandler.DayResponse {
	resp, err := h.calendar.Execute(r.Context(), &getCalendar.Request{
		OrgID:   orgID,
		ActorID: userID,
		IsAdmin: isAdmin,
		Date:    date,
		View:    domain.ViewDay,
	})
	if err != nil || len(resp.Days) != 1 {
		h.logger.Warn("POST /orgs/{id}/bookings - Failed to refresh day %s: %v", date, err)
		return nil
	}
	return &calendarHandler.FromUseCaseDays(resp.Days)[0]
}
