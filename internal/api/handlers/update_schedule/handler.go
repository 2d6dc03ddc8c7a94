package update_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers/get_schedule"
	"github.com/m04kA/SMC-SlotCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/schedule"
)

const (
	msgInvalidOrgID       = "некорректный ID организации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "изменять расписание может только администратор"
	msgInvalidData        = "некорректные настройки расписания"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/orgs/{orgId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orgID, err := handlers.PathInt64(r, "orgId")
	if err != nil {
		h.logger.Warn("PUT /orgs/{id}/schedule - Invalid org ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	if !middleware.IsAdmin(r.Context()) {
		userID, _ := middleware.GetUserID(r.Context())
		h.logger.Warn("PUT /orgs/{id}/schedule - Access denied: org_id=%d, user_id=%d", orgID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /orgs/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(orgID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /orgs/{id}/schedule - Invalid data: org_id=%d, error=%v", orgID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /orgs/{id}/schedule - Failed to update schedule: org_id=%d, error=%v", orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /orgs/{id}/schedule - Schedule updated: org_id=%d", orgID)
	handlers.RespondJSON(w, http.StatusOK, get_schedule.FromServiceResponse(result))
}
