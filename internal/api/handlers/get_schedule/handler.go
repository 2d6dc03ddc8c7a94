package get_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
)

const msgInvalidOrgID = "некорректный ID организации"

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

// Handle GET /api/v1/orgs/{orgId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orgID, err := handlers.PathInt64(r, "orgId")
	if err != nil {
		h.logger.Warn("GET /orgs/{id}/schedule - Invalid org ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	result, err := h.service.Get(r.Context(), orgID)
	if err != nil {
		h.logger.Error("GET /orgs/{id}/schedule - Failed to get schedule: org_id=%d, error=%v", orgID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
