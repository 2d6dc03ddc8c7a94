package toggle_slot_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
	manageSlots "github.com/m04kA/SMC-SlotCalendar/internal/usecase/manage_slots"
)

const (
	msgInvalidOrgID = "некорректный ID организации"
	msgInvalidSlot  = "некорректная дата (DD.MM.YYYY) или час слота"
	msgForbidden    = "открывать и закрывать слоты может только администратор"
)

// ToggleResponse HTTP response model
type ToggleResponse struct {
	Date      string `json:"date"`
	Hour      string `json:"hour"`
	Toggled   bool   `json:"toggled"` // false - слот заполнен, статус не менялся
	Status    string `json:"status"`
	Occupancy int    `json:"occupancy"`
}

type Handler struct {
	useCase ToggleSlotUseCase
	logger  Logger
}

func NewHandler(useCase ToggleSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orgs/{orgId}/slots/{date}/{hour}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orgID, err := handlers.PathInt64(r, "orgId")
	if err != nil {
		h.logger.Warn("PATCH /orgs/{id}/slots/status - Invalid org ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	date, err := handlers.PathDate(r, "date")
	if err != nil {
		h.logger.Warn("PATCH /orgs/{id}/slots/status - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	hour, err := handlers.PathHour(r, "hour")
	if err != nil {
		h.logger.Warn("PATCH /orgs/{id}/slots/status - Invalid hour: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.useCase.Toggle(r.Context(), &manageSlots.ToggleRequest{
		OrgID:   orgID,
		IsAdmin: middleware.IsAdmin(r.Context()),
		Date:    date,
		Hour:    hour,
	})
	if err != nil {
		switch {
		case errors.Is(err, manageSlots.ErrAccessDenied):
			userID, _ := middleware.GetUserID(r.Context())
			h.logger.Warn("PATCH /orgs/{id}/slots/status - Access denied: org_id=%d, user_id=%d", orgID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, manageSlots.ErrInvalidInput), errors.Is(err, lifecycle.ErrInvalidInput):
			h.logger.Warn("PATCH /orgs/{id}/slots/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("PATCH /orgs/{id}/slots/status - Failed to toggle slot: org_id=%d, error=%v", orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orgs/{id}/slots/status - org_id=%d, date=%s, hour=%d, toggled=%t, status=%s",
		orgID, date, hour, result.Toggled, result.Status)
	handlers.RespondJSON(w, http.StatusOK, &ToggleResponse{
		Date:      result.Date.String(),
		Hour:      strconv.Itoa(result.Hour),
		Toggled:   result.Toggled,
		Status:    result.Status.String(),
		Occupancy: result.Occupancy,
	})
}
