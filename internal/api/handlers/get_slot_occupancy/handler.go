package get_slot_occupancy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
	manageSlots "github.com/m04kA/SMC-SlotCalendar/internal/usecase/manage_slots"
)

const (
	msgInvalidOrgID = "некорректный ID организации"
	msgInvalidSlot  = "некорректная дата (DD.MM.YYYY) или час слота"
)

// OccupancyResponse HTTP response model
type OccupancyResponse struct {
	Date       string `json:"date"`
	Hour       string `json:"hour"`
	Occupancy  int    `json:"occupancy"`
	MaxEntries int    `json:"maxEntries"`
	Free       int    `json:"free"`
}

type Handler struct {
	useCase OccupancyUseCase
	logger  Logger
}

func NewHandler(useCase OccupancyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/orgs/{orgId}/slots/{date}/{hour}/occupancy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orgID, err := handlers.PathInt64(r, "orgId")
	if err != nil {
		h.logger.Warn("GET /orgs/{id}/slots/occupancy - Invalid org ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	date, err := handlers.PathDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /orgs/{id}/slots/occupancy - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	hour, err := handlers.PathHour(r, "hour")
	if err != nil {
		h.logger.Warn("GET /orgs/{id}/slots/occupancy - Invalid hour: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.useCase.Occupancy(r.Context(), &manageSlots.OccupancyRequest{OrgID: orgID, Date: date, Hour: hour})
	if err != nil {
		switch {
		case errors.Is(err, manageSlots.ErrInvalidInput), errors.Is(err, lifecycle.ErrInvalidInput):
			h.logger.Warn("GET /orgs/{id}/slots/occupancy - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("GET /orgs/{id}/slots/occupancy - Failed to get occupancy: org_id=%d, error=%v", orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &OccupancyResponse{
		Date:       result.Date.String(),
		Hour:       strconv.Itoa(result.Hour),
		Occupancy:  result.Occupancy,
		MaxEntries: result.Capacity,
		Free:       result.Free,
	})
}
