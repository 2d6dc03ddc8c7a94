package get_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	getCalendar "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
)

const (
	msgInvalidOrgID = "некорректный ID организации"
	msgInvalidDate  = "некорректный формат даты, ожидается DD.MM.YYYY"
	msgInvalidView  = "некорректный режим отображения, ожидается day, week или month"
	msgInvalidInput = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/orgs/{orgId}/calendar?date=15.01.2024&view=week
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orgID, err := handlers.PathInt64(r, "orgId")
	if err != nil {
		h.logger.Warn("GET /orgs/{id}/calendar - Invalid org ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	query := r.URL.Query()

	date, err := domain.ParseDate(query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /orgs/{id}/calendar - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	view, err := domain.ParseViewMode(query.Get("view"))
	if err != nil {
		h.logger.Warn("GET /orgs/{id}/calendar - Invalid view: %v", err)
		handlers.RespondBadRequest(w, msgInvalidView)
		return
	}

	// Пользователь необязателен: без него чужие данные скрыты
	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.useCase.Execute(r.Context(), &getCalendar.Request{
		OrgID:   orgID,
		ActorID: userID,
		IsAdmin: middleware.IsAdmin(r.Context()),
		Date:    date,
		View:    view,
	})
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /orgs/{id}/calendar - Invalid input: org_id=%d, error=%v", orgID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /orgs/{id}/calendar - Failed to build calendar: org_id=%d, error=%v", orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /orgs/{id}/calendar - Calendar built: org_id=%d, view=%s, days=%d", orgID, view, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
