package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrgID <= 0 {
		return fmt.Errorf("%w: org id must be positive", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actor id must be positive", ErrInvalidInput)
	}
	if req.UserID < 0 {
		return fmt.Errorf("%w: user id must not be negative", ErrInvalidInput)
	}
	if req.Date.IsZero() || !req.Date.Valid() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Hour < domain.MinHour || req.Hour > domain.MaxHour {
		return fmt.Errorf("%w: hour must be between %d and %d", ErrInvalidInput, domain.MinHour, domain.MaxHour)
	}
	return nil
}

// validateNotInPast проверяет, что слот ещё не начался
func validateNotInPast(cfg domain.ScheduleConfig, date domain.Date, hour int, now time.Time, loc *time.Location) error {
	if !cfg.SlotStart(date, hour, loc).After(now) {
		return fmt.Errorf("%w: %s %s", ErrSlotInPast, date, cfg.SlotLabel(hour))
	}
	return nil
}
