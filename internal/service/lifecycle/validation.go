package lifecycle

import (
	"fmt"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

func validateSlot(date domain.Date, hour int) error {
	if date.IsZero() || !date.Valid() {
		return fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}
	if hour < domain.MinHour || hour > domain.MaxHour {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidInput, hour)
	}
	return nil
}

func validateCreate(cfg domain.ScheduleConfig, req *CreateRequest) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if err := validateSlot(req.Date, req.Hour); err != nil {
		return err
	}
	if req.SeenOccupancy != nil && *req.SeenOccupancy < 0 {
		return fmt.Errorf("%w: negative occupancy", ErrInvalidInput)
	}
	if len([]rune(req.Comment)) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is longer than %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}
	if len([]rune(req.UserName)) > domain.MaxUserDisplayLength || len([]rune(req.UserPhone)) > domain.MaxUserDisplayLength {
		return fmt.Errorf("%w: user display fields are too long", ErrInvalidInput)
	}
	return nil
}
