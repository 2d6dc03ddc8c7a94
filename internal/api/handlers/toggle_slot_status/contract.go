package toggle_slot_status

import (
	"context"

	manageSlots "github.com/m04kA/SMC-SlotCalendar/internal/usecase/manage_slots"
)

type ToggleSlotUseCase interface {
	Toggle(ctx context.Context, req *manageSlots.ToggleRequest) (*manageSlots.ToggleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
