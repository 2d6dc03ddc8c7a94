package get_slot_occupancy

import (
	"context"

	manageSlots "github.com/m04kA/SMC-SlotCalendar/internal/usecase/manage_slots"
)

type OccupancyUseCase interface {
	Occupancy(ctx context.Context, req *manageSlots.OccupancyRequest) (*manageSlots.OccupancyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
