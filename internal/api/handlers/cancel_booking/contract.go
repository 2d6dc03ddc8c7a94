package cancel_booking

import (
	"context"

	getCalendar "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
	manageSlots "github.com/m04kA/SMC-SlotCalendar/internal/usecase/manage_slots"
)

type CancelBookingUseCase interface {
	Cancel(ctx context.Context, req *manageSlots.CancelRequest) (*manageSlots.CancelResponse, error)
}

// CalendarUseCase нужен, чтобы вернуть обновлённый день вместе с результатом
type CalendarUseCase interface {
	Execute(ctx context.Context, req *getCalendar.Request) (*getCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
