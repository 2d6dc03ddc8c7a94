package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-SlotCalendar/internal/usecase/create_booking"
	getCalendar "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// CalendarUseCase нужен, чтобы вернуть обновлённый день вместе с бронированием
type CalendarUseCase interface {
	Execute(ctx context.Context, req *getCalendar.Request) (*getCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
