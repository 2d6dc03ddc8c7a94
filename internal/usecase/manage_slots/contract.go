package manage_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
)

// ConfigProvider источник настроек расписания организации
type ConfigProvider interface {
	GetConfig(ctx context.Context, orgID int64) (domain.ScheduleConfig, bool, error)
}

// BookingManager менеджер жизненного цикла бронирований
type BookingManager interface {
	CheckAvailability(ctx context.Context, cfg domain.ScheduleConfig, date domain.Date, hour int) (int, error)
	Cancel(ctx context.Context, cfg domain.ScheduleConfig, req *lifecycle.CancelRequest) (*lifecycle.CancelResult, error)
	ToggleSlotStatus(ctx context.Context, cfg domain.ScheduleConfig, req *lifecycle.ToggleRequest) (*lifecycle.ToggleResult, error)
	SlotStatus(ctx context.Context, cfg domain.ScheduleConfig, date domain.Date, hour int) (domain.SlotStatus, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
