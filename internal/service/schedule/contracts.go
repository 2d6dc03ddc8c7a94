package schedule

import (
	"context"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// ScheduleRepository интерфейс хранилища настроек расписания
type ScheduleRepository interface {
	GetScheduleConfig(ctx context.Context, orgID int64) (*domain.ScheduleConfig, error)
	SaveScheduleConfig(ctx context.Context, cfg domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

// Observer получает новую конфигурацию после сохранения
type Observer interface {
	ScheduleChanged(ctx context.Context, cfg domain.ScheduleConfig)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
