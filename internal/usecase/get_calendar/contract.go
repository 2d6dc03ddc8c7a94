package get_calendar

import (
	"context"

	"github.com/m04kA/SMC-SlotCalendar/internal/coordinator"
)

// ViewRegistry координаторы отображения по организациям
type ViewRegistry interface {
	Get(ctx context.Context, orgID int64) (*coordinator.Coordinator, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
