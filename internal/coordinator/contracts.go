package coordinator

import (
	"context"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// Store источник снимка бронирований за месяц
type Store interface {
	FetchBookings(ctx context.Context, orgID int64, month domain.Date) ([]domain.Booking, error)
	FetchSlotStatuses(ctx context.Context, orgID int64, month domain.Date) ([]domain.SlotOverride, error)
}

// ConfigSource источник настроек организации (реализуется schedule.Service)
type ConfigSource interface {
	GetConfig(ctx context.Context, orgID int64) (domain.ScheduleConfig, bool, error)
}

// MetricsRecorder учёт перестроений сетки (реализуется *metrics.Metrics)
type MetricsRecorder interface {
	RecordGridRebuild(view string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
