package get_schedule

import (
	"context"

	"github.com/m04kA/SMC-SlotCalendar/internal/service/schedule/models"
)

type ScheduleService interface {
	Get(ctx context.Context, orgID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
