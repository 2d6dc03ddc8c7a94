package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/integrations/userservice"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
)

// ConfigProvider источник настроек расписания организации
type ConfigProvider interface {
	GetConfig(ctx context.Context, orgID int64) (domain.ScheduleConfig, bool, error)
}

// BookingManager менеджер жизненного цикла бронирований
type BookingManager interface {
	Create(ctx context.Context, cfg domain.ScheduleConfig, req *lifecycle.CreateRequest) (*domain.Booking, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetProfileWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Profile, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
