package lifecycle

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// BookingStore порт хранилища бронирований, которым пользуется менеджер
type BookingStore interface {
	FetchBooking(ctx context.Context, orgID, bookingID int64) (*domain.Booking, error)
	CreateBooking(ctx context.Context, payload domain.CreateBookingPayload) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, payload domain.DeleteBookingPayload) error
	FetchOccupancy(ctx context.Context, orgID int64, date domain.Date, hour int) (int, error)
	FetchSlotStatus(ctx context.Context, orgID int64, date domain.Date, hour int) (domain.SlotStatus, error)
	SetSlotStatus(ctx context.Context, orgID int64, date domain.Date, hour int, status domain.SlotStatus) error
}

// Observer получает уведомление после того, как хранилище подтвердило запись
type Observer interface {
	BookingsChanged(ctx context.Context, orgID int64, date domain.Date)
}

// MetricsRecorder бизнес-метрики (реализуется *metrics.Metrics)
type MetricsRecorder interface {
	RecordBookingCreated(status string)
	RecordBookingRejected(reason string)
	RecordBookingCancelled(initiator string)
	RecordSlotToggled(status string)
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
