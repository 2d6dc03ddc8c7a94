package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// Store хранилище, которое оборачивает кэш
type Store interface {
	FetchBookings(ctx context.Context, orgID int64, month domain.Date) ([]domain.Booking, error)
	FetchSlotStatuses(ctx context.Context, orgID int64, month domain.Date) ([]domain.SlotOverride, error)
	FetchBooking(ctx context.Context, orgID, bookingID int64) (*domain.Booking, error)
	CreateBooking(ctx context.Context, payload domain.CreateBookingPayload) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, payload domain.DeleteBookingPayload) error
	FetchOccupancy(ctx context.Context, orgID int64, date domain.Date, hour int) (int, error)
	FetchSlotStatus(ctx context.Context, orgID int64, date domain.Date, hour int) (domain.SlotStatus, error)
	SetSlotStatus(ctx context.Context, orgID int64, date domain.Date, hour int, status domain.SlotStatus) error
}

// Cache key-value хранилище с TTL. Промах возвращает ErrCacheMiss
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// MetricsRecorder учёт попаданий в кэш (реализуется *metrics.Metrics)
type MetricsRecorder interface {
	RecordCacheLookup(cache, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
