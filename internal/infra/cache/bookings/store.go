package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

const (
	cacheName  = "bookings"
	keyPrefix  = "calendar"
	DefaultTTL = 5 * time.Minute

	// generationSlots число счётчиков поколений. Ключи распределяются по ним
	// хешем, совпадение лишь пропускает одну запись в кэш
	generationSlots = 256
)

// CachedStore кэширует помесячные выборки бронирований и статусов слотов.
// Занятость и статус отдельного слота всегда читаются из хранилища:
// на них опирается повторная проверка перед записью.
// Любая успешная запись сбрасывает кэш месяца, которого она коснулась.
// Загрузка, начатая до записи, не попадает в кэш и не отдаётся
// чтениям, начатым после неё.
type CachedStore struct {
	next    Store
	cache   Cache
	ttl     time.Duration
	group   singleflight.Group
	metrics MetricsRecorder
	logger  Logger

	mu          sync.Mutex
	generations [generationSlots]uint64
}

// NewCachedStore создает кэширующую обёртку. metrics может быть nil
func NewCachedStore(next Store, cache Cache, ttl time.Duration, metrics MetricsRecorder, logger Logger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedStore{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

func bookingsKey(orgID int64, month domain.Date) string {
	return fmt.Sprintf("%s:bookings:%d:%04d-%02d", keyPrefix, orgID, month.Year, int(month.Month))
}

func slotStatusesKey(orgID int64, month domain.Date) string {
	return fmt.Sprintf("%s:slot_statuses:%d:%04d-%02d", keyPrefix, orgID, month.Year, int(month.Month))
}

// FetchBookings бронирования за месяц, из кэша или из хранилища
func (s *CachedStore) FetchBookings(ctx context.Context, orgID int64, month domain.Date) ([]domain.Booking, error) {
	var result []domain.Booking
	err := s.readThrough(ctx, bookingsKey(orgID, month), &result, func() (interface{}, error) {
		return s.next.FetchBookings(ctx, orgID, month)
	})
	return result, err
}

// FetchSlotStatuses статусы слотов за месяц, из кэша или из хранилища
func (s *CachedStore) FetchSlotStatuses(ctx context.Context, orgID int64, month domain.Date) ([]domain.SlotOverride, error) {
	var result []domain.SlotOverride
	err := s.readThrough(ctx, slotStatusesKey(orgID, month), &result, func() (interface{}, error) {
		return s.next.FetchSlotStatuses(ctx, orgID, month)
	})
	return result, err
}

func (s *CachedStore) FetchBooking(ctx context.Context, orgID, bookingID int64) (*domain.Booking, error) {
	return s.next.FetchBooking(ctx, orgID, bookingID)
}

func (s *CachedStore) FetchOccupancy(ctx context.Context, orgID int64, date domain.Date, hour int) (int, error) {
	return s.next.FetchOccupancy(ctx, orgID, date, hour)
}

func (s *CachedStore) FetchSlotStatus(ctx context.Context, orgID int64, date domain.Date, hour int) (domain.SlotStatus, error) {
	return s.next.FetchSlotStatus(ctx, orgID, date, hour)
}

func (s *CachedStore) CreateBooking(ctx context.Context, payload domain.CreateBookingPayload) (*domain.Booking, error) {
	b, err := s.next.CreateBooking(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, payload.OrgID, payload.Date)
	return b, nil
}

// DeleteBooking дату слота узнаёт до удаления, чтобы сбросить нужный месяц
func (s *CachedStore) DeleteBooking(ctx context.Context, payload domain.DeleteBookingPayload) error {
	b, err := s.next.FetchBooking(ctx, payload.OrgID, payload.BookingID)
	if err != nil {
		return err
	}
	if err := s.next.DeleteBooking(ctx, payload); err != nil {
		return err
	}
	s.invalidate(ctx, payload.OrgID, b.Date)
	return nil
}

func (s *CachedStore) SetSlotStatus(ctx context.Context, orgID int64, date domain.Date, hour int, status domain.SlotStatus) error {
	if err := s.next.SetSlotStatus(ctx, orgID, date, hour, status); err != nil {
		return err
	}
	s.invalidate(ctx, orgID, date)
	return nil
}

// readThrough читает key в dst. При промахе вызывает load один раз на ключ
// для всех одновременных запросов и кладёт результат в кэш.
// Ошибки кэша не прерывают чтение: данные берутся из хранилища.
func (s *CachedStore) readThrough(ctx context.Context, key string, dst interface{}, load func() (interface{}, error)) error {
	raw, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, dst); jsonErr == nil {
			s.record("hit")
			return nil
		}
		s.logger.Warn("CachedStore: corrupted entry key=%s, reloading", key)
		s.record("error")
	case errors.Is(err, ErrCacheMiss):
		s.record("miss")
	default:
		s.logger.Warn("CachedStore: cache get key=%s failed: %v", key, err)
		s.record("error")
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		gen := s.generation(key)
		data, err := load()
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("bookings.cache: encode %s: %w", key, err)
		}
		s.storeIfCurrent(ctx, key, gen, encoded)
		return encoded, nil
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(v.([]byte), dst)
}

func generationSlot(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % generationSlots)
}

func (s *CachedStore) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[generationSlot(key)]
}

// storeIfCurrent кладёт значение в кэш, только если с начала загрузки
// ключ не сбрасывался. Проверка и запись идут под s.mu, как и смена поколения
func (s *CachedStore) storeIfCurrent(ctx context.Context, key string, gen uint64, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generations[generationSlot(key)] != gen {
		s.logger.Info("CachedStore: key=%s changed during load, not caching", key)
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("CachedStore: cache set key=%s failed: %v", key, err)
	}
}

// invalidate сбрасывает ключи месяца. Новое поколение ключа отменяет запись
// в кэш у загрузок, которые уже идут, а Forget не даёт новым чтениям
// присоединиться к ним
func (s *CachedStore) invalidate(ctx context.Context, orgID int64, date domain.Date) {
	keys := []string{bookingsKey(orgID, date), slotStatusesKey(orgID, date)}

	s.mu.Lock()
	for _, key := range keys {
		s.generations[generationSlot(key)]++
	}
	s.mu.Unlock()
	for _, key := range keys {
		s.group.Forget(key)
	}

	if err := s.cache.Del(ctx, keys...); err != nil {
		s.logger.Error("CachedStore: invalidate org=%d, month=%04d-%02d failed: %v",
			orgID, date.Year, int(date.Month), err)
	}
}

func (s *CachedStore) record(result string) {
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(cacheName, result)
	}
}
