package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// Registry держит по одному координатору на организацию с сохранёнными
// настройками и раздаёт им уведомления сервисов бронирований и настроек.
// Для организаций без настроек координатор создаётся на один запрос
// и в реестре не остаётся
type Registry struct {
	store   Store
	configs ConfigSource
	maxAge  time.Duration
	metrics MetricsRecorder
	logger  Logger

	mu    sync.Mutex
	views map[int64]*Coordinator
}

// NewRegistry создает реестр координаторов
func NewRegistry(store Store, configs ConfigSource, maxAge time.Duration, metrics MetricsRecorder, logger Logger) *Registry {
	return &Registry{
		store:   store,
		configs: configs,
		maxAge:  maxAge,
		metrics: metrics,
		logger:  logger,
		views:   make(map[int64]*Coordinator),
	}
}

// Get возвращает координатор организации, создавая его при первом обращении.
// Настройки читаются без блокировки реестра
func (r *Registry) Get(ctx context.Context, orgID int64) (*Coordinator, error) {
	if c, ok := r.lookup(orgID); ok {
		return c, nil
	}

	cfg, isDefault, err := r.configs.GetConfig(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig org=%d: %w", ErrStoreFailure, orgID, err)
	}

	c := New(cfg, r.store, r.maxAge, r.metrics, r.logger)
	if isDefault {
		return c, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.views[orgID]; ok {
		return existing, nil
	}
	r.views[orgID] = c
	return c, nil
}

// Len число зарегистрированных координаторов
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func (r *Registry) lookup(orgID int64) (*Coordinator, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.views[orgID]
	return c, ok
}

// BookingsChanged передаёт уведомление координатору организации, если он уже создан
func (r *Registry) BookingsChanged(ctx context.Context, orgID int64, date domain.Date) {
	if c, ok := r.lookup(orgID); ok {
		c.BookingsChanged(ctx, orgID, date)
	}
}

// ScheduleChanged передаёт новые настройки координатору организации
func (r *Registry) ScheduleChanged(ctx context.Context, cfg domain.ScheduleConfig) {
	if c, ok := r.lookup(cfg.OrgID); ok {
		c.ScheduleChanged(ctx, cfg)
	}
}
