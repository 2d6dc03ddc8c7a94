package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SlotCalendar/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/schedule/models"
)

// Service сервис настроек расписания организаций
type Service struct {
	repo     ScheduleRepository
	defaults domain.ScheduleConfig
	logger   Logger

	mu        sync.RWMutex
	observers []Observer
}

// NewService создает новый экземпляр сервиса настроек.
// defaults применяется к организациям, которые ещё не сохраняли настройки
func NewService(repo ScheduleRepository, defaults domain.ScheduleConfig, logger Logger) *Service {
	return &Service{
		repo:     repo,
		defaults: defaults.Clone(),
		logger:   logger,
	}
}

// AddObserver подписывает наблюдателя на сохранение настроек
func (s *Service) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// GetConfig возвращает настройки организации или настройки по умолчанию
func (s *Service) GetConfig(ctx context.Context, orgID int64) (domain.ScheduleConfig, bool, error) {
	cfg, err := s.repo.GetScheduleConfig(ctx, orgID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			def := s.defaults.Clone()
			def.OrgID = orgID
			return def, true, nil
		}
		s.logger.Error("GetConfig: repository error for org=%d: %v", orgID, err)
		return domain.ScheduleConfig{}, false, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}
	return *cfg, false, nil
}

// Get возвращает настройки организации в виде ответа
func (s *Service) Get(ctx context.Context, orgID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching config for org=%d", orgID)

	cfg, isDefault, err := s.GetConfig(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if isDefault {
		s.logger.Info("GetSchedule: org=%d has no saved config, using defaults", orgID)
	}
	return models.FromDomainConfig(cfg, isDefault), nil
}

// Update валидирует и сохраняет настройки организации
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: org=%d, hours=%d..%d, days=%v, max=%d",
		req.OrgID, req.StartHour, req.EndHour, req.WorkingDays, req.MaxEntriesPerSlot)

	// 1. Приводим рабочие дни к каноническому порядку
	workingDays, err := domain.NormalizeWorkingDays(req.WorkingDays)
	if err != nil {
		s.logger.Warn("UpdateSchedule: invalid working days: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cfg := domain.ScheduleConfig{
		OrgID:             req.OrgID,
		StartHour:         req.StartHour,
		EndHour:           req.EndHour,
		SlotMinuteOffset:  req.SlotMinuteOffset,
		WorkingDays:       workingDays,
		MaxEntriesPerSlot: req.MaxEntriesPerSlot,
		CancelLeadHours:   req.CancelLeadHours,
	}

	// 2. Проверяем инварианты
	if req.OrgID <= 0 {
		return nil, fmt.Errorf("%w: org id is required", ErrInvalidInput)
	}
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Сохраняем
	saved, err := s.repo.SaveScheduleConfig(ctx, cfg)
	if err != nil {
		s.logger.Error("UpdateSchedule: repository error for org=%d: %v", req.OrgID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	// 4. Оповещаем подписчиков новой конфигурацией
	s.mu.RLock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()
	for _, o := range observers {
		o.ScheduleChanged(ctx, saved.Clone())
	}

	s.logger.Info("UpdateSchedule: config for org=%d saved", req.OrgID)
	return models.FromDomainConfig(*saved, false), nil
}
