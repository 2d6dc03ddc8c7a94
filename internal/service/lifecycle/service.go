package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotCalendar/internal/infra/storage/booking"
)

// Service менеджер жизненного цикла бронирований: создание, отмена и ручное
// открытие/закрытие слота с контролем вместимости.
//
// Конфигурация организации передаётся в каждый вызов явно.
// Между повторной проверкой занятости и записью есть окно, в котором два
// одновременных запроса к одному слоту могут оба пройти проверку.
type Service struct {
	store        BookingStore
	metrics      MetricsRecorder
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger

	mu        sync.RWMutex
	observers []Observer
}

// NewService создает новый экземпляр менеджера бронирований.
// metrics может быть nil, location nil означает time.Local
func NewService(
	store BookingStore,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		store:        store,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// AddObserver подписывает наблюдателя на подтверждённые изменения
func (s *Service) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// CheckAvailability возвращает актуальную занятость слота из хранилища
func (s *Service) CheckAvailability(ctx context.Context, cfg domain.ScheduleConfig, date domain.Date, hour int) (int, error) {
	if err := validateSlot(date, hour); err != nil {
		return 0, err
	}

	occupancy, err := s.store.FetchOccupancy(ctx, cfg.OrgID, date, hour)
	if err != nil {
		s.logger.Error("CheckAvailability: org=%d, date=%s, hour=%d: %v", cfg.OrgID, date, hour, err)
		return 0, fmt.Errorf("%w: FetchOccupancy: %w", ErrStoreFailure, err)
	}
	return occupancy, nil
}

// Create создает бронирование, повторно проверяя занятость слота перед записью
func (s *Service) Create(ctx context.Context, cfg domain.ScheduleConfig, req *CreateRequest) (*domain.Booking, error) {
	s.logger.Info("CreateBooking: org=%d, user=%d, date=%s, hour=%d, self=%t",
		cfg.OrgID, req.UserID, req.Date, req.Hour, req.InitiatedBySelf)

	// 1. Валидация входных данных
	if err := validateCreate(cfg, req); err != nil {
		s.logger.Warn("CreateBooking: validation failed: %v", err)
		s.recordRejected("invalid_input")
		return nil, err
	}

	// 2. Пользователь может бронировать только рабочие часы рабочих дней
	if req.InitiatedBySelf && (!cfg.InRange(req.Hour) || !cfg.IsWorkingDay(req.Date)) {
		s.logger.Warn("CreateBooking: date=%s, hour=%d is outside of schedule for org=%d", req.Date, req.Hour, cfg.OrgID)
		s.recordRejected("outside_schedule")
		return nil, ErrOutsideSchedule
	}

	// 3. Локальная проверка по сетке, которую видел пользователь
	if req.SeenOccupancy != nil && *req.SeenOccupancy > cfg.MaxEntriesPerSlot {
		s.logger.Warn("CreateBooking: local check failed, seen occupancy=%d, max=%d",
			*req.SeenOccupancy, cfg.MaxEntriesPerSlot)
		s.recordRejected("capacity_exceeded")
		return nil, ErrCapacityExceeded
	}

	// 4. Повторная проверка занятости в хранилище
	occupancy, err := s.store.FetchOccupancy(ctx, cfg.OrgID, req.Date, req.Hour)
	if err != nil {
		s.logger.Error("CreateBooking: failed to fetch occupancy: %v", err)
		return nil, fmt.Errorf("%w: FetchOccupancy: %w", ErrStoreFailure, err)
	}

	if isSlotFull(cfg.MaxEntriesPerSlot, occupancy, req.SeenOccupancy) {
		s.logger.Warn("CreateBooking: slot is full, occupancy=%d, max=%d", occupancy, cfg.MaxEntriesPerSlot)
		s.recordRejected("slot_full")
		return nil, ErrSlotFull
	}

	// 5. Слот, закрытый вручную при свободных местах, не принимает бронирования
	status, err := s.store.FetchSlotStatus(ctx, cfg.OrgID, req.Date, req.Hour)
	if err != nil {
		s.logger.Error("CreateBooking: failed to fetch slot status: %v", err)
		return nil, fmt.Errorf("%w: FetchSlotStatus: %w", ErrStoreFailure, err)
	}
	if status == domain.StatusClosed && occupancy < cfg.MaxEntriesPerSlot {
		s.logger.Warn("CreateBooking: slot date=%s, hour=%d is closed manually", req.Date, req.Hour)
		s.recordRejected("slot_closed")
		return nil, ErrSlotClosed
	}

	// 6. Статус слота после записи
	target := TargetStatusAfterCreate(cfg.MaxEntriesPerSlot, occupancy)

	// 7. Запись в хранилище
	booking, err := s.store.CreateBooking(ctx, domain.CreateBookingPayload{
		OrgID:         cfg.OrgID,
		UserID:        req.UserID,
		Date:          req.Date,
		Hour:          req.Hour,
		Status:        target,
		CreatedBySelf: req.InitiatedBySelf,
		UserName:      req.UserName,
		UserPhone:     req.UserPhone,
		Comment:       req.Comment,
	})
	if err != nil {
		s.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: CreateBooking: %w", ErrStoreFailure, err)
	}

	s.logger.Info("CreateBooking: booking id=%d created, slot status=%s", booking.ID, target)
	if s.metrics != nil {
		s.metrics.RecordBookingCreated(target.String())
	}

	// 8. Уведомляем только после подтверждения записи
	s.notify(ctx, cfg.OrgID, req.Date)

	return booking, nil
}

// Cancel отменяет бронирование и сохраняет статус слота, получившийся после отмены
func (s *Service) Cancel(ctx context.Context, cfg domain.ScheduleConfig, req *CancelRequest) (*CancelResult, error) {
	s.logger.Info("CancelBooking: org=%d, booking=%d, user=%d, admin=%t",
		cfg.OrgID, req.BookingID, req.UserID, req.IsAdmin)

	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: booking id and user id are required", ErrInvalidInput)
	}

	// 1. Получаем бронирование
	booking, err := s.store.FetchBooking(ctx, cfg.OrgID, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CancelBooking: booking id=%d not found in org=%d", req.BookingID, cfg.OrgID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CancelBooking: failed to fetch booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: FetchBooking: %w", ErrStoreFailure, err)
	}

	// 2. Пользователь может отменить только своё бронирование и не позже CancelLeadHours до начала
	bySelf := booking.UserID == req.UserID
	if !req.IsAdmin {
		if !bySelf {
			s.logger.Warn("CancelBooking: user=%d is not the owner of booking id=%d", req.UserID, booking.ID)
			return nil, ErrAccessDenied
		}
		if cfg.CancelLeadHours > 0 {
			deadline := cfg.SlotStart(booking.Date, booking.Hour, s.location).Add(-time.Duration(cfg.CancelLeadHours) * time.Hour)
			if s.timeProvider.Now().After(deadline) {
				s.logger.Warn("CancelBooking: booking id=%d, deadline %s passed", booking.ID, deadline.Format(time.RFC3339))
				return nil, ErrTooLateToCancel
			}
		}
	}

	// 3. Актуальная занятость слота и статус после отмены
	occupancy, err := s.store.FetchOccupancy(ctx, cfg.OrgID, booking.Date, booking.Hour)
	if err != nil {
		s.logger.Error("CancelBooking: failed to fetch occupancy: %v", err)
		return nil, fmt.Errorf("%w: FetchOccupancy: %w", ErrStoreFailure, err)
	}
	remaining := occupancy - 1
	if remaining < 0 {
		remaining = 0
	}
	resulting := TargetStatusAfterCancel(cfg.MaxEntriesPerSlot, remaining)

	// 4. Удаляем бронирование вместе с новым статусом слота
	err = s.store.DeleteBooking(ctx, domain.DeleteBookingPayload{
		BookingID:       booking.ID,
		UserID:          booking.UserID,
		OrgID:           cfg.OrgID,
		CancelledBySelf: bySelf,
		ResultingStatus: resulting,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CancelBooking: booking id=%d disappeared before delete", booking.ID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CancelBooking: failed to delete booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: DeleteBooking: %w", ErrStoreFailure, err)
	}

	s.logger.Info("CancelBooking: booking id=%d cancelled, slot status=%s", booking.ID, resulting)
	if s.metrics != nil {
		initiator := "admin"
		if bySelf {
			initiator = "self"
		}
		s.metrics.RecordBookingCancelled(initiator)
	}

	s.notify(ctx, cfg.OrgID, booking.Date)

	return &CancelResult{
		Booking:         *booking,
		ResultingStatus: resulting,
		Occupancy:       remaining,
	}, nil
}

// SlotStatus сохранённый статус слота
func (s *Service) SlotStatus(ctx context.Context, cfg domain.ScheduleConfig, date domain.Date, hour int) (domain.SlotStatus, error) {
	if err := validateSlot(date, hour); err != nil {
		return domain.StatusOpen, err
	}
	status, err := s.store.FetchSlotStatus(ctx, cfg.OrgID, date, hour)
	if err != nil {
		s.logger.Error("SlotStatus: failed to fetch slot status: %v", err)
		return domain.StatusOpen, fmt.Errorf("%w: FetchSlotStatus: %w", ErrStoreFailure, err)
	}
	return status, nil
}

// ToggleSlotStatus ручное открытие/закрытие слота администратором.
// Если слот заполнен (currentOccupancy >= MaxEntriesPerSlot), ничего не делает и хранилище не вызывает
func (s *Service) ToggleSlotStatus(ctx context.Context, cfg domain.ScheduleConfig, req *ToggleRequest) (*ToggleResult, error) {
	s.logger.Info("ToggleSlotStatus: org=%d, date=%s, hour=%d, occupancy=%d",
		cfg.OrgID, req.Date, req.Hour, req.CurrentOccupancy)

	if req.CurrentOccupancy >= cfg.MaxEntriesPerSlot {
		s.logger.Info("ToggleSlotStatus: slot is full (occupancy=%d, max=%d), nothing to do",
			req.CurrentOccupancy, cfg.MaxEntriesPerSlot)
		return &ToggleResult{Toggled: false}, nil
	}

	if err := validateSlot(req.Date, req.Hour); err != nil {
		return nil, err
	}
	if req.CurrentOccupancy < 0 {
		return nil, fmt.Errorf("%w: negative occupancy", ErrInvalidInput)
	}

	current, err := s.store.FetchSlotStatus(ctx, cfg.OrgID, req.Date, req.Hour)
	if err != nil {
		s.logger.Error("ToggleSlotStatus: failed to fetch slot status: %v", err)
		return nil, fmt.Errorf("%w: FetchSlotStatus: %w", ErrStoreFailure, err)
	}

	next := current.Toggle()
	if err := s.store.SetSlotStatus(ctx, cfg.OrgID, req.Date, req.Hour, next); err != nil {
		s.logger.Error("ToggleSlotStatus: failed to set slot status: %v", err)
		return nil, fmt.Errorf("%w: SetSlotStatus: %w", ErrStoreFailure, err)
	}

	s.logger.Info("ToggleSlotStatus: slot date=%s, hour=%d is now %s", req.Date, req.Hour, next)
	if s.metrics != nil {
		s.metrics.RecordSlotToggled(next.String())
	}

	s.notify(ctx, cfg.OrgID, req.Date)

	return &ToggleResult{Toggled: true, Status: next}, nil
}

func (s *Service) notify(ctx context.Context, orgID int64, date domain.Date) {
	s.mu.RLock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, o := range observers {
		o.BookingsChanged(ctx, orgID, date)
	}
}

func (s *Service) recordRejected(reason string) {
	if s.metrics != nil {
		s.metrics.RecordBookingRejected(reason)
	}
}
