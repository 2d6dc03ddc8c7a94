package manage_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
)

// UseCase операции над отдельным слотом: отмена, ручное открытие/закрытие, занятость.
// Ошибки менеджера бронирований возвращаются без изменений
type UseCase struct {
	configs  ConfigProvider
	bookings BookingManager
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(configs ConfigProvider, bookings BookingManager, logger Logger) *UseCase {
	return &UseCase{
		configs:  configs,
		bookings: bookings,
		logger:   logger,
	}
}

// Cancel отменяет бронирование. Администратор отменяет любое бронирование организации
func (uc *UseCase) Cancel(ctx context.Context, req *CancelRequest) (*CancelResponse, error) {
	uc.logger.Info("CancelBooking: org=%d, actor=%d, booking=%d, admin=%t",
		req.OrgID, req.ActorID, req.BookingID, req.IsAdmin)

	if req.OrgID <= 0 || req.ActorID <= 0 || req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: org, actor and booking ids must be positive", ErrInvalidInput)
	}

	cfg, err := uc.config(ctx, req.OrgID)
	if err != nil {
		return nil, err
	}

	result, err := uc.bookings.Cancel(ctx, cfg, &lifecycle.CancelRequest{
		BookingID: req.BookingID,
		UserID:    req.ActorID,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		return nil, err
	}

	return &CancelResponse{
		BookingID:  result.Booking.ID,
		Date:       result.Booking.Date,
		Hour:       result.Booking.Hour,
		SlotStatus: result.ResultingStatus,
		Occupancy:  result.Occupancy,
	}, nil
}

// Toggle открывает или закрывает слот. Занятость берётся из хранилища
func (uc *UseCase) Toggle(ctx context.Context, req *ToggleRequest) (*ToggleResponse, error) {
	uc.logger.Info("ToggleSlot: org=%d, date=%s, hour=%d", req.OrgID, req.Date, req.Hour)

	if !req.IsAdmin {
		uc.logger.Warn("ToggleSlot: non-admin request for org=%d", req.OrgID)
		return nil, ErrAccessDenied
	}
	if err := validateSlot(req.OrgID, req.Date, req.Hour); err != nil {
		return nil, err
	}

	cfg, err := uc.config(ctx, req.OrgID)
	if err != nil {
		return nil, err
	}

	// 1. Актуальная занятость
	occupancy, err := uc.bookings.CheckAvailability(ctx, cfg, req.Date, req.Hour)
	if err != nil {
		return nil, err
	}

	// 2. Переключаем
	result, err := uc.bookings.ToggleSlotStatus(ctx, cfg, &lifecycle.ToggleRequest{
		Date:             req.Date,
		Hour:             req.Hour,
		CurrentOccupancy: occupancy,
	})
	if err != nil {
		return nil, err
	}

	status := result.Status
	if !result.Toggled {
		// Слот заполнен, отдаём то, что сохранено
		if status, err = uc.bookings.SlotStatus(ctx, cfg, req.Date, req.Hour); err != nil {
			return nil, err
		}
	}

	return &ToggleResponse{
		Date:      req.Date,
		Hour:      req.Hour,
		Toggled:   result.Toggled,
		Status:    status,
		Occupancy: occupancy,
	}, nil
}

// Occupancy возвращает актуальную занятость слота
func (uc *UseCase) Occupancy(ctx context.Context, req *OccupancyRequest) (*OccupancyResponse, error) {
	if err := validateSlot(req.OrgID, req.Date, req.Hour); err != nil {
		return nil, err
	}

	cfg, err := uc.config(ctx, req.OrgID)
	if err != nil {
		return nil, err
	}

	occupancy, err := uc.bookings.CheckAvailability(ctx, cfg, req.Date, req.Hour)
	if err != nil {
		return nil, err
	}

	free := cfg.MaxEntriesPerSlot - occupancy
	if free < 0 {
		free = 0
	}
	return &OccupancyResponse{
		Date:      req.Date,
		Hour:      req.Hour,
		Occupancy: occupancy,
		Capacity:  cfg.MaxEntriesPerSlot,
		Free:      free,
	}, nil
}

func (uc *UseCase) config(ctx context.Context, orgID int64) (domain.ScheduleConfig, error) {
	cfg, _, err := uc.configs.GetConfig(ctx, orgID)
	if err != nil {
		uc.logger.Error("manage_slots: failed to get config for org=%d: %v", orgID, err)
		return domain.ScheduleConfig{}, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	return cfg, nil
}

func validateSlot(orgID int64, date domain.Date, hour int) error {
	if orgID <= 0 {
		return fmt.Errorf("%w: org id must be positive", ErrInvalidInput)
	}
	if date.IsZero() || !date.Valid() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if hour < domain.MinHour || hour > domain.MaxHour {
		return fmt.Errorf("%w: hour must be between %d and %d", ErrInvalidInput, domain.MinHour, domain.MaxHour)
	}
	return nil
}
