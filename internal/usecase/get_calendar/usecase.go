package get_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotCalendar/internal/calendar"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// UseCase use case для получения сетки календаря организации
type UseCase struct {
	views  ViewRegistry
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(views ViewRegistry, logger Logger) *UseCase {
	return &UseCase{
		views:  views,
		logger: logger,
	}
}

// Execute выполняет use case получения сетки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: org=%d, actor=%d, date=%s, view=%s", req.OrgID, req.ActorID, req.Date, req.View)

	// 1. Валидация входных данных
	if req.OrgID <= 0 {
		return nil, fmt.Errorf("%w: org id must be positive", ErrInvalidInput)
	}

	// 2. Координатор организации
	view, err := uc.views.Get(ctx, req.OrgID)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get view for org=%d: %v", req.OrgID, err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	// 3. Выставляем дату и режим, получаем дни
	days, err := view.Show(ctx, req.Date, req.View)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidReferenceDate) || errors.Is(err, calendar.ErrInvalidViewMode) {
			uc.logger.Warn("GetCalendar: invalid request: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		uc.logger.Error("GetCalendar: failed to build grid for org=%d: %v", req.OrgID, err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	cfg := view.Config()
	uc.logger.Info("GetCalendar: org=%d, %d days built", req.OrgID, len(days))

	return &Response{
		OrgID: req.OrgID,
		Date:  req.Date,
		View:  req.View,
		Config: Schedule{
			StartHour:         cfg.StartHour,
			EndHour:           cfg.EndHour,
			SlotMinuteOffset:  cfg.SlotMinuteOffset,
			WorkingDays:       domain.WeekdayStrings(cfg.WorkingDays),
			MaxEntriesPerSlot: cfg.MaxEntriesPerSlot,
		},
		Days: toDays(days, cfg, req),
	}, nil
}

func toDays(days []domain.Day, cfg domain.ScheduleConfig, req *Request) []Day {
	out := make([]Day, 0, len(days))
	for _, d := range days {
		day := Day{
			Date:        d.Date,
			Weekday:     string(domain.WeekdayCodeOf(d.Date.Weekday())),
			ShowThisDay: d.ShowThisDay,
			Slots:       make([]Slot, 0, len(d.Slots)),
		}
		for _, s := range d.Slots {
			day.Slots = append(day.Slots, toSlot(s, cfg, req))
		}
		out = append(out, day)
	}
	return out
}

func toSlot(s domain.TimeSlot, cfg domain.ScheduleConfig, req *Request) Slot {
	free := cfg.MaxEntriesPerSlot - s.Occupancy()
	if free < 0 {
		free = 0
	}

	slot := Slot{
		Hour:      s.Hour,
		Label:     cfg.SlotLabel(s.Hour),
		Status:    s.Status,
		Occupancy: s.Occupancy(),
		Capacity:  cfg.MaxEntriesPerSlot,
		Free:      free,
		Overflow:  s.IsOverflow(cfg),
		Bookable:  s.IsBookable(cfg),
		Occupants: make([]Occupant, 0, len(s.Occupants)),
	}

	for _, b := range s.Occupants {
		o := Occupant{
			BookingID:     b.ID,
			UserID:        b.UserID,
			IsMine:        req.ActorID != 0 && b.UserID == req.ActorID,
			CreatedBySelf: b.CreatedBySelf,
		}
		if req.IsAdmin || o.IsMine {
			o.UserName = b.UserName
			o.UserPhone = b.UserPhone
			o.Comment = b.Comment
		}
		slot.Occupants = append(slot.Occupants, o)
	}
	return slot
}
