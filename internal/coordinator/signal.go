package coordinator

import (
	"context"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// Signal внешнее событие, после которого сетка перестраивается
type Signal interface {
	apply(ctx context.Context, c *Coordinator) error
}

// ReferenceDateChanged пользователь выбрал другую дату
type ReferenceDateChanged struct {
	Date domain.Date
}

func (s ReferenceDateChanged) apply(ctx context.Context, c *Coordinator) error {
	return c.SetReferenceDate(ctx, s.Date)
}

// ViewModeChanged переключение day/week/month
type ViewModeChanged struct {
	Mode domain.ViewMode
}

func (s ViewModeChanged) apply(ctx context.Context, c *Coordinator) error {
	return c.SetViewMode(ctx, s.Mode)
}

// ConfigChanged администратор сохранил настройки
type ConfigChanged struct {
	Config domain.ScheduleConfig
}

func (s ConfigChanged) apply(_ context.Context, c *Coordinator) error {
	return c.SetConfig(s.Config)
}

// StoreRefreshed данные в хранилище изменились
type StoreRefreshed struct{}

func (s StoreRefreshed) apply(ctx context.Context, c *Coordinator) error {
	return c.Refresh(ctx)
}
