package main

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	getCalendarUC "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
	manageSlotsUC "github.com/m04kA/SMC-SlotCalendar/internal/usecase/manage_slots"
)

type CalendarUseCase interface {
	Execute(ctx context.Context, req *getCalendarUC.Request) (*getCalendarUC.Response, error)
}

type OccupancyUseCase interface {
	Occupancy(ctx context.Context, req *manageSlotsUC.OccupancyRequest) (*manageSlotsUC.OccupancyResponse, error)
}

type GridCmd struct {
	Org  int64  `help:"Organization ID." required:""`
	Date string `help:"Reference date (DD.MM.YYYY)." required:""`
	View string `help:"day, week or month." default:"week" enum:"day,week,month"`
}

func (c *GridCmd) Run(app *appContext) error {
	date, err := domain.ParseDate(c.Date)
	if err != nil {
		return err
	}
	view, err := domain.ParseViewMode(c.View)
	if err != nil {
		return err
	}

	// Оператор видит сетку глазами администратора
	resp, err := app.Calendar.Execute(context.Background(), &getCalendarUC.Request{
		OrgID:   c.Org,
		IsAdmin: true,
		Date:    date,
		View:    view,
	})
	if err != nil {
		return fmt.Errorf("failed to build grid: %w", err)
	}

	fmt.Println(renderGrid(resp))
	return nil
}

type OccupancyCmd struct {
	Org  int64  `help:"Organization ID." required:""`
	Date string `help:"Slot date (DD.MM.YYYY)." required:""`
	Hour int    `help:"Slot hour (0-23)." required:""`
}

func (c *OccupancyCmd) Run(app *appContext) error {
	date, err := domain.ParseDate(c.Date)
	if err != nil {
		return err
	}

	resp, err := app.Slots.Occupancy(context.Background(), &manageSlotsUC.OccupancyRequest{
		OrgID: c.Org,
		Date:  date,
		Hour:  c.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to read occupancy: %w", err)
	}

	fmt.Println(renderOccupancy(resp))
	return nil
}

func renderOccupancy(resp *manageSlotsUC.OccupancyResponse) string {
	style := openStyle
	if resp.Free == 0 {
		style = closedStyle
	}
	return fmt.Sprintf("%s %d:00  %s  free %d",
		resp.Date,
		resp.Hour,
		style.Render(fmt.Sprintf("%d/%d", resp.Occupancy, resp.Capacity)),
		resp.Free,
	)
}
