package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SlotCalendar/internal/config"
	"github.com/m04kA/SMC-SlotCalendar/internal/coordinator"
	bookingRepo "github.com/m04kA/SMC-SlotCalendar/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-SlotCalendar/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/lifecycle"
	scheduleService "github.com/m04kA/SMC-SlotCalendar/internal/service/schedule"
	getCalendarUC "github.com/m04kA/SMC-SlotCalendar/internal/usecase/get_calendar"
	manageSlotsUC "github.com/m04kA/SMC-SlotCalendar/internal/usecase/manage_slots"
	"github.com/m04kA/SMC-SlotCalendar/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
	"github.com/m04kA/SMC-SlotCalendar/pkg/txmanager"
)

var CLI struct {
	Config   string `help:"Path to config.toml." type:"path" default:"config.toml"`
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"warn" name:"log-level"`

	Grid      GridCmd      `cmd:"" help:"Print the slot grid of an organization."`
	Occupancy OccupancyCmd `cmd:"" help:"Show the current occupancy of one slot."`
}

// appContext зависимости, общие для всех команд
type appContext struct {
	Calendar CalendarUseCase
	Slots    OccupancyUseCase
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("calendarctl"),
		kong.Description("Operator tool for the slot calendar: grids and slot occupancy straight from the database."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lvl, err := logger.ParseLevel(CLI.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewWithWriter(os.Stderr, lvl)

	app, closeDB, err := newAppContext(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeDB()

	if err := ctx.Run(app); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newAppContext собирает use cases поверх PostgreSQL без кэша и метрик
func newAppContext(cfg *config.Config, log *logger.Logger) (*appContext, func(), error) {
	location, err := cfg.Schedule.Location()
	if err != nil {
		return nil, nil, err
	}
	defaults, err := cfg.Schedule.ScheduleConfig(0)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrappedDB := dbmetrics.Wrap(db, nil, "")
	bookings := bookingRepo.NewRepository(wrappedDB, txmanager.NewTransactionManager(wrappedDB))
	schedules := scheduleService.NewService(scheduleRepo.NewRepository(wrappedDB), defaults, log)

	// Снимок месяца живёт только в пределах одной команды
	registry := coordinator.NewRegistry(bookings, schedules, 0, nil, log)
	manager := lifecycle.NewService(bookings, nil, location, log)

	app := &appContext{
		Calendar: getCalendarUC.NewUseCase(registry, log),
		Slots:    manageSlotsUC.NewUseCase(schedules, manager, log),
	}
	return app, func() { db.Close() }, nil
}
