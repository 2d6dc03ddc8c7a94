package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotCalendar/pkg/psqlbuilder"
)

const tableScheduleConfigs = "schedule_configs"

// DBExecutor общий интерфейс *sql.DB / транзакции
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий настроек расписания организаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetScheduleConfig получает настройки организации
func (r *Repository) GetScheduleConfig(ctx context.Context, orgID int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"org_id",
		"start_hour",
		"end_hour",
		"slot_minute_offset",
		"working_days",
		"max_entries_per_slot",
		"cancel_lead_hours",
		"updated_at",
	).
		From(tableScheduleConfigs).
		Where(squirrel.Eq{"org_id": orgID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleConfig - build select query: %v", ErrBuildQuery, err)
	}

	var (
		cfg         domain.ScheduleConfig
		workingDays pq.StringArray
		updatedAt   sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.OrgID,
		&cfg.StartHour,
		&cfg.EndHour,
		&cfg.SlotMinuteOffset,
		&workingDays,
		&cfg.MaxEntriesPerSlot,
		&cfg.CancelLeadHours,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleConfig - scan config: %v", ErrScanRow, err)
	}

	// В БД хранятся канонические коды, но нормализуем на случай ручных правок
	cfg.WorkingDays, err = domain.NormalizeWorkingDays(workingDays)
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleConfig - working days: %v", ErrScanRow, err)
	}
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// SaveScheduleConfig создает или обновляет настройки организации
func (r *Repository) SaveScheduleConfig(ctx context.Context, cfg domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableScheduleConfigs).
		Columns(
			"org_id",
			"start_hour",
			"end_hour",
			"slot_minute_offset",
			"working_days",
			"max_entries_per_slot",
			"cancel_lead_hours",
		).
		Values(
			cfg.OrgID,
			cfg.StartHour,
			cfg.EndHour,
			cfg.SlotMinuteOffset,
			pq.Array(domain.WeekdayStrings(cfg.WorkingDays)),
			cfg.MaxEntriesPerSlot,
			cfg.CancelLeadHours,
		).
		Suffix(`ON CONFLICT (org_id) DO UPDATE SET
			start_hour = EXCLUDED.start_hour,
			end_hour = EXCLUDED.end_hour,
			slot_minute_offset = EXCLUDED.slot_minute_offset,
			working_days = EXCLUDED.working_days,
			max_entries_per_slot = EXCLUDED.max_entries_per_slot,
			cancel_lead_hours = EXCLUDED.cancel_lead_hours,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SaveScheduleConfig - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: SaveScheduleConfig - execute upsert: %v", ErrExecQuery, err)
	}

	saved := cfg.Clone()
	saved.UpdatedAt = updatedAt.Time
	return &saved, nil
}
