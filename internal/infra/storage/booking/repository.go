package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotCalendar/pkg/psqlbuilder"
)

const (
	tableBookings      = "bookings"
	tableSlotStatuses  = "slot_statuses"
	tableCancellations = "booking_cancellations"
)

var bookingColumns = []string{
	"id",
	"org_id",
	"user_id",
	"booking_date",
	"booking_hour",
	"work_status",
	"created_by_self",
	"user_name",
	"user_phone",
	"comment",
	"created_at",
}

// Repository хранилище бронирований и статусов слотов в PostgreSQL
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, txManager TransactionManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// FetchBookings возвращает все бронирования организации за месяц, в котором лежит month
func (r *Repository) FetchBookings(ctx context.Context, orgID int64, month domain.Date) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"org_id": orgID}).
		Where(squirrel.GtOrEq{"booking_date": sqlDate(month.FirstOfMonth())}).
		Where(squirrel.LtOrEq{"booking_date": sqlDate(month.LastOfMonth())}).
		OrderBy("booking_date ASC", "booking_hour ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchBookings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// FetchBooking получает бронирование организации по ID
func (r *Repository) FetchBooking(ctx context.Context, orgID, bookingID int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": bookingID, "org_id": orgID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchBooking - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FetchBooking - scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

// FetchOccupancy количество бронирований в слоте
func (r *Repository) FetchOccupancy(ctx context.Context, orgID int64, date domain.Date, hour int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableBookings).
		Where(squirrel.Eq{"org_id": orgID, "booking_date": sqlDate(date), "booking_hour": hour}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: FetchOccupancy - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: FetchOccupancy - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// FetchSlotStatus сохранённый статус слота. Слот без записи считается открытым
func (r *Repository) FetchSlotStatus(ctx context.Context, orgID int64, date domain.Date, hour int) (domain.SlotStatus, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("work_status").
		From(tableSlotStatuses).
		Where(squirrel.Eq{"org_id": orgID, "slot_date": sqlDate(date), "slot_hour": hour}).
		ToSql()
	if err != nil {
		return domain.StatusOpen, fmt.Errorf("%w: FetchSlotStatus - build select query: %v", ErrBuildQuery, err)
	}

	var workStatus int16
	err = executor.QueryRowContext(ctx, query, args...).Scan(&workStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StatusOpen, nil
	}
	if err != nil {
		return domain.StatusOpen, fmt.Errorf("%w: FetchSlotStatus - scan status: %v", ErrScanRow, err)
	}
	return fromWorkStatus(workStatus)
}

// FetchSlotStatuses сохранённые статусы слотов организации за месяц
func (r *Repository) FetchSlotStatuses(ctx context.Context, orgID int64, month domain.Date) ([]domain.SlotOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_date", "slot_hour", "work_status").
		From(tableSlotStatuses).
		Where(squirrel.Eq{"org_id": orgID}).
		Where(squirrel.GtOrEq{"slot_date": sqlDate(month.FirstOfMonth())}).
		Where(squirrel.LtOrEq{"slot_date": sqlDate(month.LastOfMonth())}).
		OrderBy("slot_date ASC", "slot_hour ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchSlotStatuses - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchSlotStatuses - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.SlotOverride, 0)
	for rows.Next() {
		var (
			o          domain.SlotOverride
			slotDate   sql.NullTime
			workStatus int16
		)
		if err := rows.Scan(&slotDate, &o.Hour, &workStatus); err != nil {
			return nil, fmt.Errorf("%w: FetchSlotStatuses - scan row: %v", ErrScanRow, err)
		}
		o.Date = fromSQLDate(slotDate.Time)
		if o.Status, err = fromWorkStatus(workStatus); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchSlotStatuses - rows error: %v", ErrScanRow, err)
	}
	return overrides, nil
}

// CreateBooking создает бронирование и в той же транзакции проставляет статус всему слоту.
// Транзакция SERIALIZABLE: одновременная запись в тот же слот откатится с ошибкой сериализации
func (r *Repository) CreateBooking(ctx context.Context, payload domain.CreateBookingPayload) (*domain.Booking, error) {
	var created *domain.Booking

	err := r.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		query, args, err := psqlbuilder.Insert(tableBookings).
			Columns(
				"org_id",
				"user_id",
				"booking_date",
				"booking_hour",
				"work_status",
				"created_by_self",
				"user_name",
				"user_phone",
				"comment",
			).
			Values(
				payload.OrgID,
				payload.UserID,
				sqlDate(payload.Date),
				payload.Hour,
				toWorkStatus(payload.Status),
				payload.CreatedBySelf,
				payload.UserName,
				payload.UserPhone,
				payload.Comment,
			).
			Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: CreateBooking - build insert query: %v", ErrBuildQuery, err)
		}

		created, err = scanBooking(executor.QueryRowContext(txCtx, query, args...))
		if err != nil {
			return fmt.Errorf("%w: CreateBooking - execute insert: %v", ErrExecQuery, err)
		}

		return r.applySlotStatus(txCtx, payload.OrgID, payload.Date, payload.Hour, payload.Status)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// DeleteBooking удаляет бронирование, сохраняет новый статус слота и пишет запись аудита отмены
func (r *Repository) DeleteBooking(ctx context.Context, payload domain.DeleteBookingPayload) error {
	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, r.db)

		query, args, err := psqlbuilder.Delete(tableBookings).
			Where(squirrel.Eq{"id": payload.BookingID, "org_id": payload.OrgID}).
			Suffix("RETURNING booking_date, booking_hour").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: DeleteBooking - build delete query: %v", ErrBuildQuery, err)
		}

		var (
			bookingDate sql.NullTime
			hour        int
		)
		err = executor.QueryRowContext(txCtx, query, args...).Scan(&bookingDate, &hour)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: DeleteBooking - execute delete: %v", ErrExecQuery, err)
		}
		date := fromSQLDate(bookingDate.Time)

		if err := r.applySlotStatus(txCtx, payload.OrgID, date, hour, payload.ResultingStatus); err != nil {
			return err
		}

		query, args, err = psqlbuilder.Insert(tableCancellations).
			Columns(
				"booking_id",
				"org_id",
				"user_id",
				"slot_date",
				"slot_hour",
				"cancelled_by_self",
				"resulting_status",
			).
			Values(
				payload.BookingID,
				payload.OrgID,
				payload.UserID,
				sqlDate(date),
				hour,
				cancelledBySelfFlag(payload.CancelledBySelf),
				toWorkStatus(payload.ResultingStatus),
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: DeleteBooking - build audit insert: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("%w: DeleteBooking - insert audit: %v", ErrExecQuery, err)
		}
		return nil
	})
}

// SetSlotStatus ручное изменение статуса слота
func (r *Repository) SetSlotStatus(ctx context.Context, orgID int64, date domain.Date, hour int, status domain.SlotStatus) error {
	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		return r.applySlotStatus(txCtx, orgID, date, hour, status)
	})
}

// applySlotStatus сохраняет статус слота и проставляет его всем бронированиям слота.
// Вызывается внутри транзакции
func (r *Repository) applySlotStatus(ctx context.Context, orgID int64, date domain.Date, hour int, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	workStatus := toWorkStatus(status)

	query, args, err := psqlbuilder.Insert(tableSlotStatuses).
		Columns("org_id", "slot_date", "slot_hour", "work_status").
		Values(orgID, sqlDate(date), hour, workStatus).
		Suffix("ON CONFLICT (org_id, slot_date, slot_hour) DO UPDATE SET work_status = EXCLUDED.work_status, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: applySlotStatus - build upsert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: applySlotStatus - execute upsert: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Update(tableBookings).
		Set("work_status", workStatus).
		Where(squirrel.Eq{"org_id": orgID, "booking_date": sqlDate(date), "booking_hour": hour}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: applySlotStatus - build update query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: applySlotStatus - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b           domain.Booking
		bookingDate sql.NullTime
		workStatus  int16
		createdAt   sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.OrgID,
		&b.UserID,
		&bookingDate,
		&b.Hour,
		&workStatus,
		&b.CreatedBySelf,
		&b.UserName,
		&b.UserPhone,
		&b.Comment,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.Date = fromSQLDate(bookingDate.Time)
	b.CreatedAt = createdAt.Time
	if b.Status, err = fromWorkStatus(workStatus); err != nil {
		return nil, err
	}
	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
