package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotCalendar/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
)

// memoryStore потокобезопасное хранилище в памяти
type memoryStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]domain.Booking
	statuses map[domain.SlotKey]domain.SlotStatus
	calls    []string
	failWith error
	deleted  []domain.DeleteBookingPayload
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		bookings: make(map[int64]domain.Booking),
		statuses: make(map[domain.SlotKey]domain.SlotStatus),
	}
}

func (m *memoryStore) record(call string) error {
	m.calls = append(m.calls, call)
	return m.failWith
}

func (m *memoryStore) FetchBooking(_ context.Context, orgID, bookingID int64) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("FetchBooking"); err != nil {
		return nil, err
	}
	b, ok := m.bookings[bookingID]
	if !ok || b.OrgID != orgID {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (m *memoryStore) CreateBooking(_ context.Context, p domain.CreateBookingPayload) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("CreateBooking"); err != nil {
		return nil, err
	}
	m.nextID++
	b := domain.Booking{
		ID: m.nextID, OrgID: p.OrgID, UserID: p.UserID, Date: p.Date, Hour: p.Hour,
		Status: p.Status, CreatedBySelf: p.CreatedBySelf, UserName: p.UserName,
	}
	m.bookings[b.ID] = b
	m.setStatus(b.SlotKey(), p.Status)
	return &b, nil
}

func (m *memoryStore) DeleteBooking(_ context.Context, p domain.DeleteBookingPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteBooking"); err != nil {
		return err
	}
	b, ok := m.bookings[p.BookingID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(m.bookings, p.BookingID)
	m.deleted = append(m.deleted, p)
	m.setStatus(b.SlotKey(), p.ResultingStatus)
	return nil
}

func (m *memoryStore) FetchOccupancy(_ context.Context, orgID int64, date domain.Date, hour int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("FetchOccupancy"); err != nil {
		return 0, err
	}
	n := 0
	for _, b := range m.bookings {
		if b.OrgID == orgID && b.Date == date && b.Hour == hour {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) FetchSlotStatus(_ context.Context, orgID int64, date domain.Date, hour int) (domain.SlotStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("FetchSlotStatus"); err != nil {
		return domain.StatusOpen, err
	}
	return m.statuses[domain.SlotKey{OrgID: orgID, Date: date, Hour: hour}], nil
}

func (m *memoryStore) SetSlotStatus(_ context.Context, orgID int64, date domain.Date, hour int, status domain.SlotStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("SetSlotStatus"); err != nil {
		return err
	}
	m.setStatus(domain.SlotKey{OrgID: orgID, Date: date, Hour: hour}, status)
	return nil
}

// setStatus статус общий для всех бронирований слота
func (m *memoryStore) setStatus(key domain.SlotKey, status domain.SlotStatus) {
	m.statuses[key] = status
	for id, b := range m.bookings {
		if b.SlotKey() == key {
			b.Status = status
			m.bookings[id] = b
		}
	}
}

type recordingObserver struct {
	dates []domain.Date
}

func (o *recordingObserver) BookingsChanged(_ context.Context, _ int64, date domain.Date) {
	o.dates = append(o.dates, date)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func scenarioConfig() domain.ScheduleConfig {
	return domain.ScheduleConfig{
		OrgID:             1,
		StartHour:         9,
		EndHour:           18,
		WorkingDays:       []domain.WeekdayCode{domain.Mon, domain.Tue, domain.Wed, domain.Thu, domain.Fri},
		MaxEntriesPerSlot: 1,
	}
}

func newTestService(store BookingStore) (*Service, *recordingObserver) {
	svc := NewService(store, nil, time.UTC, logger.Discard())
	obs := &recordingObserver{}
	svc.AddObserver(obs)
	return svc, obs
}

func intPtr(v int) *int { return &v }

func TestTargetStatus(t *testing.T) {
	assert.Equal(t, domain.StatusClosed, TargetStatusAfterCreate(1, 0))
	assert.Equal(t, domain.StatusClosed, TargetStatusAfterCreate(1, 1))
	assert.Equal(t, domain.StatusOpen, TargetStatusAfterCreate(3, 1))
	assert.Equal(t, domain.StatusClosed, TargetStatusAfterCreate(3, 2))

	assert.Equal(t, domain.StatusOpen, TargetStatusAfterCancel(1, 0))
	assert.Equal(t, domain.StatusClosed, TargetStatusAfterCancel(2, 2))
	assert.Equal(t, domain.StatusOpen, TargetStatusAfterCancel(2, 1))
}

func TestCreate_CapacityScenario(t *testing.T) {
	ctx := context.Background()
	cfg := scenarioConfig()
	store := newMemoryStore()
	svc, obs := newTestService(store)
	date := domain.MustParseDate("15.01.2024")

	// Существующее бронирование на 10:00
	first, err := svc.Create(ctx, cfg, &CreateRequest{UserID: 10, Date: date, Hour: 10, InitiatedBySelf: true})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, first.Status)

	// Второе бронирование: занятость 1, 1 <= 1+1 -> closed, запись проходит
	second, err := svc.Create(ctx, cfg, &CreateRequest{
		UserID: 11, Date: date, Hour: 10, InitiatedBySelf: true, SeenOccupancy: intPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, second.Status)

	occupancy, err := svc.CheckAvailability(ctx, cfg, date, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, occupancy)

	// Третья попытка отклоняется повторной проверкой
	_, err = svc.Create(ctx, cfg, &CreateRequest{
		UserID: 12, Date: date, Hour: 10, InitiatedBySelf: true, SeenOccupancy: intPtr(1),
	})
	assert.ErrorIs(t, err, ErrSlotFull)

	assert.Equal(t, []domain.Date{date, date}, obs.dates)
}

func TestCreate_SlotFilledConcurrently(t *testing.T) {
	ctx := context.Background()
	cfg := scenarioConfig()
	store := newMemoryStore()
	svc, _ := newTestService(store)
	date := domain.MustParseDate("16.01.2024")

	_, err := svc.Create(ctx, cfg, &CreateRequest{UserID: 10, Date: date, Hour: 12, InitiatedBySelf: true})
	require.NoError(t, err)

	// Пользователь видел пустой слот, но его уже заняли
	_, err = svc.Create(ctx, cfg, &CreateRequest{
		UserID: 11, Date: date, Hour: 12, InitiatedBySelf: true, SeenOccupancy: intPtr(0),
	})
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestCreate_LocalPreCheck(t *testing.T) {
	store := newMemoryStore()
	svc, obs := newTestService(store)

	_, err := svc.Create(context.Background(), scenarioConfig(), &CreateRequest{
		UserID: 10, Date: domain.MustParseDate("16.01.2024"), Hour: 12, SeenOccupancy: intPtr(2),
	})

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Empty(t, store.calls)
	assert.Empty(t, obs.dates)
}

func TestCreate_ManuallyClosedSlot(t *testing.T) {
	ctx := context.Background()
	cfg := scenarioConfig()
	cfg.MaxEntriesPerSlot = 3
	store := newMemoryStore()
	svc, _ := newTestService(store)
	date := domain.MustParseDate("17.01.2024")

	res, err := svc.ToggleSlotStatus(ctx, cfg, &ToggleRequest{Date: date, Hour: 14, CurrentOccupancy: 0})
	require.NoError(t, err)
	require.True(t, res.Toggled)
	assert.Equal(t, domain.StatusClosed, res.Status)

	_, err = svc.Create(ctx, cfg, &CreateRequest{UserID: 1, Date: date, Hour: 14, InitiatedBySelf: true})
	assert.ErrorIs(t, err, ErrSlotClosed)
}

func TestCreate_OutsideSchedule(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newMemoryStore())
	cfg := scenarioConfig()

	// Суббота
	_, err := svc.Create(ctx, cfg, &CreateRequest{UserID: 1, Date: domain.MustParseDate("20.01.2024"), Hour: 10, InitiatedBySelf: true})
	assert.ErrorIs(t, err, ErrOutsideSchedule)

	_, err = svc.Create(ctx, cfg, &CreateRequest{UserID: 1, Date: domain.MustParseDate("15.01.2024"), Hour: 20, InitiatedBySelf: true})
	assert.ErrorIs(t, err, ErrOutsideSchedule)

	// Администратор может записать вне расписания
	_, err = svc.Create(ctx, cfg, &CreateRequest{UserID: 1, Date: domain.MustParseDate("15.01.2024"), Hour: 20})
	assert.NoError(t, err)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc, _ := newTestService(newMemoryStore())
	cfg := scenarioConfig()

	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"no user", CreateRequest{Date: domain.MustParseDate("15.01.2024"), Hour: 10}},
		{"zero date", CreateRequest{UserID: 1, Hour: 10}},
		{"hour out of range", CreateRequest{UserID: 1, Date: domain.MustParseDate("15.01.2024"), Hour: 24}},
		{"negative seen", CreateRequest{UserID: 1, Date: domain.MustParseDate("15.01.2024"), Hour: 10, SeenOccupancy: intPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), cfg, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_StoreFailureDoesNotNotify(t *testing.T) {
	store := newMemoryStore()
	boom := errors.New("connection reset")
	store.failWith = boom
	svc, obs := newTestService(store)

	_, err := svc.Create(context.Background(), scenarioConfig(), &CreateRequest{
		UserID: 1, Date: domain.MustParseDate("15.01.2024"), Hour: 10,
	})

	assert.ErrorIs(t, err, ErrStoreFailure)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, obs.dates)
}

func TestCancel_SoleBookingReopensSlot(t *testing.T) {
	ctx := context.Background()
	cfg := scenarioConfig()
	store := newMemoryStore()
	svc, obs := newTestService(store)
	date := domain.MustParseDate("15.01.2024")

	b, err := svc.Create(ctx, cfg, &CreateRequest{UserID: 10, Date: date, Hour: 10, InitiatedBySelf: true})
	require.NoError(t, err)
	require.Equal(t, domain.StatusClosed, b.Status)

	res, err := svc.Cancel(ctx, cfg, &CancelRequest{BookingID: b.ID, UserID: 10, IsAdmin: false})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusOpen, res.ResultingStatus)
	assert.Equal(t, 0, res.Occupancy)
	assert.Equal(t, domain.StatusOpen, store.statuses[b.SlotKey()])
	assert.Len(t, obs.dates, 2)
}

func TestCancel_AccessRules(t *testing.T) {
	ctx := context.Background()
	cfg := scenarioConfig()
	cfg.CancelLeadHours = 24
	store := newMemoryStore()
	svc, _ := newTestService(store)
	svc.timeProvider = fixedTime{now: time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC)}

	b, err := svc.Create(ctx, cfg, &CreateRequest{UserID: 10, Date: domain.MustParseDate("15.01.2024"), Hour: 10})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, cfg, &CancelRequest{BookingID: b.ID, UserID: 99, IsAdmin: false})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Cancel(ctx, cfg, &CancelRequest{BookingID: b.ID, UserID: 10, IsAdmin: false})
	assert.ErrorIs(t, err, ErrTooLateToCancel)

	// Администратор не ограничен сроком
	res, err := svc.Cancel(ctx, cfg, &CancelRequest{BookingID: b.ID, UserID: 1, IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.Booking.UserID)

	_, err = svc.Cancel(ctx, cfg, &CancelRequest{BookingID: b.ID, UserID: 1})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_RecordsWhoCancelled(t *testing.T) {
	ctx := context.Background()
	cfg := scenarioConfig()
	cfg.MaxEntriesPerSlot = 3
	store := newMemoryStore()
	svc, _ := newTestService(store)
	date := domain.MustParseDate("15.01.2024")

	own, err := svc.Create(ctx, cfg, &CreateRequest{UserID: 1, Date: date, Hour: 10})
	require.NoError(t, err)
	other, err := svc.Create(ctx, cfg, &CreateRequest{UserID: 10, Date: date, Hour: 10})
	require.NoError(t, err)
	mine, err := svc.Create(ctx, cfg, &CreateRequest{UserID: 10, Date: date, Hour: 11})
	require.NoError(t, err)

	// Администратор отменяет своё бронирование
	_, err = svc.Cancel(ctx, cfg, &CancelRequest{BookingID: own.ID, UserID: 1, IsAdmin: true})
	require.NoError(t, err)
	// Администратор отменяет чужое
	_, err = svc.Cancel(ctx, cfg, &CancelRequest{BookingID: other.ID, UserID: 1, IsAdmin: true})
	require.NoError(t, err)
	// Пользователь отменяет своё
	_, err = svc.Cancel(ctx, cfg, &CancelRequest{BookingID: mine.ID, UserID: 10})
	require.NoError(t, err)

	require.Len(t, store.deleted, 3)
	assert.True(t, store.deleted[0].CancelledBySelf)
	assert.False(t, store.deleted[1].CancelledBySelf)
	assert.True(t, store.deleted[2].CancelledBySelf)
}

func TestSlotStatus_ReadsStore(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newTestService(store)
	cfg := scenarioConfig()
	date := domain.MustParseDate("15.01.2024")
	store.statuses[domain.SlotKey{OrgID: cfg.OrgID, Date: date, Hour: 9}] = domain.StatusClosed

	status, err := svc.SlotStatus(context.Background(), cfg, date, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, status)

	_, err = svc.SlotStatus(context.Background(), cfg, domain.Date{}, 9)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_KeepsClosedWhenStillFull(t *testing.T) {
	ctx := context.Background()
	cfg := scenarioConfig()
	cfg.MaxEntriesPerSlot = 2
	store := newMemoryStore()
	svc, _ := newTestService(store)
	date := domain.MustParseDate("15.01.2024")

	// Ёмкость 2, в слоте оказалось 3 бронирования (администратор записал сверх лимита)
	var ids []int64
	for i := 0; i < 3; i++ {
		b, err := store.CreateBooking(ctx, domain.CreateBookingPayload{OrgID: 1, UserID: int64(i + 1), Date: date, Hour: 9, Status: domain.StatusClosed})
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}

	res, err := svc.Cancel(ctx, cfg, &CancelRequest{BookingID: ids[0], UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, res.ResultingStatus)

	res, err = svc.Cancel(ctx, cfg, &CancelRequest{BookingID: ids[1], UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, res.ResultingStatus)
}

func TestToggleSlotStatus_NoOpWhenFull(t *testing.T) {
	store := newMemoryStore()
	svc, obs := newTestService(store)
	cfg := scenarioConfig()
	cfg.MaxEntriesPerSlot = 2

	for _, occupancy := range []int{2, 3} {
		res, err := svc.ToggleSlotStatus(context.Background(), cfg, &ToggleRequest{
			Date: domain.MustParseDate("15.01.2024"), Hour: 9, CurrentOccupancy: occupancy,
		})
		require.NoError(t, err)
		assert.False(t, res.Toggled)
	}

	assert.Empty(t, store.calls)
	assert.Empty(t, obs.dates)
}

func TestToggleSlotStatus_Flips(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc, obs := newTestService(store)
	cfg := scenarioConfig()
	cfg.MaxEntriesPerSlot = 2
	req := &ToggleRequest{Date: domain.MustParseDate("15.01.2024"), Hour: 9, CurrentOccupancy: 1}

	res, err := svc.ToggleSlotStatus(ctx, cfg, req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, res.Status)

	res, err = svc.ToggleSlotStatus(ctx, cfg, req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, res.Status)

	assert.Len(t, obs.dates, 2)
}

func TestToggleSlotStatus_StoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.failWith = errors.New("timeout")
	svc, obs := newTestService(store)

	_, err := svc.ToggleSlotStatus(context.Background(), scenarioConfig(), &ToggleRequest{
		Date: domain.MustParseDate("15.01.2024"), Hour: 9,
	})

	assert.ErrorIs(t, err, ErrStoreFailure)
	assert.Empty(t, obs.dates)
}
