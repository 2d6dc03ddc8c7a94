package coordinator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/calendar"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/slotgrid"
)

// maxHiddenMonths сколько загруженных, но не показываемых месяцев держит координатор
const maxHiddenMonths = 6

// monthSnapshot бронирования и сохранённые статусы слотов одного месяца
type monthSnapshot struct {
	bookings  []domain.Booking
	overrides []domain.SlotOverride
	loadedAt  time.Time
}

// Coordinator хранит текущий снимок отображения одной организации:
// настройки, загруженные месяцы, опорную дату, режим и опубликованные дни.
// Любой сигнал заново прогоняет построение дат и компиляцию слотов и
// заменяет опубликованные дни целиком.
type Coordinator struct {
	store   Store
	maxAge  time.Duration
	metrics MetricsRecorder
	logger  Logger
	now     func() time.Time

	mu     sync.Mutex
	cfg    domain.ScheduleConfig
	ref    domain.Date
	mode   domain.ViewMode
	months map[domain.Date]*monthSnapshot
	days   []domain.Day
}

// New создает координатор. maxAge - сколько загруженный месяц считается свежим,
// 0 означает "пока не придёт сигнал об изменении". metrics может быть nil
func New(cfg domain.ScheduleConfig, store Store, maxAge time.Duration, metrics MetricsRecorder, logger Logger) *Coordinator {
	return &Coordinator{
		store:   store,
		maxAge:  maxAge,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		cfg:     cfg.Clone(),
		mode:    domain.ViewWeek,
		months:  make(map[domain.Date]*monthSnapshot),
	}
}

// OrgID организация, которую показывает координатор
func (c *Coordinator) OrgID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.OrgID
}

// Config текущие настройки
func (c *Coordinator) Config() domain.ScheduleConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Clone()
}

// ReferenceDate текущая опорная дата
func (c *Coordinator) ReferenceDate() domain.Date {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ref
}

// ViewMode текущий режим отображения
func (c *Coordinator) ViewMode() domain.ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Days копия опубликованных дней
func (c *Coordinator) Days() []domain.Day {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyDays(c.days)
}

// SetReferenceDate меняет опорную дату, при необходимости подгружая месяц
func (c *Coordinator) SetReferenceDate(ctx context.Context, ref domain.Date) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := calendar.BuildDates(ref, domain.ViewDay); err != nil {
		return err
	}
	c.ref = ref
	return c.reload(ctx, false)
}

// SetViewMode меняет режим отображения
func (c *Coordinator) SetViewMode(ctx context.Context, mode domain.ViewMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !mode.Valid() {
		return fmt.Errorf("%w: %q", calendar.ErrInvalidViewMode, string(mode))
	}
	c.mode = mode
	return c.reload(ctx, false)
}

// SetConfig заменяет настройки организации. Хранилище не запрашивается
func (c *Coordinator) SetConfig(cfg domain.ScheduleConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cfg = cfg.Clone()
	return c.rebuild()
}

// ApplyStoreSnapshot подставляет готовый снимок месяца, например полученный извне
func (c *Coordinator) ApplyStoreSnapshot(month domain.Date, bookings []domain.Booking, overrides []domain.SlotOverride) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.months[month.FirstOfMonth()] = &monthSnapshot{
		bookings:  append([]domain.Booking(nil), bookings...),
		overrides: append([]domain.SlotOverride(nil), overrides...),
		loadedAt:  c.now(),
	}
	return c.rebuild()
}

// Refresh заново загружает все месяцы текущего отображения
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reload(ctx, true)
}

// Show атомарно выставляет дату и режим и возвращает опубликованные дни
func (c *Coordinator) Show(ctx context.Context, ref domain.Date, mode domain.ViewMode) ([]domain.Day, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", calendar.ErrInvalidViewMode, string(mode))
	}
	if _, err := calendar.BuildDates(ref, mode); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.ref = ref
	c.mode = mode
	if err := c.reload(ctx, false); err != nil {
		return nil, err
	}
	return copyDays(c.days), nil
}

// BookingsChanged вызывается после подтверждённой записи в хранилище.
// Месяц даты помечается устаревшим и перезагружается, если он сейчас на экране
func (c *Coordinator) BookingsChanged(ctx context.Context, orgID int64, date domain.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if orgID != c.cfg.OrgID {
		return
	}
	month := date.FirstOfMonth()
	delete(c.months, month)

	if c.ref.IsZero() {
		return
	}
	if err := c.reload(ctx, false); err != nil {
		c.logger.Error("BookingsChanged: org=%d, month=%s: refresh failed: %v", orgID, month, err)
	}
}

// ScheduleChanged применяет сохранённые администратором настройки
func (c *Coordinator) ScheduleChanged(_ context.Context, cfg domain.ScheduleConfig) {
	if cfg.OrgID != c.OrgID() {
		return
	}
	if err := c.SetConfig(cfg); err != nil {
		c.logger.Error("ScheduleChanged: org=%d: %v", cfg.OrgID, err)
	}
}

// Run обрабатывает сигналы по одному, пока не закроется канал или не отменится контекст
func (c *Coordinator) Run(ctx context.Context, signals <-chan Signal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-signals:
			if !ok {
				return nil
			}
			if err := s.apply(ctx, c); err != nil {
				c.logger.Warn("Run: signal %T failed: %v", s, err)
			}
		}
	}
}

// reload подгружает недостающие или устаревшие месяцы и перестраивает сетку.
// Вызывается под c.mu
func (c *Coordinator) reload(ctx context.Context, force bool) error {
	if c.ref.IsZero() {
		c.days = nil
		return nil
	}

	dates, err := c.compiledDates()
	if err != nil {
		return err
	}

	visible := monthsOf(dates)
	for _, month := range visible {
		snap, ok := c.months[month]
		if ok && !force && !c.stale(snap) {
			continue
		}

		bookings, err := c.store.FetchBookings(ctx, c.cfg.OrgID, month)
		if err != nil {
			return fmt.Errorf("%w: FetchBookings %s: %w", ErrStoreFailure, month, err)
		}
		overrides, err := c.store.FetchSlotStatuses(ctx, c.cfg.OrgID, month)
		if err != nil {
			return fmt.Errorf("%w: FetchSlotStatuses %s: %w", ErrStoreFailure, month, err)
		}

		c.months[month] = &monthSnapshot{
			bookings:  bookings,
			overrides: overrides,
			loadedAt:  c.now(),
		}
	}

	c.prune(visible)
	return c.rebuild()
}

// prune убирает скрытые месяцы: устаревшие сразу, остальные сверх
// maxHiddenMonths начиная с самых давно загруженных. Вызывается под c.mu
func (c *Coordinator) prune(visible []domain.Date) {
	shown := make(map[domain.Date]struct{}, len(visible))
	for _, m := range visible {
		shown[m] = struct{}{}
	}

	hidden := make([]domain.Date, 0, len(c.months))
	for m, snap := range c.months {
		if _, ok := shown[m]; ok {
			continue
		}
		if c.stale(snap) {
			delete(c.months, m)
			continue
		}
		hidden = append(hidden, m)
	}
	if len(hidden) <= maxHiddenMonths {
		return
	}

	sort.Slice(hidden, func(i, j int) bool {
		return c.months[hidden[i]].loadedAt.Before(c.months[hidden[j]].loadedAt)
	})
	for _, m := range hidden[:len(hidden)-maxHiddenMonths] {
		delete(c.months, m)
	}
}

// MonthsLoaded число месяцев в памяти координатора
func (c *Coordinator) MonthsLoaded() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.months)
}

// rebuild строит даты, компилирует слоты и публикует дни. Вызывается под c.mu
func (c *Coordinator) rebuild() error {
	if c.ref.IsZero() {
		c.days = nil
		return nil
	}

	days, err := c.compile()
	if err != nil {
		return err
	}

	if c.mode == domain.ViewDay {
		day, ok := findDay(days, c.ref)
		if !ok {
			// Одна повторная попытка перед тем, как сообщить об ошибке
			c.logger.Warn("rebuild: org=%d, day %s not found, rebuilding", c.cfg.OrgID, c.ref)
			if days, err = c.compile(); err != nil {
				return err
			}
			if day, ok = findDay(days, c.ref); !ok {
				return fmt.Errorf("%w: no day %s in compiled week", ErrInternalInconsistency, c.ref)
			}
		}
		days = []domain.Day{day}
	}

	c.days = days
	if c.metrics != nil {
		c.metrics.RecordGridRebuild(string(c.mode))
	}
	return nil
}

func (c *Coordinator) compile() ([]domain.Day, error) {
	dates, err := c.compiledDates()
	if err != nil {
		return nil, err
	}

	var (
		bookings  []domain.Booking
		overrides []domain.SlotOverride
	)
	for _, month := range monthsOf(dates) {
		if snap, ok := c.months[month]; ok {
			bookings = append(bookings, snap.bookings...)
			overrides = append(overrides, snap.overrides...)
		}
	}

	return slotgrid.CompileWithOverrides(bookings, overrides, dates, c.cfg), nil
}

// compiledDates даты, которые компилируются для текущего режима.
// Для day это полная неделя, из которой потом выбирается один день
func (c *Coordinator) compiledDates() ([]domain.Date, error) {
	if c.mode == domain.ViewDay {
		return calendar.BuildWeekDates(c.ref, domain.ViewDay)
	}
	return calendar.BuildDates(c.ref, c.mode)
}

func (c *Coordinator) stale(snap *monthSnapshot) bool {
	return c.maxAge > 0 && c.now().Sub(snap.loadedAt) > c.maxAge
}

func findDay(days []domain.Day, date domain.Date) (domain.Day, bool) {
	for _, d := range days {
		if d.Date == date {
			return d, true
		}
	}
	return domain.Day{}, false
}

// monthsOf первые числа месяцев, в которые попадают даты, по возрастанию
func monthsOf(dates []domain.Date) []domain.Date {
	seen := make(map[domain.Date]struct{}, 2)
	months := make([]domain.Date, 0, 2)
	for _, d := range dates {
		m := d.FirstOfMonth()
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

func copyDays(days []domain.Day) []domain.Day {
	if days == nil {
		return nil
	}
	out := make([]domain.Day, len(days))
	for i, d := range days {
		out[i] = domain.Day{Date: d.Date, ShowThisDay: d.ShowThisDay}
		out[i].Slots = make([]domain.TimeSlot, len(d.Slots))
		for j, s := range d.Slots {
			s.Occupants = append([]domain.Booking(nil), s.Occupants...)
			out[i].Slots[j] = s
		}
	}
	return out
}
