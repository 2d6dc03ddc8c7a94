package calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// BuildMonthDates возвращает все даты месяца опорной даты по возрастанию
func BuildMonthDates(ref domain.Date) ([]domain.Date, error) {
	if err := checkReference(ref); err != nil {
		return nil, err
	}

	first := ref.FirstOfMonth()
	n := ref.DaysInMonth()

	dates := make([]domain.Date, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, first.AddDays(i))
	}
	return dates, nil
}

// BuildWeekDates возвращает неделю (понедельник - воскресенье), содержащую опорную дату.
//
// В режиме week неделя обрезается по границам месяца опорной даты:
// даты соседних месяцев не показываются. В режиме day возвращается полная неделя,
// из которой вызывающий код выбирает один день.
func BuildWeekDates(ref domain.Date, mode domain.ViewMode) ([]domain.Date, error) {
	if err := checkReference(ref); err != nil {
		return nil, err
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidViewMode, string(mode))
	}

	week := fullWeek(ref)
	if mode != domain.ViewWeek {
		return week, nil
	}

	truncated := make([]domain.Date, 0, len(week))
	for _, d := range week {
		if d.SameMonth(ref) {
			truncated = append(truncated, d)
		}
	}
	return truncated, nil
}

// BuildDates выбирает построитель по режиму отображения
func BuildDates(ref domain.Date, mode domain.ViewMode) ([]domain.Date, error) {
	if mode == domain.ViewMonth {
		return BuildMonthDates(ref)
	}
	return BuildWeekDates(ref, mode)
}

// fullWeek 7 дат недели, начиная с понедельника.
// Для воскресенья неделя считается от предыдущего дня, чтобы не уйти на следующую неделю.
func fullWeek(ref domain.Date) []domain.Date {
	anchor := ref
	if anchor.Weekday() == time.Sunday {
		anchor = anchor.AddDays(-1)
	}

	monday := anchor.AddDays(-domain.WeekdayCodeOf(anchor.Weekday()).Index())

	week := make([]domain.Date, 0, domain.MaxWeekDays)
	for i := 0; i < domain.MaxWeekDays; i++ {
		week = append(week, monday.AddDays(i))
	}
	return week
}

func checkReference(ref domain.Date) error {
	if ref.IsZero() || !ref.Valid() {
		return fmt.Errorf("%w: %+v", ErrInvalidReferenceDate, ref)
	}
	return nil
}
