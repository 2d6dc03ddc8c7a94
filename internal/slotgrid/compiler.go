package slotgrid

import (
	"sort"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

type slotRef struct {
	date domain.Date
	hour int
}

// Compile собирает сетку слотов по списку бронирований, датам и конфигурации организации.
// Результат детерминирован и не разделяет память с входными данными.
func Compile(bookings []domain.Booking, dates []domain.Date, cfg domain.ScheduleConfig) []domain.Day {
	return CompileWithOverrides(bookings, nil, dates, cfg)
}

// CompileWithOverrides то же, что Compile, но дополнительно применяет сохранённые статусы слотов.
// Статус из overrides заменяет статус слота с той же датой и часом. Override для часа
// вне рабочего диапазона без бронирований игнорируется: такого слота в сетке нет.
func CompileWithOverrides(
	bookings []domain.Booking,
	overrides []domain.SlotOverride,
	dates []domain.Date,
	cfg domain.ScheduleConfig,
) []domain.Day {
	// Шаг 1: Группируем бронирования по дате
	byDate := groupByDate(bookings)

	statusOverrides := make(map[slotRef]domain.SlotStatus, len(overrides))
	for _, o := range overrides {
		statusOverrides[slotRef{date: o.Date, hour: o.Hour}] = o.Status
	}

	days := make([]domain.Day, 0, len(dates))
	for _, date := range dates {
		slots := compileDay(date, byDate[date], cfg)

		for i := range slots {
			if status, ok := statusOverrides[slotRef{date: date, hour: slots[i].Hour}]; ok {
				slots[i].Status = status
			}
		}

		// Шаг 7: Нерабочие дни остаются в сетке, но помечаются
		days = append(days, domain.Day{
			Date:        date,
			ShowThisDay: cfg.IsWorkingDay(date),
			Slots:       slots,
		})
	}

	return days
}

func compileDay(date domain.Date, bookings []domain.Booking, cfg domain.ScheduleConfig) []domain.TimeSlot {
	// Шаг 2: Фактические слоты - по одному на каждый час, в котором есть бронирования
	actual, hours := actualSlots(date, bookings)

	slots := make([]domain.TimeSlot, 0, len(cfg.Hours())+len(hours))

	// Шаг 5 (начало): Бронирования раньше рабочего времени идут в начало
	for _, h := range hours {
		if h < cfg.StartHour {
			slots = append(slots, actual[h])
		}
	}

	// Шаги 3-4: Каноническая сетка, фактический слот заменяет пустой
	for _, h := range cfg.Hours() {
		if slot, ok := actual[h]; ok {
			slots = append(slots, slot)
			continue
		}
		slots = append(slots, domain.TimeSlot{
			Date:      date,
			Hour:      h,
			Status:    domain.StatusOpen,
			Occupants: []domain.Booking{},
		})
	}

	// Шаг 5 (конец): Бронирования позже рабочего времени идут в конец
	for _, h := range hours {
		if h > cfg.EndHour {
			slots = append(slots, actual[h])
		}
	}

	// Шаг 6: Итоговый порядок - по возрастанию часа
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Hour < slots[j].Hour
	})

	return slots
}

// actualSlots строит слоты по бронированиям одного дня.
// Статус слота берётся из первого бронирования: все бронирования слота имеют общий статус.
func actualSlots(date domain.Date, bookings []domain.Booking) (map[int]domain.TimeSlot, []int) {
	slots := make(map[int]domain.TimeSlot)
	hours := make([]int, 0)

	for _, b := range bookings {
		slot, ok := slots[b.Hour]
		if !ok {
			slot = domain.TimeSlot{
				Date:      date,
				Hour:      b.Hour,
				Status:    b.Status,
				Occupants: make([]domain.Booking, 0, 1),
			}
			hours = append(hours, b.Hour)
		}
		slot.Occupants = append(slot.Occupants, b)
		slots[b.Hour] = slot
	}

	sort.Ints(hours)
	return slots, hours
}

// groupByDate раскладывает бронирования по датам.
// Стабильная сортировка по дате сохраняет исходный порядок бронирований внутри дня.
func groupByDate(bookings []domain.Booking) map[domain.Date][]domain.Booking {
	sorted := make([]domain.Booking, len(bookings))
	copy(sorted, bookings)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	byDate := make(map[domain.Date][]domain.Booking)
	for _, b := range sorted {
		byDate[b.Date] = append(byDate[b.Date], b)
	}
	return byDate
}
