package lifecycle

import "github.com/m04kA/SMC-SlotCalendar/internal/domain"

// TargetStatusAfterCreate статус слота после добавления ещё одного бронирования
// к occupancy существующим: closed, если maxEntries <= occupancy+1
func TargetStatusAfterCreate(maxEntries, occupancy int) domain.SlotStatus {
	if maxEntries <= occupancy+1 {
		return domain.StatusClosed
	}
	return domain.StatusOpen
}

// TargetStatusAfterCancel статус слота, в котором после отмены осталось occupancy бронирований
func TargetStatusAfterCancel(maxEntries, occupancy int) domain.SlotStatus {
	if maxEntries <= occupancy {
		return domain.StatusClosed
	}
	return domain.StatusOpen
}

// isSlotFull повторная проверка перед записью.
// Слот заполнен, если бронирований уже больше лимита, либо лимит достигнут
// после того, как пользователь открыл слот (authoritative > seen).
func isSlotFull(maxEntries, authoritative int, seen *int) bool {
	if authoritative > maxEntries {
		return true
	}
	return seen != nil && authoritative >= maxEntries && authoritative > *seen
}
