package lifecycle

import "github.com/m04kA/SMC-SlotCalendar/internal/domain"

// CreateRequest запрос на создание бронирования
type CreateRequest struct {
	UserID          int64
	Date            domain.Date
	Hour            int
	InitiatedBySelf bool // false, если администратор бронирует за пользователя

	// SeenOccupancy занятость слота в сетке, которую видел пользователь.
	// nil, если у вызывающего нет своей сетки: тогда локальная проверка пропускается.
	SeenOccupancy *int

	UserName  string
	UserPhone string
	Comment   string
}

// CancelRequest запрос на отмену бронирования
type CancelRequest struct {
	BookingID    int64
	UserID       int64 // кто отменяет
	IsAdmin      bool  // администратора не ограничивают владение и срок отмены
}

// CancelResult результат отмены
type CancelResult struct {
	Booking         domain.Booking
	ResultingStatus domain.SlotStatus
	Occupancy       int // занятость слота после отмены
}

// ToggleRequest запрос администратора на ручное открытие/закрытие слота
type ToggleRequest struct {
	Date             domain.Date
	Hour             int
	CurrentOccupancy int
}

// ToggleResult результат переключения. Toggled=false означает, что слот заполнен
// и ничего не менялось, Status в этом случае не заполняется
type ToggleResult struct {
	Toggled bool
	Status  domain.SlotStatus
}
