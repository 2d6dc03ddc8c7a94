package manage_slots

import "github.com/m04kA/SMC-SlotCalendar/internal/domain"

// CancelRequest запрос на отмену бронирования
type CancelRequest struct {
	OrgID     int64
	ActorID   int64
	IsAdmin   bool
	BookingID int64
}

// CancelResponse результат отмены
type CancelResponse struct {
	BookingID  int64
	Date       domain.Date
	Hour       int
	SlotStatus domain.SlotStatus // статус слота после отмены
	Occupancy  int
}

// ToggleRequest запрос администратора на открытие/закрытие слота
type ToggleRequest struct {
	OrgID   int64
	IsAdmin bool
	Date    domain.Date
	Hour    int
}

// ToggleResponse результат переключения
type ToggleResponse struct {
	Date      domain.Date
	Hour      int
	Toggled   bool // false - слот заполнен, статус не менялся
	Status    domain.SlotStatus
	Occupancy int
}

// OccupancyRequest запрос актуальной занятости слота
type OccupancyRequest struct {
	OrgID int64
	Date  domain.Date
	Hour  int
}

// OccupancyResponse занятость слота
type OccupancyResponse struct {
	Date      domain.Date
	Hour      int
	Occupancy int
	Capacity  int
	Free      int
}
