package get_calendar

import "github.com/m04kA/SMC-SlotCalendar/internal/domain"

// Request модель запроса сетки календаря
type Request struct {
	OrgID   int64
	ActorID int64 // 0 - анонимный просмотр
	IsAdmin bool
	Date    domain.Date
	View    domain.ViewMode
}

// Response сетка календаря
type Response struct {
	OrgID  int64
	Date   domain.Date
	View   domain.ViewMode
	Config Schedule
	Days   []Day
}

// Schedule настройки, по которым построена сетка
type Schedule struct {
	StartHour         int
	EndHour           int
	SlotMinuteOffset  int
	WorkingDays       []string
	MaxEntriesPerSlot int
}

// Day день сетки
type Day struct {
	Date        domain.Date
	Weekday     string
	ShowThisDay bool
	Slots       []Slot
}

// Slot слот дня
type Slot struct {
	Hour      int
	Label     string // "10:30"
	Status    domain.SlotStatus
	Occupancy int
	Capacity  int
	Free      int
	Overflow  bool // час вне рабочего диапазона
	Bookable  bool
	Occupants []Occupant
}

// Occupant бронирование в слоте. Для чужих бронирований без прав администратора
// персональные данные не заполняются
type Occupant struct {
	BookingID     int64
	UserID        int64
	IsMine        bool
	CreatedBySelf bool
	UserName      string
	UserPhone     string
	Comment       string
}
