package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	OrgID   int64 // ID организации
	ActorID int64 // ID того, кто выполняет запрос (из заголовка)
	IsAdmin bool  // Роль администратора организации

	UserID int64       // Для кого бронируем, 0 - для себя
	Date   domain.Date // Дата слота
	Hour   int         // Час слота

	// SeenOccupancy занятость слота в сетке клиента, nil - клиент сетку не показывал
	SeenOccupancy *int

	UserName  string // Если пусто, берётся из UserService
	UserPhone string // Если пусто, берётся из UserService
	Comment   string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	OrgID         int64
	UserID        int64
	Date          domain.Date
	Hour          int
	SlotStatus    domain.SlotStatus // статус слота после записи
	CreatedBySelf bool
	UserName      string
	UserPhone     string
	Comment       string
	CreatedAt     time.Time
}
