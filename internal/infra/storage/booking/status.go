package booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// В БД статус слота хранится как work_status: 1 - открыт, 0 - закрыт
const (
	workStatusClosed int16 = 0
	workStatusOpen   int16 = 1
)

// sqlDateLayout формат DATE для параметров запроса
const sqlDateLayout = "2006-01-02"

func toWorkStatus(s domain.SlotStatus) int16 {
	if s == domain.StatusClosed {
		return workStatusClosed
	}
	return workStatusOpen
}

func fromWorkStatus(v int16) (domain.SlotStatus, error) {
	switch v {
	case workStatusOpen:
		return domain.StatusOpen, nil
	case workStatusClosed:
		return domain.StatusClosed, nil
	default:
		return domain.StatusOpen, fmt.Errorf("%w: %d", ErrInvalidStatus, v)
	}
}

// cancelledBySelfFlag признак отмены самим пользователем в виде 0|1
func cancelledBySelfFlag(self bool) int16 {
	if self {
		return 1
	}
	return 0
}

func sqlDate(d domain.Date) string {
	return d.Time().Format(sqlDateLayout)
}

func fromSQLDate(t time.Time) domain.Date {
	return domain.DateOf(t)
}
