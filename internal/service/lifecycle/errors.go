package lifecycle

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("lifecycle: invalid input data")

	// ErrCapacityExceeded возвращается, когда по данным вызывающего слот уже переполнен
	ErrCapacityExceeded = errors.New("lifecycle: slot capacity exceeded")

	// ErrSlotFull возвращается, когда повторная проверка в хранилище показала заполненный слот
	ErrSlotFull = errors.New("lifecycle: slot is full")

	// ErrSlotClosed возвращается, когда администратор закрыл слот вручную
	ErrSlotClosed = errors.New("lifecycle: slot is closed")

	// ErrOutsideSchedule возвращается, когда пользователь бронирует вне рабочего времени или в нерабочий день
	ErrOutsideSchedule = errors.New("lifecycle: slot is outside of working schedule")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("lifecycle: booking not found")

	// ErrAccessDenied возвращается при отмене чужого бронирования без прав администратора
	ErrAccessDenied = errors.New("lifecycle: access denied")

	// ErrTooLateToCancel возвращается, когда до начала слота осталось меньше CancelLeadHours
	ErrTooLateToCancel = errors.New("lifecycle: too late to cancel")

	// ErrStoreFailure возвращается при любой ошибке хранилища
	ErrStoreFailure = errors.New("lifecycle: store failure")
)
