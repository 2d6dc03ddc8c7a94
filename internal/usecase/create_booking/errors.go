package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrAccessDenied возвращается, когда пользователь бронирует за другого без прав администратора
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrUserNotFound возвращается, когда UserService не знает пользователя
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrSlotInPast возвращается, когда пользователь бронирует уже начавшийся слот
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
