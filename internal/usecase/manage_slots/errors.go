package manage_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("manage_slots: invalid input data")

	// ErrAccessDenied возвращается, когда операция доступна только администратору
	ErrAccessDenied = errors.New("manage_slots: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("manage_slots: internal error")
)
