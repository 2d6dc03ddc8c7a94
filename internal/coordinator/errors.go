package coordinator

import "errors"

var (
	// ErrInternalInconsistency в режиме day после перестроения не нашлось дня опорной даты
	ErrInternalInconsistency = errors.New("coordinator: internal inconsistency")

	// ErrStoreFailure хранилище не вернуло снимок
	ErrStoreFailure = errors.New("coordinator: store failure")

	// ErrInvalidConfig переданы некорректные настройки
	ErrInvalidConfig = errors.New("coordinator: invalid config")
)
