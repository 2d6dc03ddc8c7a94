package bookings

import "errors"

var (
	// ErrCacheMiss возвращается Cache.Get, когда ключа нет
	ErrCacheMiss = errors.New("bookings.cache: miss")
)
