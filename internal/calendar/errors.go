package calendar

import "errors"

var (
	// ErrInvalidReferenceDate возвращается, когда опорная дата не задана или некорректна
	ErrInvalidReferenceDate = errors.New("calendar: invalid reference date")

	// ErrInvalidViewMode возвращается для режима отображения, отличного от day/week/month
	ErrInvalidViewMode = errors.New("calendar: invalid view mode")
)
