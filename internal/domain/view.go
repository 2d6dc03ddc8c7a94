package domain

import (
	"fmt"
	"strings"
)

// ViewMode calendar presentation mode
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

func (m ViewMode) Valid() bool {
	return m == ViewDay || m == ViewWeek || m == ViewMonth
}

// ParseViewMode accepts day, week or month in any case. Empty input means week.
func ParseViewMode(s string) (ViewMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ViewWeek, nil
	}
	m := ViewMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
	return m, nil
}
