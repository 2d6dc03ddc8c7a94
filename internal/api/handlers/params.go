package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// PathInt64 положительный int64 из параметра маршрута
func PathInt64(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s: must be positive", name)
	}
	return v, nil
}

// PathDate дата DD.MM.YYYY из параметра маршрута
func PathDate(r *http.Request, name string) (domain.Date, error) {
	return domain.ParseDate(mux.Vars(r)[name])
}

// ParseHour час без ведущих нулей: "9", не "09"
func ParseHour(s string) (int, error) {
	hour, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if strconv.Itoa(hour) != s || hour < domain.MinHour || hour > domain.MaxHour {
		return 0, fmt.Errorf("invalid hour %q", s)
	}
	return hour, nil
}

// PathHour час из параметра маршрута
func PathHour(r *http.Request, name string) (int, error) {
	return ParseHour(mux.Vars(r)[name])
}
