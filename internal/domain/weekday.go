package domain

import (
	"fmt"
	"strings"
	"time"
)

// WeekdayCode canonical weekday abbreviation
type WeekdayCode string

const (
	Mon WeekdayCode = "Mon"
	Tue WeekdayCode = "Tue"
	Wed WeekdayCode = "Wed"
	Thu WeekdayCode = "Thu"
	Fri WeekdayCode = "Fri"
	Sat WeekdayCode = "Sat"
	Sun WeekdayCode = "Sun"
)

// CanonicalWeekdays Monday first
var CanonicalWeekdays = []WeekdayCode{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

// weekdayAliases accepted spellings (lower case) for every canonical code.
// Settings forms send localized abbreviations, so Russian ones are accepted as well.
var weekdayAliases = map[string]WeekdayCode{
	"mon": Mon, "monday": Mon, "пн": Mon, "понедельник": Mon,
	"tue": Tue, "tuesday": Tue, "вт": Tue, "вторник": Tue,
	"wed": Wed, "wednesday": Wed, "ср": Wed, "среда": Wed,
	"thu": Thu, "thursday": Thu, "чт": Thu, "четверг": Thu,
	"fri": Fri, "friday": Fri, "пт": Fri, "пятница": Fri,
	"sat": Sat, "saturday": Sat, "сб": Sat, "суббота": Sat,
	"sun": Sun, "sunday": Sun, "вс": Sun, "воскресенье": Sun,
}

// ParseWeekdayCode accepts English or Russian abbreviations in any case.
func ParseWeekdayCode(s string) (WeekdayCode, error) {
	code, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
	}
	return code, nil
}

// WeekdayCodeOf maps time.Weekday to its canonical code.
func WeekdayCodeOf(wd time.Weekday) WeekdayCode {
	if wd == time.Sunday {
		return Sun
	}
	return CanonicalWeekdays[int(wd)-1]
}

// Index position in the Monday-first week, 0..6.
func (c WeekdayCode) Index() int {
	for i, code := range CanonicalWeekdays {
		if code == c {
			return i
		}
	}
	return -1
}

func (c WeekdayCode) Valid() bool {
	return c.Index() >= 0
}

// NormalizeWorkingDays parses, de-duplicates and sorts weekday codes into Mon..Sun order.
func NormalizeWorkingDays(in []string) ([]WeekdayCode, error) {
	seen := make(map[WeekdayCode]bool, len(in))
	for _, raw := range in {
		code, err := ParseWeekdayCode(raw)
		if err != nil {
			return nil, err
		}
		seen[code] = true
	}

	result := make([]WeekdayCode, 0, len(seen))
	for _, code := range CanonicalWeekdays {
		if seen[code] {
			result = append(result, code)
		}
	}
	return result, nil
}

// WeekdayStrings converts codes back to plain strings for storage and transport.
func WeekdayStrings(codes []WeekdayCode) []string {
	result := make([]string, len(codes))
	for i, c := range codes {
		result[i] = string(c)
	}
	return result
}
