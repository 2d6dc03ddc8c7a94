package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

func dates(ss ...string) []domain.Date {
	out := make([]domain.Date, len(ss))
	for i, s := range ss {
		out[i] = domain.MustParseDate(s)
	}
	return out
}

func TestBuildMonthDates(t *testing.T) {
	refs := []string{"15.01.2024", "01.02.2024", "29.02.2024", "10.02.2023", "30.04.2024", "31.12.2025"}

	for _, ref := range refs {
		t.Run(ref, func(t *testing.T) {
			d := domain.MustParseDate(ref)
			got, err := BuildMonthDates(d)
			require.NoError(t, err)

			assert.Len(t, got, d.DaysInMonth())
			assert.Equal(t, d.FirstOfMonth(), got[0])
			assert.Equal(t, d.LastOfMonth(), got[len(got)-1])

			seen := make(map[domain.Date]bool)
			for i, day := range got {
				assert.False(t, seen[day], "duplicate %s", day)
				seen[day] = true
				if i > 0 {
					assert.True(t, got[i-1].Before(day))
				}
			}
		})
	}
}

func TestBuildWeekDates_FullWeekInDayMode(t *testing.T) {
	// 31.01.2024 - среда, неделя захватывает февраль
	got, err := BuildWeekDates(domain.MustParseDate("31.01.2024"), domain.ViewDay)
	require.NoError(t, err)

	assert.Equal(t, dates(
		"29.01.2024", "30.01.2024", "31.01.2024", "01.02.2024",
		"02.02.2024", "03.02.2024", "04.02.2024",
	), got)
}

func TestBuildWeekDates(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want []domain.Date
	}{
		{
			name: "middle of month",
			ref:  "17.01.2024",
			want: dates("15.01.2024", "16.01.2024", "17.01.2024", "18.01.2024",
				"19.01.2024", "20.01.2024", "21.01.2024"),
		},
		{
			name: "sunday stays in its own week",
			ref:  "21.01.2024",
			want: dates("15.01.2024", "16.01.2024", "17.01.2024", "18.01.2024",
				"19.01.2024", "20.01.2024", "21.01.2024"),
		},
		{
			// 31.01.2024 - среда, последний день месяца не воскресенье
			name: "last week truncated at month end",
			ref:  "30.01.2024",
			want: dates("29.01.2024", "30.01.2024", "31.01.2024"),
		},
		{
			// 01.02.2024 - четверг, первый день месяца не понедельник
			name: "first week truncated at month start",
			ref:  "02.02.2024",
			want: dates("01.02.2024", "02.02.2024", "03.02.2024", "04.02.2024"),
		},
		{
			// 01.01.2024 - понедельник, обрезать нечего
			name: "month starting on monday",
			ref:  "03.01.2024",
			want: dates("01.01.2024", "02.01.2024", "03.01.2024", "04.01.2024",
				"05.01.2024", "06.01.2024", "07.01.2024"),
		},
		{
			// 30.06.2024 - воскресенье, обрезать нечего
			name: "month ending on sunday",
			ref:  "30.06.2024",
			want: dates("24.06.2024", "25.06.2024", "26.06.2024", "27.06.2024",
				"28.06.2024", "29.06.2024", "30.06.2024"),
		},
		{
			// 01.09.2024 - воскресенье, неделя почти целиком в августе
			name: "sunday first of month",
			ref:  "01.09.2024",
			want: dates("01.09.2024"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildWeekDates(domain.MustParseDate(tt.ref), domain.ViewWeek)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			full, err := BuildWeekDates(domain.MustParseDate(tt.ref), domain.ViewDay)
			require.NoError(t, err)
			assert.Len(t, full, 7)
			assert.Contains(t, got, domain.MustParseDate(tt.ref))
		})
	}
}

func TestBuildDates_Errors(t *testing.T) {
	_, err := BuildMonthDates(domain.Date{})
	assert.ErrorIs(t, err, ErrInvalidReferenceDate)

	_, err = BuildWeekDates(domain.Date{Year: 2024, Month: 2, Day: 30}, domain.ViewWeek)
	assert.ErrorIs(t, err, ErrInvalidReferenceDate)

	_, err = BuildWeekDates(domain.MustParseDate("15.01.2024"), domain.ViewMode("year"))
	assert.ErrorIs(t, err, ErrInvalidViewMode)
}

func TestBuildDates_Dispatch(t *testing.T) {
	ref := domain.MustParseDate("15.01.2024")

	month, err := BuildDates(ref, domain.ViewMonth)
	require.NoError(t, err)
	assert.Len(t, month, 31)

	week, err := BuildDates(ref, domain.ViewWeek)
	require.NoError(t, err)
	assert.Len(t, week, 7)
}
