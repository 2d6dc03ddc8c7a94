package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWorkingDays(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []WeekdayCode
		wantErr bool
	}{
		{
			name: "shuffled english",
			in:   []string{"Fri", "mon", "WED"},
			want: []WeekdayCode{Mon, Wed, Fri},
		},
		{
			name: "russian and duplicates",
			in:   []string{"Вс", "пн", "Mon", "сб"},
			want: []WeekdayCode{Mon, Sat, Sun},
		},
		{
			name: "empty",
			in:   nil,
			want: []WeekdayCode{},
		},
		{
			name:    "unknown code",
			in:      []string{"Mon", "Funday"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeWorkingDays(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownWeekday)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekdayCodeOf(t *testing.T) {
	assert.Equal(t, Mon, WeekdayCodeOf(time.Monday))
	assert.Equal(t, Sat, WeekdayCodeOf(time.Saturday))
	assert.Equal(t, Sun, WeekdayCodeOf(time.Sunday))
	assert.Equal(t, 6, Sun.Index())
	assert.Equal(t, -1, WeekdayCode("xx").Index())
}
