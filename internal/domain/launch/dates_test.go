package launch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name string
		from string
		n    int
		rule WorkdayRule
		want string
	}{
		{"calendar forward", "2025-03-07", 3, WorkdayCalendarDays, "2025-03-10"},
		{"calendar backward", "2025-03-10", -10, WorkdayCalendarDays, "2025-02-28"},
		{"business skips weekend forward", "2025-03-07", 1, WorkdayBusinessDays, "2025-03-10"},
		{"business skips weekend backward", "2025-03-10", -1, WorkdayBusinessDays, "2025-03-07"},
		{"business two weeks back", "2025-03-14", -10, WorkdayBusinessDays, "2025-02-28"},
		{"business zero stays on weekend", "2025-03-08", 0, WorkdayBusinessDays, "2025-03-08"},
		{"business from saturday", "2025-03-08", 1, WorkdayBusinessDays, "2025-03-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddDays(day(tt.from), tt.n, tt.rule)
			assert.Equal(t, tt.want, got.Format(DateLayout))
		})
	}
}

func TestShiftDate(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		delta int
		rule  WorkdayRule
		want  string
	}{
		{"calendar lands on saturday", "2025-03-07", 1, WorkdayCalendarDays, "2025-03-08"},
		{"business rolls forward to monday", "2025-03-07", 1, WorkdayBusinessDays, "2025-03-10"},
		{"business rolls back to friday", "2025-03-10", -1, WorkdayBusinessDays, "2025-03-07"},
		{"business keeps a weekday target", "2025-03-07", 7, WorkdayBusinessDays, "2025-03-14"},
		{"business zero leaves date alone", "2025-03-08", 0, WorkdayBusinessDays, "2025-03-08"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShiftDate(day(tt.from), tt.delta, tt.rule)
			assert.Equal(t, tt.want, got.Format(DateLayout))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, day("2025-06-01"), d)

	d, err = ParseDate("2025-06-01T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, day("2025-06-01"), d)

	_, err = ParseDate("June 1st")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 7, DaysBetween(day("2025-03-01"), day("2025-03-08")))
	assert.Equal(t, -3, DaysBetween(day("2025-03-08"), day("2025-03-05")))
	assert.Equal(t, 0, DaysBetween(day("2025-03-08"), day("2025-03-08").Add(5*time.Hour)))
}
