package launch

import (
	"math"
	"strings"
	"time"

	"github.com/storelaunch/backend/internal/domain/shared"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight UTC of its calendar day
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOnly(t), nil
	}
	return time.Time{}, shared.InvalidInput("Invalid date: " + s)
}

// DaysBetween returns the whole number of days from a to b
func DaysBetween(a, b time.Time) int {
	return int(math.Round(DateOnly(b).Sub(DateOnly(a)).Hours() / 24))
}

// AddDays moves t by n days according to rule. Business days skip
// Saturday and Sunday.
func AddDays(t time.Time, n int, rule WorkdayRule) time.Time {
	if rule != WorkdayBusinessDays || n == 0 {
		return t.AddDate(0, 0, n)
	}
	step := 1
	if n < 0 {
		step = -1
		n = -n
	}
	for n > 0 {
		t = t.AddDate(0, 0, step)
		if isBusinessDay(t) {
			n--
		}
	}
	return t
}

// ShiftDate moves t by a calendar delta. Under the business-day rule a
// result on a weekend rolls on to the next weekday in the direction of
// the move.
func ShiftDate(t time.Time, delta int, rule WorkdayRule) time.Time {
	t = t.AddDate(0, 0, delta)
	if rule != WorkdayBusinessDays || delta == 0 {
		return t
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	for !isBusinessDay(t) {
		t = t.AddDate(0, 0, step)
	}
	return t
}

func isBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
