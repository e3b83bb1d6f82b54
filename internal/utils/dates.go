package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd string into a UTC midnight time.Time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd: %w", dateStr, err)
	}
	return t, nil
}

// FormatDate renders a time as a yyyy-mm-dd string.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// BillableDays returns the inclusive day count between two dates: both
// endpoints are billable, so a same-day rental is 1 day and day N to day N+1
// is 2 days. The count is symmetric in its arguments.
func BillableDays(from, to time.Time) int32 {
	diff := to.Sub(from)
	if diff < 0 {
		diff = -diff
	}
	days := int32((diff + 24*time.Hour - 1) / (24 * time.Hour))
	return days + 1
}

// BillableDaysStr is BillableDays over yyyy-mm-dd strings.
func BillableDaysStr(dateFrom, dateTo string) (int32, error) {
	from, err := ParseDate(dateFrom)
	if err != nil {
		return 0, err
	}
	to, err := ParseDate(dateTo)
	if err != nil {
		return 0, err
	}
	return BillableDays(from, to), nil
}

// Overlaps reports whether two closed date intervals share at least one
// calendar day: aFrom <= bTo && bFrom <= aTo.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !aFrom.After(bTo) && !bFrom.After(aTo)
}
