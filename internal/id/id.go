package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
)

// New returns a fresh entity ID like "expense_3f1c...".
func New(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "_" + uuid.NewString()
}

// MonthlyRecordID returns an ID like "monthly-record-2025-06-1718442000000".
func MonthlyRecordID(month string, now time.Time) string {
	return fmt.Sprintf("monthly-record-%s-%d", month, now.UnixMilli())
}

// FormatMonth returns a month key like "2025-06".
func FormatMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthOf returns the UTC month key of t.
func MonthOf(t time.Time) string {
	return t.UTC().Format(monthLayout)
}

// DayOf returns the UTC calendar day of t as "YYYY-MM-DD".
func DayOf(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// ParseMonth parses "2025-06" into year and month.
func ParseMonth(key string) (year, month int, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid month key format: %q", key)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in month key %q: %w", key, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in month key %q: %w", key, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month out of range in month key %q", key)
	}

	return year, month, nil
}

// ParseDay parses a date string that is either "YYYY-MM-DD" or an RFC 3339
// timestamp.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// WeekStart returns the Monday of the week containing t, as "YYYY-MM-DD".
func WeekStart(t time.Time) string {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset).Format(dayLayout)
}
