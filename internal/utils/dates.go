package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the storage and wire format of every booking date.
	DateLayout = "2006-01-02"
	// TimestampLayout is used for created_on columns.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Interval is a closed range of calendar days: both Start and End are booked.
type Interval struct {
	Start time.Time
	End   time.Time
}

// ParseDate converts a yyyy-mm-dd string into a calendar day at UTC midnight.
func ParseDate(dateStr string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd: %w", dateStr, err)
	}
	return d, nil
}

// ParseInterval parses both bounds without reordering them.
func ParseInterval(startDate, endDate string) (Interval, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// Normalize swaps the bounds of a reversed interval.
func (i Interval) Normalize() Interval {
	if i.End.Before(i.Start) {
		return Interval{Start: i.End, End: i.Start}
	}
	return i
}

// Overlaps reports whether the two intervals share at least one day.
func (i Interval) Overlaps(o Interval) bool {
	return !(i.End.Before(o.Start) || i.Start.After(o.End))
}

// Contains reports whether day falls within the interval, bounds included.
func (i Interval) Contains(day time.Time) bool {
	d := Day(day)
	return !d.Before(i.Start) && !d.After(i.End)
}

// Day truncates t to its calendar date, expressed at UTC midnight so it
// compares with dates produced by ParseDate.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders the calendar date of t as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
