// Package timeutil holds the day and clock arithmetic shared by the
// template expander and the assignment engine. Everything here is pure.
package timeutil

import (
	"fmt"
	"time"

	"github.com/vaktplan-dev/roster-manager/backend/internal/domain"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// WeekdayOf maps time.Weekday (Sunday=0) onto the 0=Mon..6=Sun numbering
// used by template rows and preferences.
func WeekdayOf(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock accepts "15:04:05" or "15:04" and returns the offset from
// midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		t, err = time.Parse("15:04", s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM or HH:MM:SS", s)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// ParseDateRange parses an inclusive date range and rejects inverted ones.
func ParseDateRange(start, end string) (time.Time, time.Time, error) {
	s, err := ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if s.After(e) {
		return time.Time{}, time.Time{}, &domain.InvalidRangeError{Start: start, End: end}
	}
	return s, e, nil
}

// DaysInRange returns every day of the inclusive range [start, end].
func DaysInRange(start, end time.Time) []time.Time {
	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Half-open on purpose: a shift ending exactly when another starts does not
// overlap it.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// At anchors a clock offset on a day.
func At(day time.Time, clock time.Duration) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).Add(clock)
}

// WeekBounds returns the Monday 00:00 and the following Monday 00:00 of the
// ISO week containing d, as a half-open window.
func WeekBounds(d time.Time) (time.Time, time.Time) {
	monday := d.AddDate(0, 0, -WeekdayOf(d))
	start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 7)
}
