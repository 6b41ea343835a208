// Package dateutil holds the calendar-day helpers shared by bookings,
// availability blocks, reports and contracts. All dates are normalized to
// midnight UTC of their own calendar day.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02"

// Day truncates t to midnight UTC of the calendar date t carries in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Parse accepts "2006-01-02" or an RFC3339 timestamp.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(Layout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Day(t), nil
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Within reports whether d lies in the closed day range [from, to].
func Within(d, from, to time.Time) bool {
	d, from, to = Day(d), Day(from), Day(to)
	return !d.Before(from) && !d.After(to)
}

// Nights counts the nights between check-in and check-out; never negative.
func Nights(checkIn, checkOut time.Time) int {
	n := int(Day(checkOut).Sub(Day(checkIn)).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, 0)
}

// Format renders a day as dd/mm/yyyy.
func Format(t time.Time) string {
	return t.Format("02/01/2006")
}
