// Package calendar implements day-granular date arithmetic for planning windows.
package calendar

import (
	"fmt"
	"time"
)

// KeyLayout is the ISO calendar-day layout used for keys and query parameters.
const KeyLayout = "2006-01-02"

// WindowKind selects the span of a visible planning window.
type WindowKind string

const (
	WindowWeek  WindowKind = "week"
	WindowMonth WindowKind = "month"
)

// Day drops the time of day, returning UTC midnight of t's calendar date in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Key formats t as its calendar-day key.
func Key(t time.Time) string {
	return Day(t).Format(KeyLayout)
}

// ParseKey parses a calendar-day key.
func ParseKey(raw string) (time.Time, error) {
	t, err := time.Parse(KeyLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", raw, err)
	}
	return t, nil
}

// Same reports whether a and b fall on the same calendar day.
func Same(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// Ordered returns the two days in ascending order.
func Ordered(a, b time.Time) (time.Time, time.Time) {
	a, b = Day(a), Day(b)
	if b.Before(a) {
		return b, a
	}
	return a, b
}

// Between reports whether day lies in the inclusive interval spanned by a and b.
func Between(day, a, b time.Time) bool {
	lo, hi := Ordered(a, b)
	d := Day(day)
	return !d.Before(lo) && !d.After(hi)
}

// Span lists every calendar day between a and b inclusive, in ascending order,
// whichever of the two comes first.
func Span(a, b time.Time) []time.Time {
	lo, hi := Ordered(a, b)
	days := make([]time.Time, 0, DaysBetween(lo, hi)+1)
	for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DaysBetween counts whole days from a to b (negative when b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// Window is a visible range of calendar days.
type Window struct {
	Kind  WindowKind `json:"kind"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
}

// WeekOf returns the seven-day window containing t starting on weekStart.
func WeekOf(t time.Time, weekStart time.Weekday) Window {
	d := Day(t)
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	start := d.AddDate(0, 0, -offset)
	return Window{Kind: WindowWeek, Start: start, End: start.AddDate(0, 0, 6)}
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Window {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return Window{Kind: WindowMonth, Start: start, End: start.AddDate(0, 1, -1)}
}

// NewWindow builds a window of the given kind around t.
func NewWindow(kind WindowKind, t time.Time, weekStart time.Weekday) (Window, error) {
	switch kind {
	case WindowWeek, "":
		return WeekOf(t, weekStart), nil
	case WindowMonth:
		return MonthOf(t), nil
	default:
		return Window{}, fmt.Errorf("unknown window kind %q", kind)
	}
}

// Shift moves the window by delta weeks or months.
func (w Window) Shift(delta int) Window {
	if w.Kind == WindowMonth {
		return MonthOf(w.Start.AddDate(0, delta, 0))
	}
	start := w.Start.AddDate(0, 0, 7*delta)
	return Window{Kind: WindowWeek, Start: start, End: start.AddDate(0, 0, 6)}
}

// Next returns the following window.
func (w Window) Next() Window { return w.Shift(1) }

// Prev returns the preceding window.
func (w Window) Prev() Window { return w.Shift(-1) }

// Days lists the days of the window.
func (w Window) Days() []time.Time {
	if w.Start.IsZero() || w.End.IsZero() {
		return nil
	}
	return Span(w.Start, w.End)
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.Start.IsZero() || w.End.IsZero() {
		return false
	}
	return Between(t, w.Start, w.End)
}

// IsZero reports whether the window has not been set.
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}
