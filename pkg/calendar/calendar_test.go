package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ParseKey(raw)
	require.NoError(t, err)
	return d
}

func TestDayDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2024, 3, 5, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-03-05", Key(in))
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Day(in))
	assert.True(t, Same(in, time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC)))
}

func TestSpanIsDirectionIndependent(t *testing.T) {
	forward := Span(day(t, "2024-03-01"), day(t, "2024-03-05"))
	backward := Span(day(t, "2024-03-05"), day(t, "2024-03-01"))
	require.Len(t, forward, 5)
	assert.Equal(t, forward, backward)
	assert.Equal(t, "2024-03-01", Key(forward[0]))
	assert.Equal(t, "2024-03-05", Key(forward[4]))
}

func TestSpanSingleDayAndMonthBoundary(t *testing.T) {
	assert.Len(t, Span(day(t, "2024-03-05"), day(t, "2024-03-05")), 1)
	across := Span(day(t, "2024-02-28"), day(t, "2024-03-01"))
	require.Len(t, across, 3)
	assert.Equal(t, "2024-02-29", Key(across[1]))
}

func TestBetween(t *testing.T) {
	a, b := day(t, "2024-03-05"), day(t, "2024-03-01")
	assert.True(t, Between(day(t, "2024-03-01"), a, b))
	assert.True(t, Between(day(t, "2024-03-03"), a, b))
	assert.True(t, Between(day(t, "2024-03-05"), a, b))
	assert.False(t, Between(day(t, "2024-03-06"), a, b))
}

func TestWeekOf(t *testing.T) {
	w := WeekOf(day(t, "2024-03-07"), time.Monday)
	assert.Equal(t, "2024-03-04", Key(w.Start))
	assert.Equal(t, "2024-03-10", Key(w.End))
	assert.Len(t, w.Days(), 7)

	sunday := WeekOf(day(t, "2024-03-10"), time.Monday)
	assert.Equal(t, "2024-03-04", Key(sunday.Start))

	sundayStart := WeekOf(day(t, "2024-03-07"), time.Sunday)
	assert.Equal(t, "2024-03-03", Key(sundayStart.Start))
}

func TestMonthOfAndShift(t *testing.T) {
	m := MonthOf(day(t, "2024-02-14"))
	assert.Equal(t, "2024-02-01", Key(m.Start))
	assert.Equal(t, "2024-02-29", Key(m.End))

	next := m.Next()
	assert.Equal(t, "2024-03-01", Key(next.Start))
	assert.Equal(t, "2024-03-31", Key(next.End))
	assert.Equal(t, "2024-01-01", Key(m.Prev().Start))

	w := WeekOf(day(t, "2024-03-07"), time.Monday).Next()
	assert.Equal(t, "2024-03-11", Key(w.Start))
	assert.True(t, w.Contains(day(t, "2024-03-17")))
	assert.False(t, w.Contains(day(t, "2024-03-18")))
}

func TestNewWindowRejectsUnknownKind(t *testing.T) {
	_, err := NewWindow("year", day(t, "2024-03-07"), time.Monday)
	assert.Error(t, err)

	w, err := NewWindow("", day(t, "2024-03-07"), time.Monday)
	require.NoError(t, err)
	assert.Equal(t, WindowWeek, w.Kind)
}
