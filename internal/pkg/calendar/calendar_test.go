package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalendar(t *testing.T) *Calendar {
	t.Helper()
	c, err := New("Asia/Karachi")
	require.NoError(t, err)
	return c
}

func TestNewRejectsUnknownZone(t *testing.T) {
	_, err := New("Not/AZone")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	c := newTestCalendar(t)

	// 2025-03-09 23:30 UTC is already 2025-03-10 04:30 in Karachi (+05:00).
	in := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	got := c.Normalize(in)

	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 10, got.Day())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, "Asia/Karachi", got.Location().String())
}

func TestSaturdayOrdinal(t *testing.T) {
	c := newTestCalendar(t)

	tests := []struct {
		day      int
		expected int
	}{
		{1, 1},
		{7, 1},
		{8, 2},
		{14, 2},
		{15, 3},
		{21, 3},
		{22, 4},
		{28, 4},
		{29, 5},
		{31, 5},
	}

	for _, tt := range tests {
		d := time.Date(2025, 3, tt.day, 0, 0, 0, 0, c.Location())
		assert.Equal(t, tt.expected, c.SaturdayOrdinal(d), "day %d", tt.day)
	}
}

func TestIsNonWorkingDay(t *testing.T) {
	c := newTestCalendar(t)

	tests := []struct {
		name     string
		date     time.Time
		expected bool
	}{
		{"sunday", time.Date(2025, 3, 2, 0, 0, 0, 0, c.Location()), true},
		{"monday", time.Date(2025, 3, 3, 0, 0, 0, 0, c.Location()), false},
		{"first saturday", time.Date(2025, 3, 1, 0, 0, 0, 0, c.Location()), false},
		{"second saturday", time.Date(2025, 3, 8, 0, 0, 0, 0, c.Location()), true},
		{"third saturday", time.Date(2025, 3, 15, 0, 0, 0, 0, c.Location()), false},
		{"fourth saturday", time.Date(2025, 3, 22, 0, 0, 0, 0, c.Location()), true},
		{"fifth saturday", time.Date(2025, 3, 29, 0, 0, 0, 0, c.Location()), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.IsNonWorkingDay(tt.date))
		})
	}
}

func TestDateRange(t *testing.T) {
	c := newTestCalendar(t)

	start := time.Date(2025, 3, 10, 14, 30, 0, 0, c.Location())
	end := time.Date(2025, 3, 13, 1, 0, 0, 0, c.Location())

	dates := c.DateRange(start, end)
	require.Len(t, dates, 4)
	assert.Equal(t, "2025-03-10", c.DateKey(dates[0]))
	assert.Equal(t, "2025-03-13", c.DateKey(dates[3]))
	for _, d := range dates {
		assert.Equal(t, 0, d.Hour())
	}
}

func TestDateRangeEndBeforeStart(t *testing.T) {
	c := newTestCalendar(t)

	start := time.Date(2025, 3, 13, 0, 0, 0, 0, c.Location())
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, c.Location())

	assert.Empty(t, c.DateRange(start, end))
}

func TestSameDate(t *testing.T) {
	c := newTestCalendar(t)

	a := time.Date(2025, 3, 10, 1, 0, 0, 0, c.Location())
	b := time.Date(2025, 3, 10, 23, 0, 0, 0, c.Location())
	assert.True(t, c.SameDate(a, b))

	// 2025-03-10 20:30 UTC is 2025-03-11 in Karachi.
	utc := time.Date(2025, 3, 10, 20, 30, 0, 0, time.UTC)
	assert.False(t, c.SameDate(a, utc))
}
