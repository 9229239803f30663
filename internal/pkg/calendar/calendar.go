package calendar

import (
	"time"
)

// DefaultTimeZone is the zone all attendance dates are anchored to.
const DefaultTimeZone = "Asia/Karachi"

// Calendar answers working-day questions for a single fixed time zone.
// Every component shares one instance; the weekend rule must never be
// reimplemented elsewhere.
type Calendar struct {
	loc *time.Location
}

func New(zoneName string) (*Calendar, error) {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, err
	}
	return &Calendar{loc: loc}, nil
}

// MustNew is New for fixtures and wiring where the zone name is a constant.
func MustNew(zoneName string) *Calendar {
	c, err := New(zoneName)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Normalize truncates t to local midnight in the calendar's zone. All
// persisted dates pass through here before storage or comparison.
func (c *Calendar) Normalize(t time.Time) time.Time {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}

// Today returns the current date at local midnight.
func (c *Calendar) Today() time.Time {
	return c.Normalize(time.Now())
}

// SaturdayOrdinal returns which Saturday of the month d is (1-based),
// computed as ceil(dayOfMonth / 7). Valid for any weekday.
func (c *Calendar) SaturdayOrdinal(d time.Time) int {
	day := d.In(c.loc).Day()
	return (day + 6) / 7
}

// IsNonWorkingDay reports whether d is a weekend day: every Sunday, and
// Saturdays whose ordinal within the month is even.
func (c *Calendar) IsNonWorkingDay(d time.Time) bool {
	local := d.In(c.loc)
	switch local.Weekday() {
	case time.Sunday:
		return true
	case time.Saturday:
		return c.SaturdayOrdinal(local)%2 == 0
	default:
		return false
	}
}

// DateRange expands [start, end] into normalized calendar days, inclusive.
// Returns nil when end precedes start.
func (c *Calendar) DateRange(start, end time.Time) []time.Time {
	first := c.Normalize(start)
	last := c.Normalize(end)

	var dates []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// DateKey formats a date as YYYY-MM-DD in the calendar's zone, for use as a
// set-membership key.
func (c *Calendar) DateKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}

// SameDate reports whether a and b fall on the same calendar day.
func (c *Calendar) SameDate(a, b time.Time) bool {
	return c.DateKey(a) == c.DateKey(b)
}
