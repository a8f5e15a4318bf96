package domain

import "time"

// DayLayout is the format of a local calendar day key
const DayLayout = "2006-01-02"

// Calendar resolves "today" in the configured timezone. Daily limits and
// statistics are keyed by the local day, so the quota resets at local midnight.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar creates a calendar for loc using the wall clock
func NewCalendar(loc *time.Location) *Calendar {
	return NewCalendarWithClock(loc, time.Now)
}

// NewCalendarWithClock creates a calendar with a custom clock
func NewCalendarWithClock(loc *time.Location, now func() time.Time) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc, now: now}
}

// Now returns the current instant in UTC
func (c *Calendar) Now() time.Time {
	return c.now().UTC()
}

// Today returns the local day key for the current instant
func (c *Calendar) Today() string {
	return c.DayKey(c.now())
}

// DayKey returns the local day key of t
func (c *Calendar) DayKey(t time.Time) string {
	return t.In(c.loc).Format(DayLayout)
}

// DaysAgo returns the local day key n days before today
func (c *Calendar) DaysAgo(n int) string {
	return c.DayKey(c.now().In(c.loc).AddDate(0, 0, -n))
}
