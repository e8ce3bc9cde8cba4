// Package clock supplies the current instant and calendar-day boundaries.
// Everything that gates on "today" (the daily-post gate, the streak engine)
// takes a Clock so tests can pin the day boundary instead of racing the
// wall clock.
package clock

import "time"

type Clock interface {
	Now() time.Time
	// StartOfDay returns local midnight of the calendar day containing t.
	// The day boundary is a calendar-day reset, not a rolling 24h window.
	StartOfDay(t time.Time) time.Time
}

// LocationClock is the production Clock. It resolves day boundaries in a
// fixed IANA location; changing the configured location shifts what counts
// as "today".
type LocationClock struct {
	loc *time.Location
}

func New(loc *time.Location) *LocationClock {
	if loc == nil {
		loc = time.Local
	}
	return &LocationClock{loc: loc}
}

func (c *LocationClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *LocationClock) StartOfDay(t time.Time) time.Time {
	year, month, day := t.In(c.loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, c.loc)
}

// Fixed is a Clock pinned to one instant, for tests.
type Fixed struct {
	Current time.Time
	Loc     *time.Location
}

func NewFixed(current time.Time) *Fixed {
	return &Fixed{Current: current, Loc: current.Location()}
}

func (c *Fixed) Now() time.Time {
	return c.Current.In(c.loc())
}

func (c *Fixed) StartOfDay(t time.Time) time.Time {
	year, month, day := t.In(c.loc()).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, c.loc())
}

// Advance moves the pinned instant forward, simulating the passage of time
// between requests.
func (c *Fixed) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}

func (c *Fixed) loc() *time.Location {
	if c.Loc == nil {
		return time.UTC
	}
	return c.Loc
}
