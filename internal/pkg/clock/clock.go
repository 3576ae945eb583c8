// Package clock provides the time source of the game and calendar-day helpers.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time and the location whose calendar days
// delimit a game.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Today returns the game date of c: midnight UTC of the current calendar day
// in the clock's location.
func Today(c Clock) time.Time {
	return Day(c.Now().In(c.Location()))
}

// Day normalises t to midnight UTC of t's calendar date in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RealClock implements Clock using the system clock.
type RealClock struct {
	loc *time.Location
}

// New creates a RealClock for the given location. A nil location means UTC.
func New(loc *time.Location) *RealClock {
	if loc == nil {
		loc = time.UTC
	}
	return &RealClock{loc: loc}
}

// Now returns the current time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Location returns the game location.
func (c *RealClock) Location() *time.Location {
	return c.loc
}

// MockClock is a settable Clock for tests. It is safe for concurrent use.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
}

var _ Clock = (*MockClock)(nil)

// NewMock creates a MockClock set to t. Its location is t's location.
func NewMock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mocked current time.
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Location returns the location of the mocked time.
func (c *MockClock) Location() *time.Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Location()
}

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set sets the clock to t.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}
