// Package daily maps wall-clock time onto the advent calendar and records
// finished games.
package daily

import "time"

// Window is the active calendar period: days 1..Days of Month, inclusive.
type Window struct {
	Month time.Month
	Days  int
}

// DefaultWindow is December 1st through 25th.
var DefaultWindow = Window{Month: time.December, Days: 25}

// Day returns the 1-based calendar index for t, or 0 outside the window.
// Uses t's own location, so pass local time for "local calendar day".
func (w Window) Day(t time.Time) int {
	if t.Month() != w.Month {
		return 0
	}
	if d := t.Day(); d >= 1 && d <= w.Days {
		return d
	}
	return 0
}

// Calendar resolves "today" from an injectable clock.
type Calendar struct {
	Window Window
	Clock  func() time.Time
	// Override, when non-zero, pins Today to a fixed day (testing affordance).
	Override int
}

// Today returns the current day index, or 0 outside the window.
func (c Calendar) Today() int {
	if c.Override != 0 {
		return c.Override
	}
	clock := c.Clock
	if clock == nil {
		clock = time.Now
	}
	return c.Window.Day(clock())
}

// Active reports whether today falls inside the window.
func (c Calendar) Active() bool { return c.Today() != 0 }
