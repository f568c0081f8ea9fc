// Package clock supplies the current time to code that must be testable
// against fixed instants.
package clock

import "time"

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock and reports it in Location (time.Local when nil).
type System struct {
	Location *time.Location
}

// Now returns the current time in the clock's location.
func (c System) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// Func adapts a plain function to the Clock interface.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time { return f() }
