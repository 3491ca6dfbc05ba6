package clock

import "time"

// Clock stamps board creation and update times. Swapped for a fixed clock in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// New creates a SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current UTC time
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}
