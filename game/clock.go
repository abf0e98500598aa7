package game

import "time"

// Clock is the single source of elapsed-time math for a room. Injecting it
// lets tests drive the simulation deterministically instead of sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
