package core

import "time"

// SetClock replaces the note clock and returns a func restoring it.
func SetClock(f func() time.Time) func() {
	prev := now
	now = f
	return func() { now = prev }
}
