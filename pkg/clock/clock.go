// Package clock abstracts "now" so streak and window computations can be
// anchored deterministically in tests.
package clock

import "time"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock { return systemClock{} }

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// Fixed returns a clock frozen at the given instant.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }
