package upcoming

import "time"

// Clock abstracts time.Now so window computations are deterministic in
// tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock with the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
