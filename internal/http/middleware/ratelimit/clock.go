package ratelimit

import "time"

// Clock supplies the current time so limiter windows can be
// driven by a fake in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
