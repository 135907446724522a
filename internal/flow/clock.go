package flow

import "time"

// Clock abstracts time so pacing and generation delays can be collapsed
// to zero in tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// ImmediateClock never waits. Tests use it to run generation delays
// instantly and deterministically.
type ImmediateClock struct{}

func (ImmediateClock) Now() time.Time { return time.Unix(0, 0).UTC() }

func (ImmediateClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Unix(0, 0).UTC()

	return ch
}
