package hud

import "time"

// Clock abstracts the monotonic time source so sampling windows can be
// driven deterministically in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
