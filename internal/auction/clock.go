package auction

import "time"

// Clock abstracts wall time so lifecycle transitions are testable. The
// aggregate itself never reads the clock; callers pass timestamps in.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
