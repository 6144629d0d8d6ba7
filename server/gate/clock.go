package gate

import "time"

// Clock produces monotonic timestamps, measured as the time elapsed since an
// arbitrary fixed point. Only differences between timestamps are meaningful.
type Clock interface {
	Now() time.Duration
}

// MonotonicClock returns a Clock backed by the monotonic clock reading of
// time.Now, starting at 0 when MonotonicClock is called.
func MonotonicClock() Clock {
	return monotonicClock{start: time.Now()}
}

type monotonicClock struct {
	start time.Time
}

// Now ...
func (c monotonicClock) Now() time.Duration {
	return time.Since(c.start)
}
