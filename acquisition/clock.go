package acquisition

import "time"

// Clock timestamps acquisition records. Implementations must be monotonic
// between Reset calls.
type Clock interface {
	// Reset restarts the clock at zero.
	Reset()

	// GetTime returns seconds elapsed since the last Reset.
	GetTime() float64
}

// monotonicClock is the default clock, backed by the runtime monotonic clock.
type monotonicClock struct {
	resetAt time.Time
}

// NewClock creates the default monotonic clock, already reset.
func NewClock() Clock {
	return &monotonicClock{resetAt: time.Now()}
}

func (c *monotonicClock) Reset() {
	c.resetAt = time.Now()
}

func (c *monotonicClock) GetTime() float64 {
	return time.Since(c.resetAt).Seconds()
}
