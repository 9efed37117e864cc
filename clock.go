package mapsim

import "time"

// Clock supplies monotonic timestamps in milliseconds to the timing code.
type Clock interface {
	Now() int64
}

// SystemClock reads the monotonic wall clock relative to its creation time.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a SystemClock whose Now starts at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns milliseconds elapsed since the clock was created.
func (c *SystemClock) Now() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock is a Clock that only moves when told to. Useful for tests and
// for hosts that drive the scene at a fixed tick rate.
type ManualClock struct {
	ms int64
}

// Now returns the current synthetic time.
func (c *ManualClock) Now() int64 {
	return c.ms
}

// Advance moves the clock forward by ms milliseconds. Negative values are
// ignored so the clock stays monotonic.
func (c *ManualClock) Advance(ms int64) {
	if ms > 0 {
		c.ms += ms
	}
}

// Set jumps the clock to ms if that is not earlier than the current time.
func (c *ManualClock) Set(ms int64) {
	if ms > c.ms {
		c.ms = ms
	}
}
