// Package clock provides a controllable time source for tests.
package clock

import (
	"sync"
	"time"
)

// FakeClock returns a fixed time until advanced. With a non-zero step every
// call to Now moves the clock forward by step after reading it.
type FakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

// NewTickingClock returns a clock that advances by step on every read.
func NewTickingClock(t time.Time, step time.Duration) *FakeClock {
	return &FakeClock{now: t, step: step}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
