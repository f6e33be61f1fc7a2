package frames

import (
	"sync/atomic"
	"time"
)

// DefaultFrameRate is the simulation's nominal frames per second.
const DefaultFrameRate = 60

// Clock reports a frame index derived from time elapsed since its creation.
// It uses the monotonic reading of time.Now(), so wall clock jumps do not move
// the index backwards.
type Clock struct {
	start    time.Time
	perFrame time.Duration
	since    func(time.Time) time.Duration
}

// NewClock creates a Clock ticking at rate frames per second. A non-positive
// rate falls back to DefaultFrameRate.
func NewClock(rate int) *Clock {
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return &Clock{
		start:    time.Now(),
		perFrame: time.Second / time.Duration(rate),
		since:    time.Since,
	}
}

// CurrentFrame returns the number of whole frames elapsed since creation.
// The index wraps like the host's 32-bit counter.
func (c *Clock) CurrentFrame() uint32 {
	elapsed := c.since(c.start)
	if elapsed < 0 {
		return 0
	}
	return uint32(elapsed / c.perFrame)
}

// FrameDuration returns the length of one frame.
func (c *Clock) FrameDuration() time.Duration {
	return c.perFrame
}

// Counter is a frame index advanced explicitly by its owner.
// It is safe for concurrent use.
type Counter struct {
	frame atomic.Uint32
}

// CurrentFrame returns the current frame index.
func (c *Counter) CurrentFrame() uint32 {
	return c.frame.Load()
}

// Advance moves the index forward by n frames and returns the new value.
func (c *Counter) Advance(n uint32) uint32 {
	return c.frame.Add(n)
}

// Set jumps the index to frame.
func (c *Counter) Set(frame uint32) {
	c.frame.Store(frame)
}
