package main

import (
	"math/rand"
	"time"
)

const (
	FPS           = 60
	FrameDuration = time.Second / FPS
)

// Clock supplies the current time to cooldowns
type Clock interface {
	Now() time.Time
}

// FrameClock is a simulated clock that only moves when a frame is stepped.
// Cooldowns read from it are therefore counted in frames, not wall time.
type FrameClock struct {
	frames int64
	extra  time.Duration
}

// NewFrameClock creates a clock at frame zero
func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// Now returns the simulated time
func (c *FrameClock) Now() time.Time {
	return time.Unix(0, 0).Add(time.Duration(c.frames)*time.Second/FPS + c.extra)
}

// Advance moves the clock forward by one frame
func (c *FrameClock) Advance() {
	c.frames++
}

// AdvanceBy moves the clock forward by an arbitrary duration
func (c *FrameClock) AdvanceBy(d time.Duration) {
	c.extra += d
}

// Frames returns the number of frames stepped so far
func (c *FrameClock) Frames() int64 {
	return c.frames
}

// Cooldown gates an action until a duration has elapsed since the last Reset
type Cooldown struct {
	clock    Clock
	rng      *rand.Rand
	base     time.Duration
	variance time.Duration
	duration time.Duration
	started  time.Time
	armed    bool
}

// NewCooldown creates a fixed-length cooldown
func NewCooldown(clock Clock, d time.Duration) *Cooldown {
	return &Cooldown{
		clock:    clock,
		base:     d,
		duration: d,
	}
}

// NewVariableCooldown creates a cooldown whose length is redrawn from
// [d-variance, d+variance] on every Reset.
func NewVariableCooldown(clock Clock, rng *rand.Rand, d, variance time.Duration) *Cooldown {
	return &Cooldown{
		clock:    clock,
		rng:      rng,
		base:     d,
		variance: variance,
		duration: d,
	}
}

// Reset restarts the countdown from now
func (c *Cooldown) Reset() {
	c.started = c.clock.Now()
	c.armed = true
	if c.variance > 0 && c.rng != nil {
		c.duration = c.base - c.variance + time.Duration(c.rng.Int63n(int64(2*c.variance)+1))
	}
}

// Finished reports whether the cooldown has elapsed. A cooldown that was
// never reset counts as finished so the first action happens immediately.
func (c *Cooldown) Finished() bool {
	if !c.armed {
		return true
	}
	return c.clock.Now().Sub(c.started) >= c.duration
}

// Remaining returns the time left before Finished turns true
func (c *Cooldown) Remaining() time.Duration {
	if !c.armed {
		return 0
	}
	left := c.duration - c.clock.Now().Sub(c.started)
	if left < 0 {
		return 0
	}
	return left
}

// Duration returns the length drawn by the last Reset
func (c *Cooldown) Duration() time.Duration {
	return c.duration
}
