package poncho

import "time"

const defaultFPSInterval = time.Second

// Clock tracks frame time. It is advanced with Tick once per update and keeps
// a frames-per-second count sampled over Interval.
type Clock struct {
	// Interval is the FPS sampling window. Non-positive values mean one second.
	Interval time.Duration

	started bool
	now     time.Duration
	delta   time.Duration

	frames      int
	windowStart time.Duration
	fps         float64
}

// NewClock returns a clock sampling FPS over interval.
func NewClock(interval time.Duration) Clock {
	return Clock{Interval: interval}
}

// Tick advances the clock to now, a monotonic time since some fixed origin.
// The first tick yields a zero delta. A now earlier than the previous tick is
// treated as no time passing.
func (c *Clock) Tick(now time.Duration) {
	if !c.started {
		c.started = true
		c.now = now
		c.windowStart = now
		c.delta = 0
		return
	}
	c.delta = now - c.now
	if c.delta < 0 {
		c.delta = 0
		now = c.now
	}
	c.now = now

	c.frames++
	interval := c.Interval
	if interval <= 0 {
		interval = defaultFPSInterval
	}
	if elapsed := now - c.windowStart; elapsed >= interval {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.windowStart = now
	}
}

// Time returns the time of the last tick.
func (c *Clock) Time() time.Duration { return c.now }

// Delta returns the time elapsed between the last two ticks.
func (c *Clock) Delta() time.Duration { return c.delta }

// DeltaSeconds returns Delta in seconds.
func (c *Clock) DeltaSeconds() float64 { return c.delta.Seconds() }

// FPS returns the frame rate measured over the last completed sampling window.
func (c *Clock) FPS() float64 { return c.fps }
