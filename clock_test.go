package poncho

import (
	"math"
	"testing"
	"time"
)

func TestClockFirstTickZeroDelta(t *testing.T) {
	c := NewClock(time.Second)
	c.Tick(5 * time.Second)
	if c.Delta() != 0 {
		t.Errorf("first delta = %v, want 0", c.Delta())
	}
	if c.Time() != 5*time.Second {
		t.Errorf("Time = %v, want 5s", c.Time())
	}
}

func TestClockDelta(t *testing.T) {
	c := NewClock(time.Second)
	c.Tick(0)
	c.Tick(250 * time.Millisecond)
	if c.Delta() != 250*time.Millisecond {
		t.Errorf("Delta = %v, want 250ms", c.Delta())
	}
	if c.DeltaSeconds() != 0.25 {
		t.Errorf("DeltaSeconds = %v, want 0.25", c.DeltaSeconds())
	}
}

func TestClockBackwardsTime(t *testing.T) {
	c := NewClock(time.Second)
	c.Tick(time.Second)
	c.Tick(500 * time.Millisecond)
	if c.Delta() != 0 {
		t.Errorf("Delta = %v, want 0 for time going backwards", c.Delta())
	}
	if c.Time() != time.Second {
		t.Errorf("Time = %v, want it held at 1s", c.Time())
	}
}

func TestClockFPS(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		step     time.Duration
		ticks    int
		want     float64
	}{
		{"60 fps over 1s", time.Second, time.Second / 60, 62, 60},
		{"half second window", 500 * time.Millisecond, 20 * time.Millisecond, 26, 50},
		{"zero interval means 1s", 0, 100 * time.Millisecond, 11, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(tt.interval)
			for i := 0; i < tt.ticks; i++ {
				c.Tick(time.Duration(i) * tt.step)
			}
			if math.Abs(c.FPS()-tt.want) > 0.5 {
				t.Errorf("FPS = %v, want ~%v", c.FPS(), tt.want)
			}
		})
	}
}

func TestClockFPSBeforeWindow(t *testing.T) {
	c := NewClock(time.Second)
	c.Tick(0)
	c.Tick(100 * time.Millisecond)
	if c.FPS() != 0 {
		t.Errorf("FPS = %v before the first window completes, want 0", c.FPS())
	}
}
