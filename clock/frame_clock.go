package clock

import "time"

// DefaultInterval is one frame at 60 Hz.
const DefaultInterval = 16 * time.Millisecond

// FrameClock schedules frame ticks only while armed. C returns a nil channel
// when disarmed so a select over it simply never fires.
//
// A FrameClock belongs to the goroutine running the frame loop and is not
// safe for concurrent use.
type FrameClock struct {
	interval time.Duration
	ticker   *time.Ticker
}

func NewFrameClock(interval time.Duration) *FrameClock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &FrameClock{interval: interval}
}

func (c *FrameClock) Interval() time.Duration {
	return c.interval
}

func (c *FrameClock) Arm() {
	if c.ticker != nil {
		return
	}
	c.ticker = time.NewTicker(c.interval)
}

// Disarm stops the ticker. Pending ticks are dropped with it.
func (c *FrameClock) Disarm() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.ticker = nil
}

func (c *FrameClock) Running() bool {
	return c.ticker != nil
}

// Sync arms the clock when active and disarms it otherwise.
func (c *FrameClock) Sync(active bool) {
	if active {
		c.Arm()
	} else {
		c.Disarm()
	}
}

func (c *FrameClock) C() <-chan time.Time {
	if c.ticker == nil {
		return nil
	}
	return c.ticker.C
}
