package game

import (
	"sync"
	"time"
)

// roundClock is a cancelable countdown for one round. Remaining time is
// recomputed from the wall clock on every tick rather than decremented,
// so it stays correct under delivery jitter. Stop is idempotent and no
// callback fires after it returns the clock stopped.
type roundClock struct {
	startedAt time.Time
	duration  int // whole tick intervals, seconds in production
	interval  time.Duration

	onTick   func(remaining int)
	onExpire func()

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

func newRoundClock(duration int, interval time.Duration, onTick func(remaining int), onExpire func()) *roundClock {
	return &roundClock{
		startedAt: time.Now(),
		duration:  duration,
		interval:  interval,
		onTick:    onTick,
		onExpire:  onExpire,
		done:      make(chan struct{}),
	}
}

func (c *roundClock) start() {
	go c.run()
}

func (c *roundClock) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			remaining := c.remainingAt(now)
			if remaining <= 0 {
				if c.markStopped() && c.onExpire != nil {
					c.onExpire()
				}
				return
			}
			if c.Stopped() {
				return
			}
			if c.onTick != nil {
				c.onTick(remaining)
			}
		}
	}
}

// Remaining reports the whole intervals left, floored at zero.
func (c *roundClock) Remaining() int {
	return c.remainingAt(time.Now())
}

func (c *roundClock) remainingAt(now time.Time) int {
	elapsed := int(now.Sub(c.startedAt) / c.interval)
	remaining := c.duration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// Stop cancels the clock. Stopping an already-stopped clock is a no-op.
func (c *roundClock) Stop() {
	if c.markStopped() {
		close(c.done)
	}
}

func (c *roundClock) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// markStopped flips the stopped flag, reporting whether this caller won.
func (c *roundClock) markStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return false
	}
	c.stopped = true
	return true
}
