package session

import (
	"sync"
	"sync/atomic"
	"time"
)

// Countdown is a cancellable per-question timer. It ticks down once per
// second in its own goroutine; when the remaining time reaches zero the
// Expired channel is closed. Stop cancels the countdown and is safe to call
// more than once; after Stop the countdown performs no further mutation.
type Countdown struct {
	remaining int64
	expired   chan struct{}
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewCountdown starts a countdown of the given number of seconds.
func NewCountdown(seconds int) *Countdown {
	c := &Countdown{
		remaining: int64(seconds),
		expired:   make(chan struct{}),
		stop:      make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *Countdown) run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if atomic.AddInt64(&c.remaining, -1) <= 0 {
				close(c.expired)
				return
			}
		}
	}
}

// Expired is closed when the countdown reaches zero before being stopped.
func (c *Countdown) Expired() <-chan struct{} {
	return c.expired
}

// Remaining reports the seconds left, never negative.
func (c *Countdown) Remaining() int {
	r := atomic.LoadInt64(&c.remaining)
	if r < 0 {
		return 0
	}
	return int(r)
}

// Stop cancels the countdown.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}
