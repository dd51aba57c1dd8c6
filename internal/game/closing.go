package game

import (
	"sync"
	"time"
)

// ClosingTimers fires a callback when a game's availability window ends.
type ClosingTimers struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	onClose func(gameID string)
	now     func() time.Time
}

// NewClosingTimers creates a new ClosingTimers. onClose runs on its own
// goroutine once per scheduled game.
func NewClosingTimers(onClose func(gameID string)) *ClosingTimers {
	return &ClosingTimers{
		timers:  make(map[string]*time.Timer),
		onClose: onClose,
		now:     time.Now,
	}
}

// Schedule (re)arms the timer for gameID. A close time already in the past
// fires immediately.
func (c *ClosingTimers) Schedule(gameID string, closesAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[gameID]; ok {
		t.Stop()
	}
	wait := closesAt.Sub(c.now())
	if wait < 0 {
		wait = 0
	}

	var timer *time.Timer
	timer = time.AfterFunc(wait, func() {
		c.mu.Lock()
		if c.timers[gameID] != timer {
			c.mu.Unlock()
			return
		}
		delete(c.timers, gameID)
		c.mu.Unlock()

		c.onClose(gameID)
	})
	c.timers[gameID] = timer
}

// Cancel stops the timer for gameID, if any.
func (c *ClosingTimers) Cancel(gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[gameID]; ok {
		t.Stop()
		delete(c.timers, gameID)
	}
}

// IsScheduled reports whether a timer is pending for gameID.
func (c *ClosingTimers) IsScheduled(gameID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.timers[gameID]
	return ok
}

// Stop cancels every pending timer.
func (c *ClosingTimers) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}
