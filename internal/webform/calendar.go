package webform

import (
	"context"
	"sync"
	"time"

	"github.com/csg33k/approval-form/internal/jalali"
)

// Calendar caches today's Jalali date and refreshes it on a ticker.
type Calendar struct {
	mu       sync.RWMutex
	current  jalali.Date
	loc      *time.Location
	interval time.Duration
	now      func() time.Time
}

// NewCalendar computes the current date once. A zero interval means hourly;
// a nil now means time.Now.
func NewCalendar(loc *time.Location, interval time.Duration, now func() time.Time) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	if interval <= 0 {
		interval = time.Hour
	}
	if now == nil {
		now = time.Now
	}
	c := &Calendar{loc: loc, interval: interval, now: now}
	c.Refresh()
	return c
}

func (c *Calendar) Current() jalali.Date {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *Calendar) Refresh() {
	d := jalali.FromTime(c.now().In(c.loc))
	c.mu.Lock()
	c.current = d
	c.mu.Unlock()
}

// Run refreshes on every tick until ctx is cancelled.
func (c *Calendar) Run(ctx context.Context) {
	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Refresh()
		}
	}
}
