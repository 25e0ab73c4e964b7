package webform_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/csg33k/approval-form/internal/webform"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func TestCalendar_RefreshCrossesMonth(t *testing.T) {
	c := &clock{t: time.Date(2025, 10, 22, 12, 0, 0, 0, time.UTC)}
	cal := webform.NewCalendar(time.UTC, 0, c.now)
	if got := cal.Current().MonthYear(); got != "مهر - 1404" {
		t.Fatalf("Current() = %q", got)
	}
	c.set(time.Date(2025, 10, 23, 12, 0, 0, 0, time.UTC))
	cal.Refresh()
	if got := cal.Current().MonthYear(); got != "آبان - 1404" {
		t.Errorf("after refresh = %q", got)
	}
}

func TestCalendar_UsesLocation(t *testing.T) {
	// 21:00 UTC on 2024-03-19 is already Nowruz in Tehran.
	at := time.Date(2024, 3, 19, 21, 0, 0, 0, time.UTC)
	tehran := time.FixedZone("IRST", 3*3600+1800)
	cal := webform.NewCalendar(tehran, 0, func() time.Time { return at })
	if got := cal.Current(); got.Year != 1403 || got.Month != 1 || got.Day != 1 {
		t.Errorf("Current() = %v", got)
	}
}

func TestCalendar_RunTicksUntilCancelled(t *testing.T) {
	c := &clock{t: time.Date(2025, 10, 22, 12, 0, 0, 0, time.UTC)}
	cal := webform.NewCalendar(time.UTC, time.Millisecond, c.now)
	c.set(time.Date(2025, 10, 23, 12, 0, 0, 0, time.UTC))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cal.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for cal.Current().Month != 8 {
		select {
		case <-deadline:
			t.Fatal("calendar never refreshed")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
