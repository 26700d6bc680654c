// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"slices"
	"sync"
	"time"
)

// FakeClock only moves when Advance is called. Safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	changed *sync.Cond
	now     time.Time
	timers  []*fakeTimer
}

// fakeTimer is a pending After (period zero) or ticker deadline.
type fakeTimer struct {
	due    time.Time
	period time.Duration
	fire   chan time.Time
}

// Fake returns a FakeClock reading start.
func Fake(start time.Time) *FakeClock {
	fake := &FakeClock{now: start}
	fake.changed = sync.NewCond(&fake.mu)
	return fake
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	fire := make(chan time.Time, 1)
	c.mu.Lock()
	defer c.mu.Unlock()
	if d <= 0 {
		fire <- c.now
		return fire
	}
	c.addLocked(&fakeTimer{due: c.now.Add(d), fire: fire})
	return fire
}

func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: NewTicker needs a positive interval")
	}
	timer := &fakeTimer{period: d, fire: make(chan time.Time, 1)}
	c.mu.Lock()
	timer.due = c.now.Add(d)
	c.addLocked(timer)
	c.mu.Unlock()
	return &Ticker{C: timer.fire, stop: func() { c.remove(timer) }}
}

// Advance moves the clock forward by d, firing every timer that comes
// due on the way in deadline order. A ticker crossed by several
// periods is offered one tick per period; ticks its buffer cannot hold
// are dropped.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	c.mu.Unlock()

	for {
		due := c.takeDue(now)
		if len(due) == 0 {
			return
		}
		for _, timer := range due {
			select {
			case timer.fire <- now:
			default:
			}
		}
	}
}

// WaitForTimers blocks until at least n timers are pending, so a test
// advances only after the goroutine under test has started waiting.
func (c *FakeClock) WaitForTimers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.timers) < n {
		c.changed.Wait()
	}
}

// PendingCount returns the number of pending timers.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *FakeClock) addLocked(timer *fakeTimer) {
	c.timers = append(c.timers, timer)
	c.changed.Broadcast()
}

func (c *FakeClock) remove(timer *fakeTimer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timers = slices.DeleteFunc(c.timers, func(pending *fakeTimer) bool {
		return pending == timer
	})
}

// takeDue pulls the timers due at or before now, sorted by deadline.
// Tickers are rescheduled one period later and stay pending.
func (c *FakeClock) takeDue(now time.Time) []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var due []*fakeTimer
	kept := c.timers[:0]
	for _, timer := range c.timers {
		if timer.due.After(now) {
			kept = append(kept, timer)
			continue
		}
		due = append(due, &fakeTimer{due: timer.due, fire: timer.fire})
		if timer.period > 0 {
			timer.due = timer.due.Add(timer.period)
			kept = append(kept, timer)
		}
	}
	clear(c.timers[len(kept):])
	c.timers = kept

	slices.SortStableFunc(due, func(a, b *fakeTimer) int {
		return a.due.Compare(b.due)
	})
	return due
}
