// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source for request signing and the manager's
// periodic loop.
type Clock interface {
	Now() time.Time

	// After receives once, d after the call. d <= 0 receives at once.
	After(d time.Duration) <-chan time.Time

	// NewTicker receives every d until stopped. Panics if d <= 0.
	NewTicker(d time.Duration) *Ticker
}

// Ticker delivers periodic ticks on C, which holds at most one pending
// tick. Stop does not close C.
type Ticker struct {
	C    <-chan time.Time
	stop func()
}

// Stop ends delivery.
func (t *Ticker) Stop() { t.stop() }
