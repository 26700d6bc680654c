// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// The query transport stamps every signed request with Clock.Now, and
// the manager's periodic task loop waits on Clock tickers. Production
// code uses Real(); tests use Fake(), which only moves when Advance is
// called:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go manager.Run(ctx, service)
//	fake.WaitForTimers(1)        // the loop has registered its ticker
//	fake.Advance(time.Minute)    // deliver exactly one tick
//
// WaitForTimers closes the race between a goroutine registering a timer
// and the test advancing the clock.
package clock
