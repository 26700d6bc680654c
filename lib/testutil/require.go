// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"time"
)

// Fataler is the subset of testing.TB the channel helpers need.
type Fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive returns the next value from ch, failing the test if
// none arrives within timeout or ch is closed first. what names the
// awaited event in the failure message.
//
//	request := testutil.RequireReceive(t, plane.Requests(), 5*time.Second, "DescribeUser request")
func RequireReceive[T any](t Fataler, ch <-chan T, timeout time.Duration, what string, args ...any) T {
	t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed while waiting for %s", fmt.Sprintf(what, args...))
		}
		return value
	case <-timer.C:
		t.Fatalf("no %s within %v", fmt.Sprintf(what, args...), timeout)
	}
	var zero T
	return zero
}
