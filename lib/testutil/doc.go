// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [ControlPlane] is an httptest server that speaks the query protocol:
// tests register a canned XML body per Action and inspect the parsed
// requests afterwards. Unregistered actions get an EC2-style error
// document with HTTP 400.
//
// [RequireReceive] bounds every channel wait in tests that drive the
// manager's periodic loop, so a missed tick fails instead of hanging.
package testutil
