// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admin

import "errors"

// ErrUnknownUser is returned by operations that need an existing user
// and found none.
var ErrUnknownUser = errors.New("admin: unknown user")

// ErrDetached is returned by record methods that need the producing
// client when the record was not produced by one.
var ErrDetached = errors.New("admin: record is not bound to a client")
