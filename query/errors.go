// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"errors"
	"fmt"
)

// TransportError reports a query that did not produce a 2xx response:
// the request could not be built or sent, or the server answered with
// an error status. Callers can use errors.As to inspect it:
//
//	var transportErr *query.TransportError
//	if errors.As(err, &transportErr) && transportErr.Code == "NotFound" { ... }
type TransportError struct {
	// Action is the query action that failed.
	Action string
	// Endpoint is the URL the request was sent to.
	Endpoint string
	// StatusCode is the HTTP status, or 0 when no response arrived.
	StatusCode int
	// Code and Message come from the EC2-style error document in the
	// response body, when one was present.
	Code    string
	Message string
	// Err is the underlying network or request error. Nil for error
	// statuses.
	Err error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("query: %s to %s failed: %v", e.Action, e.Endpoint, e.Err)
	case e.Code != "":
		return fmt.Sprintf("query: %s failed with %d %s: %s", e.Action, e.StatusCode, e.Code, e.Message)
	default:
		return fmt.Sprintf("query: %s failed with status %d: %s", e.Action, e.StatusCode, e.Message)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// IsErrorCode reports whether err wraps a *TransportError whose error
// document carried code.
func IsErrorCode(err error, code string) bool {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Code == code
	}
	return false
}
