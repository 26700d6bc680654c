// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmlrecord

import (
	"errors"
	"fmt"
)

// ErrMissingStatus is returned by [DecodeStatus] when the document has
// no "return" element. An anomalous response is reported, not read as
// a normal "false".
var ErrMissingStatus = errors.New("xmlrecord: response has no return element")

// errNoRootElement is wrapped in a MalformedResponseError when the
// stream ends before any element was seen.
var errNoRootElement = errors.New("no root element")

// errSecondRoot and errTextOutsideRoot reject documents that are not a
// single element.
var (
	errSecondRoot      = errors.New("element after the root element")
	errTextOutsideRoot = errors.New("text outside the root element")
)

// MalformedResponseError reports a response body that could not be
// decoded: not well-formed XML, or a mapped binary field whose text is
// not valid base64. Callers can use errors.As to extract it:
//
//	var malformed *xmlrecord.MalformedResponseError
//	if errors.As(err, &malformed) { ... }
type MalformedResponseError struct {
	// Element is the local name of the element being decoded when the
	// failure was detected. Empty for stream-level syntax errors.
	Element string
	// Err is the underlying syntax or field error.
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("xmlrecord: malformed response at <%s>: %v", e.Element, e.Err)
	}
	return fmt.Sprintf("xmlrecord: malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsMalformedResponse reports whether err is or wraps a
// *MalformedResponseError.
func IsMalformedResponse(err error) bool {
	var malformed *MalformedResponseError
	return errors.As(err, &malformed)
}
