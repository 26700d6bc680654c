// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response I/O for the query API
// clients.
//
// Every read of a response body goes through a MaxResponseSize limit so
// a misbehaving control plane cannot exhaust client memory. Query API
// responses are small flat XML documents; the limit is generous enough
// that it never interferes with normal operation, including base64
// credential bundles.
package netutil

import (
	"io"
)

// MaxResponseSize is the bound on query API response body reads: 64 MB.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads a response body up to MaxResponseSize bytes. Use
// instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// LimitBody wraps a response body so that streaming consumers stop at
// MaxResponseSize bytes. Close closes the underlying body.
func LimitBody(body io.ReadCloser) io.ReadCloser {
	return &limitedBody{
		Reader: io.LimitReader(body, MaxResponseSize),
		closer: body,
	}
}

type limitedBody struct {
	io.Reader
	closer io.Closer
}

func (b *limitedBody) Close() error {
	return b.closer.Close()
}

// Truncate renders an error response body for diagnostics, cut to
// limit bytes with a "..." marker when limit is positive.
func Truncate(body []byte, limit int) string {
	if limit > 0 && len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
