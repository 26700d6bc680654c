// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret keeps signing keys and age identities out of the Go
// heap.
//
// A [Buffer] lives in an anonymous mmap region that is locked into RAM
// and excluded from core dumps. Close zeroes and unmaps it; reading a
// closed Buffer panics. The query transport holds each admin secret key
// in a Buffer and touches it only while computing a signature, and the
// CLI loads age identities for credential sealing the same way.
//
// [ReadFromPath] loads a key file (or stdin for "-") into a Buffer with
// surrounding white space trimmed.
package secret
