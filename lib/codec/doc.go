// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec encodes the host inventory snapshots stored by the
// inventory manager.
//
// Snapshots are CBOR with Core Deterministic Encoding (RFC 8949 §4.2):
// sorted map keys and smallest integer encoding, so the same hosts
// always produce the same bytes and the same digest. The stored form
// is that CBOR compressed with zstd:
//
//	blob, err := codec.MarshalCompressed(snapshot)
//	err = codec.UnmarshalCompressed(blob, &snapshot)
//
// Types carry `json` tags only; fxamacker/cbor falls back to them, so
// one tag names a field in both the CLI's JSON output and the stored
// CBOR.
package codec
