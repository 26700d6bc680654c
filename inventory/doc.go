// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package inventory records periodic snapshots of the compute hosts the
// control plane reports.
//
// [Service] implements manager.Service. InitHost creates the schema;
// each PeriodicTasks call lists hosts through the admin client and
// stores them as one snapshot row: the host records encoded as
// zstd-compressed CBOR (lib/codec) with a BLAKE3 digest of the encoded
// form, so callers can tell whether the host set changed between runs.
// Snapshots older than the retention period are pruned on the same
// tick.
package inventory
