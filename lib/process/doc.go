// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds entrypoint helpers shared by the novaadmin and
// nova-inventory binaries: reporting the error returned by run() before
// or without a structured logger, and honoring exit codes carried by
// that error.
package process
