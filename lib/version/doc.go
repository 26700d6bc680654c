// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build of the novaadmin and nova-inventory
// binaries.
//
// Values are injected with -ldflags -X:
//
//	go build -ldflags "-X github.com/bureau-foundation/novaadmin/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When GitCommit is not injected, the VCS stamp recorded by the Go
// toolchain is used if present. The query transport sends [UserAgent]
// on every request.
package version
