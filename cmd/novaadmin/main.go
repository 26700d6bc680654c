// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// novaadmin administers users, projects and hosts through a compute
// control plane's admin API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/novaadmin/cmd/novaadmin/commands"
	"github.com/bureau-foundation/novaadmin/lib/process"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return commands.Root(os.Stdout, os.Stderr).Execute(ctx, os.Args[1:])
}
