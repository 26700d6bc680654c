// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/novaadmin/cmd/novaadmin/cli"
	"github.com/bureau-foundation/novaadmin/lib/version"
)

func (a *app) versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(context.Context, []string) error {
			fmt.Fprintf(a.stdout, "novaadmin %s\n", version.Full())
			return nil
		},
	}
}
