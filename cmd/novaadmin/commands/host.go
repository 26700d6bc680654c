// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/novaadmin/admin"
	"github.com/bureau-foundation/novaadmin/cmd/novaadmin/cli"
)

func (a *app) hostCommand() *cli.Command {
	return &cli.Command{
		Name:        "host",
		Summary:     "Inspect compute hosts",
		Subcommands: []*cli.Command{a.hostListCommand()},
	}
}

func (a *app) hostListCommand() *cli.Command {
	var params struct{ cli.JSONOutput }
	return &cli.Command{
		Name:    "list",
		Summary: "List compute hosts and the fields each reports",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("list", &params) },
		Run: func(ctx context.Context, _ []string) error {
			return a.withClient(ctx, func(client *admin.Client) error {
				hosts, err := client.Hosts(ctx)
				if err != nil {
					return err
				}
				if done, err := params.EmitJSON(a.stdout, hosts); done {
					return err
				}
				writer := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
				fmt.Fprintln(writer, "HOSTNAME\tATTRIBUTES")
				for _, host := range hosts {
					var attributes []string
					for _, key := range host.Extra.Keys() {
						if key == "hostname" {
							continue
						}
						attributes = append(attributes, key+"="+host.Extra.Value(key))
					}
					fmt.Fprintf(writer, "%s\t%s\n", host.Hostname(), strings.Join(attributes, " "))
				}
				return writer.Flush()
			})
		},
	}
}
