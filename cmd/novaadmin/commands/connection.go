// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/novaadmin/admin"
	"github.com/bureau-foundation/novaadmin/cmd/novaadmin/cli"
)

type connectionView struct {
	User      string `json:"user"`
	Endpoint  string `json:"endpoint"`
	Region    string `json:"region"`
	AccessKey string `json:"access_key"`
}

func (a *app) connectionCommand() *cli.Command {
	var params struct{ cli.JSONOutput }
	command := &cli.Command{
		Name:    "connection",
		Summary: "Resolve a user's cloud API connection",
		Usage:   "novaadmin connection <username> [--json]",
		Description: `Look up a user's key pair through the admin API and print the cloud
endpoint and access key a connection for that user would use. Nothing
is sent to the cloud endpoint.`,
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("connection", &params) },
	}
	command.Run = func(ctx context.Context, args []string) error {
		if err := command.ExactArgs(args, 1); err != nil {
			return err
		}
		username := args[0]
		return a.withClient(ctx, func(client *admin.Client) error {
			connection, err := client.ConnectionFor(ctx, username)
			if errors.Is(err, admin.ErrUnknownUser) {
				return a.notFound("user", username)
			}
			if err != nil {
				return err
			}
			defer connection.Close()

			endpoint := connection.Endpoint()
			view := connectionView{
				User:      username,
				Endpoint:  endpoint.URL(),
				Region:    endpoint.Region,
				AccessKey: connection.AccessKey(),
			}
			if done, err := params.EmitJSON(a.stdout, view); done {
				return err
			}
			fmt.Fprintf(a.stdout, "user:       %s\n", view.User)
			fmt.Fprintf(a.stdout, "endpoint:   %s\n", view.Endpoint)
			fmt.Fprintf(a.stdout, "region:     %s\n", view.Region)
			fmt.Fprintf(a.stdout, "access key: %s\n", view.AccessKey)
			return nil
		})
	}
	return command
}
