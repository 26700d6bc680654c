// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/novaadmin/admin"
	"github.com/bureau-foundation/novaadmin/cmd/novaadmin/cli"
	"github.com/bureau-foundation/novaadmin/lib/sealed"
)

func (a *app) userCommand() *cli.Command {
	return &cli.Command{
		Name:    "user",
		Summary: "Manage users",
		Subcommands: []*cli.Command{
			a.userListCommand(),
			a.userShowCommand(),
			a.userExistsCommand(),
			a.userCreateCommand(),
			a.userDeleteCommand(),
			a.userRoleCommand("add-role", "Grant a role", admin.OperationAdd),
			a.userRoleCommand("remove-role", "Revoke a role", admin.OperationRemove),
			a.userCredentialsCommand(),
		},
	}
}

func (a *app) userListCommand() *cli.Command {
	var params struct{ cli.JSONOutput }
	return &cli.Command{
		Name:    "list",
		Summary: "List users",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("list", &params) },
		Run: func(ctx context.Context, _ []string) error {
			return a.withClient(ctx, func(client *admin.Client) error {
				users, err := client.Users(ctx)
				if err != nil {
					return err
				}
				if done, err := params.EmitJSON(a.stdout, users); done {
					return err
				}
				writer := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
				fmt.Fprintln(writer, "USERNAME\tACCESS KEY")
				for _, user := range users {
					fmt.Fprintf(writer, "%s\t%s\n", user.Username, user.AccessKey)
				}
				return writer.Flush()
			})
		},
	}
}

func (a *app) userShowCommand() *cli.Command {
	var params struct{ cli.JSONOutput }
	command := &cli.Command{
		Name:    "show",
		Summary: "Show one user",
		Usage:   "novaadmin user show <username> [--json]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("show", &params) },
	}
	command.Run = func(ctx context.Context, args []string) error {
		if err := command.ExactArgs(args, 1); err != nil {
			return err
		}
		return a.withClient(ctx, func(client *admin.Client) error {
			user, err := client.User(ctx, args[0])
			if err != nil {
				return err
			}
			if user == nil {
				return a.notFound("user", args[0])
			}
			if done, err := params.EmitJSON(a.stdout, user); done {
				return err
			}
			writer := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintf(writer, "Username:\t%s\n", user.Username)
			fmt.Fprintf(writer, "Access key:\t%s\n", user.AccessKey)
			for _, key := range user.Extra.Keys() {
				fmt.Fprintf(writer, "%s:\t%s\n", key, user.Extra.Value(key))
			}
			return writer.Flush()
		})
	}
	return command
}

func (a *app) userExistsCommand() *cli.Command {
	command := &cli.Command{
		Name:        "exists",
		Summary:     "Exit 0 if a user exists, 1 if not",
		Usage:       "novaadmin user exists <username>",
		Description: "Check whether a user exists. Prints nothing; the exit status is the answer.",
	}
	command.Run = func(ctx context.Context, args []string) error {
		if err := command.ExactArgs(args, 1); err != nil {
			return err
		}
		return a.withClient(ctx, func(client *admin.Client) error {
			exists, err := client.HasUser(ctx, args[0])
			if err != nil {
				return err
			}
			if !exists {
				return &cli.ExitError{Code: 1}
			}
			return nil
		})
	}
	return command
}

// createdUser is the JSON form of a newly registered user. Only create
// prints the secret key; listings never include it.
type createdUser struct {
	*admin.UserInfo
	SecretKey string `json:"secretkey"`
}

func (a *app) userCreateCommand() *cli.Command {
	var params struct{ cli.JSONOutput }
	command := &cli.Command{
		Name:    "create",
		Summary: "Register a user and print its key pair",
		Usage:   "novaadmin user create <username> [--json]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("create", &params) },
	}
	command.Run = func(ctx context.Context, args []string) error {
		if err := command.ExactArgs(args, 1); err != nil {
			return err
		}
		return a.withClient(ctx, func(client *admin.Client) error {
			user, err := client.CreateUser(ctx, args[0])
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(a.stdout, createdUser{UserInfo: user, SecretKey: user.SecretKey}); done {
				return err
			}
			fmt.Fprintf(a.stdout, "created user %s\n", user.Username)
			fmt.Fprintf(a.stdout, "access key: %s\n", user.AccessKey)
			fmt.Fprintf(a.stdout, "secret key: %s\n", user.SecretKey)
			return nil
		})
	}
	return command
}

func (a *app) userDeleteCommand() *cli.Command {
	command := &cli.Command{
		Name:    "delete",
		Summary: "Deregister a user",
		Usage:   "novaadmin user delete <username>",
	}
	command.Run = func(ctx context.Context, args []string) error {
		if err := command.ExactArgs(args, 1); err != nil {
			return err
		}
		return a.withClient(ctx, func(client *admin.Client) error {
			if _, err := client.DeleteUser(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "deleted user %s\n", args[0])
			return nil
		})
	}
	return command
}

func (a *app) userRoleCommand(name, summary string, operation admin.Operation) *cli.Command {
	var params struct {
		Project string `flag:"project,p" desc:"limit the role to this project (default: global role)"`
	}
	command := &cli.Command{
		Name:    name,
		Summary: summary,
		Usage:   "novaadmin user " + name + " <username> <role> [--project name]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams(name, &params) },
	}
	command.Run = func(ctx context.Context, args []string) error {
		if err := command.ExactArgs(args, 2); err != nil {
			return err
		}
		user, role := args[0], args[1]
		return a.withClient(ctx, func(client *admin.Client) error {
			ok, err := client.ModifyUserRole(ctx, user, role, params.Project, operation)
			if err != nil {
				return err
			}
			description := fmt.Sprintf("%s role %s for %s", operation, role, user)
			if params.Project != "" {
				description += " in project " + params.Project
			}
			if !ok {
				return a.declined(description)
			}
			fmt.Fprintln(a.stdout, description)
			return nil
		})
	}
	return command
}

func (a *app) userCredentialsCommand() *cli.Command {
	var params struct {
		Output string   `flag:"output,o" desc:"write the bundle to this file (mode 0600) instead of stdout"`
		SealTo []string `flag:"seal-to" desc:"age recipient (age1...) to encrypt the bundle to; repeatable"`
	}
	command := &cli.Command{
		Name:    "credentials",
		Summary: "Download a user's credential bundle",
		Usage:   "novaadmin user credentials <username> [--output file] [--seal-to age1...]",
		Description: `Download the zip of rc file and X.509 certificates generated for a user.

With --seal-to the bundle is encrypted to the given age recipients and
written ASCII-armored. The BLAKE3 digest of the written bytes is
printed on stderr.`,
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("credentials", &params) },
		Examples: []cli.Example{
			{
				Description: "Seal a bundle for the user's own key",
				Command:     "novaadmin user credentials alice --seal-to age1... -o alice.zip.age",
			},
		},
	}
	command.Run = func(ctx context.Context, args []string) error {
		if err := command.ExactArgs(args, 1); err != nil {
			return err
		}
		username := args[0]
		return a.withClient(ctx, func(client *admin.Client) error {
			bundle, err := client.CredentialBundle(ctx, username)
			if err != nil {
				return err
			}
			if len(bundle) == 0 {
				return fmt.Errorf("control plane returned no credential bundle for %q", username)
			}

			output := bundle
			if len(params.SealTo) > 0 {
				output, err = sealed.Seal(bundle, params.SealTo)
				if err != nil {
					return err
				}
			}

			destination := "stdout"
			if params.Output != "" && params.Output != "-" {
				if err := os.WriteFile(params.Output, output, 0o600); err != nil {
					return fmt.Errorf("writing bundle: %w", err)
				}
				destination = params.Output
			} else if _, err := a.stdout.Write(output); err != nil {
				return fmt.Errorf("writing bundle: %w", err)
			}

			digest := blake3.Sum256(output)
			fmt.Fprintf(a.stderr, "wrote %d bytes to %s (blake3 %x)\n", len(output), destination, digest)
			return nil
		})
	}
	return command
}
