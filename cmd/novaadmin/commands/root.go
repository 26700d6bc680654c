// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/novaadmin/admin"
	"github.com/bureau-foundation/novaadmin/cmd/novaadmin/cli"
	"github.com/bureau-foundation/novaadmin/lib/config"
	"github.com/bureau-foundation/novaadmin/lib/secret"
	"github.com/bureau-foundation/novaadmin/query"
)

type globalParams struct {
	ConfigPath string `flag:"config,c" desc:"configuration file (default: $NOVAADMIN_CONFIG, else built-in defaults)"`
	Verbose    bool   `flag:"verbose,v" desc:"log each request at debug level"`
}

// app is the state shared by every command in one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	global globalParams

	// logger overrides the command logger in tests.
	logger *slog.Logger
}

// Root returns the novaadmin command tree writing to stdout and stderr.
func Root(stdout, stderr io.Writer) *cli.Command {
	a := &app{stdout: stdout, stderr: stderr}
	return a.root()
}

func (a *app) root() *cli.Command {
	return &cli.Command{
		Name:        "novaadmin",
		Description: "Administer users, projects and hosts through the control plane's admin API.",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("novaadmin", &a.global)
		},
		Subcommands: []*cli.Command{
			a.userCommand(),
			a.projectCommand(),
			a.hostCommand(),
			a.connectionCommand(),
			a.keygenCommand(),
			a.versionCommand(),
		},
		Examples: []cli.Example{
			{Description: "List users on the configured controller", Command: "novaadmin user list"},
			{Description: "Use a specific configuration file", Command: "novaadmin --config /etc/nova/novaadmin.yaml host list --json"},
		},
	}
}

func (a *app) commandLogger() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return cli.NewCommandLogger(a.global.Verbose)
}

// withClient connects with the configured admin credentials, runs fn
// and closes the client.
func (a *app) withClient(ctx context.Context, fn func(client *admin.Client) error) error {
	cfg, err := config.Resolve(a.global.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Admin.SecretKeyFile == "" {
		return fmt.Errorf("admin.secret_key_file is not configured")
	}

	secretKey, err := secret.ReadFromPath(cfg.Admin.SecretKeyFile)
	if err != nil {
		return fmt.Errorf("reading admin secret key: %w", err)
	}

	client, err := admin.NewClient(admin.Config{
		Endpoint: query.Endpoint{
			Host:   cfg.Admin.ControllerIP,
			Region: cfg.Admin.Region,
			Port:   cfg.Admin.Port,
			Secure: cfg.Admin.Secure,
		},
		Credentials:     query.Credentials{AccessKey: cfg.Admin.AccessKey, SecretKey: secretKey},
		APIVersion:      cfg.Admin.APIVersion,
		CloudAPIVersion: cfg.Admin.CloudAPIVersion,
		HTTPClient:      &http.Client{Timeout: cfg.Admin.Timeout},
		Logger:          a.commandLogger(),
	})
	if err != nil {
		secretKey.Close()
		return err
	}
	defer client.Close()

	return fn(client)
}

// notFound reports a missing object on stderr and exits 1.
func (a *app) notFound(kind, name string) error {
	fmt.Fprintf(a.stderr, "%s %q not found\n", kind, name)
	return &cli.ExitError{Code: 1}
}

// declined reports a status operation the control plane answered
// "false" to.
func (a *app) declined(operation string) error {
	fmt.Fprintf(a.stderr, "control plane declined %s\n", operation)
	return &cli.ExitError{Code: 1}
}
