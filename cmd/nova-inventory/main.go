// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// nova-inventory records periodic snapshots of the control plane's
// compute hosts into a local SQLite database.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/novaadmin/admin"
	"github.com/bureau-foundation/novaadmin/inventory"
	"github.com/bureau-foundation/novaadmin/lib/config"
	"github.com/bureau-foundation/novaadmin/lib/process"
	"github.com/bureau-foundation/novaadmin/lib/secret"
	"github.com/bureau-foundation/novaadmin/lib/version"
	"github.com/bureau-foundation/novaadmin/manager"
	"github.com/bureau-foundation/novaadmin/query"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

func run(args []string) error {
	var (
		configPath  string
		once        bool
		showVersion bool
	)
	flags := pflag.NewFlagSet("nova-inventory", pflag.ContinueOnError)
	flags.StringVarP(&configPath, "config", "c", "", "configuration file (default: $NOVAADMIN_CONFIG, else built-in defaults)")
	flags.BoolVar(&once, "once", false, "record one snapshot and exit")
	flags.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Printf("nova-inventory %s\n", version.Full())
		return nil
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("service", "nova-inventory")

	client, err := newAdminClient(cfg.Admin, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	mgr, err := manager.New(ctx, manager.Config{
		Host:     cfg.Manager.Host,
		DBDriver: cfg.Manager.DBDriver,
		Database: cfg.Manager.Database,
		Interval: cfg.Manager.Interval,
		Schedule: cfg.Manager.Schedule,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer mgr.Close()

	driver, ok := mgr.Driver().(*manager.SQLiteDriver)
	if !ok {
		return fmt.Errorf("nova-inventory stores snapshots with the %q driver, not %q",
			manager.DefaultDriver, cfg.Manager.DBDriver)
	}

	service, err := inventory.New(inventory.Config{
		Hosts:     client,
		Pool:      driver.Pool(),
		Retention: cfg.Manager.Retention,
		Logger:    mgr.Logger(),
	})
	if err != nil {
		return err
	}

	if once {
		if err := service.InitHost(ctx); err != nil {
			return err
		}
		return service.PeriodicTasks(ctx)
	}
	return mgr.Run(ctx, service)
}

func newAdminClient(cfg config.AdminConfig, logger *slog.Logger) (*admin.Client, error) {
	if cfg.SecretKeyFile == "" {
		return nil, fmt.Errorf("admin.secret_key_file is not configured")
	}
	secretKey, err := secret.ReadFromPath(cfg.SecretKeyFile)
	if err != nil {
		return nil, fmt.Errorf("reading admin secret key: %w", err)
	}
	client, err := admin.NewClient(admin.Config{
		Endpoint: query.Endpoint{
			Host:   cfg.ControllerIP,
			Region: cfg.Region,
			Port:   cfg.Port,
			Secure: cfg.Secure,
		},
		Credentials:     query.Credentials{AccessKey: cfg.AccessKey, SecretKey: secretKey},
		APIVersion:      cfg.APIVersion,
		CloudAPIVersion: cfg.CloudAPIVersion,
		HTTPClient:      &http.Client{Timeout: cfg.Timeout},
		Logger:          logger,
	})
	if err != nil {
		secretKey.Close()
		return nil, err
	}
	return client, nil
}
