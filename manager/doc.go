// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package manager is the base for long-running managers of one part of
// the system.
//
// A Manager knows the host it runs on and holds a persistence [Driver]
// resolved by name from configuration when the manager is built. A
// concrete manager supplies a [Service]: InitHost runs once at start,
// then PeriodicTasks runs on a fixed interval or a cron schedule until
// the context is cancelled.
//
//	mgr, err := manager.New(ctx, manager.Config{Database: "/var/lib/nova/inventory.db", Interval: time.Minute})
//	defer mgr.Close()
//	err = mgr.Run(ctx, service)
//
// Drivers register themselves with [RegisterDriver]; "sqlite" is built
// in and backed by lib/sqlitepool.
package manager
