// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/bureau-foundation/novaadmin/lib/sqlitepool"
)

// DefaultDriver is the driver used when Config.DBDriver is empty.
const DefaultDriver = "sqlite"

// Driver is the persistence handle a manager holds for its lifetime.
type Driver interface {
	Close() error
}

// DriverConfig is passed to a DriverFactory.
type DriverConfig struct {
	// Database is the driver-specific data source, for sqlite a file
	// path.
	Database string
	Logger   *slog.Logger
}

// DriverFactory opens a Driver.
type DriverFactory func(ctx context.Context, config DriverConfig) (Driver, error)

var (
	driversMu sync.RWMutex
	drivers   = map[string]DriverFactory{}
)

// RegisterDriver makes a driver available by name. It panics if name is
// registered twice or factory is nil.
func RegisterDriver(name string, factory DriverFactory) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if factory == nil {
		panic("manager: RegisterDriver factory is nil")
	}
	if _, exists := drivers[name]; exists {
		panic("manager: RegisterDriver called twice for " + name)
	}
	drivers[name] = factory
}

// Drivers returns the registered driver names, sorted.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenDriver opens the driver registered under name.
func OpenDriver(ctx context.Context, name string, config DriverConfig) (Driver, error) {
	driversMu.RLock()
	factory, ok := drivers[name]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("manager: unknown driver %q (registered: %v)", name, Drivers())
	}
	driver, err := factory(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("manager: opening driver %q: %w", name, err)
	}
	return driver, nil
}

func init() {
	RegisterDriver(DefaultDriver, openSQLite)
}

// SQLiteDriver is the built-in "sqlite" driver.
type SQLiteDriver struct {
	pool *sqlitepool.Pool
}

// Pool returns the connection pool. Services create their schema
// through it in InitHost.
func (d *SQLiteDriver) Pool() *sqlitepool.Pool { return d.pool }

// Close closes the pool.
func (d *SQLiteDriver) Close() error { return d.pool.Close() }

func openSQLite(_ context.Context, config DriverConfig) (Driver, error) {
	if config.Database == "" {
		return nil, fmt.Errorf("database path is required")
	}
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:   config.Database,
		Logger: config.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &SQLiteDriver{pool: pool}, nil
}
