// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bureau-foundation/novaadmin/lib/clock"
	"github.com/bureau-foundation/novaadmin/lib/cron"
)

// DefaultInterval is the periodic task interval when neither Interval
// nor Schedule is configured.
const DefaultInterval = time.Minute

// Service is implemented by concrete managers.
type Service interface {
	// InitHost prepares the host before the first periodic run. An
	// error aborts Run.
	InitHost(ctx context.Context) error
	// PeriodicTasks runs once per tick. An error is logged and the
	// next tick runs as usual.
	PeriodicTasks(ctx context.Context) error
}

// Config holds configuration for creating a Manager.
type Config struct {
	// Host names this manager's host. Defaults to os.Hostname().
	Host string
	// DBDriver names a registered driver. Defaults to DefaultDriver.
	DBDriver string
	// Database is passed to the driver.
	Database string
	// Interval between periodic runs. Ignored when Schedule is set.
	// Defaults to DefaultInterval.
	Interval time.Duration
	// Schedule is a cron expression for periodic runs.
	Schedule string
	// Clock drives the periodic loop. If nil, clock.Real() is used.
	Clock clock.Clock
	// Logger is used for structured logging. If nil, slog.Default() is
	// used.
	Logger *slog.Logger
}

// Manager holds a host name and a driver, and runs a Service.
type Manager struct {
	host     string
	driver   Driver
	interval time.Duration
	schedule *cron.Schedule
	clock    clock.Clock
	logger   *slog.Logger
}

// New resolves the host and opens the configured driver.
func New(ctx context.Context, config Config) (*Manager, error) {
	host := config.Host
	if host == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("manager: resolving host name: %w", err)
		}
		host = hostname
	}

	var schedule *cron.Schedule
	if config.Schedule != "" {
		parsed, err := cron.Parse(config.Schedule)
		if err != nil {
			return nil, fmt.Errorf("manager: %w", err)
		}
		schedule = &parsed
	}

	interval := config.Interval
	if interval < 0 {
		return nil, fmt.Errorf("manager: negative interval %v", interval)
	}
	if interval == 0 {
		interval = DefaultInterval
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("host", host)

	driverName := config.DBDriver
	if driverName == "" {
		driverName = DefaultDriver
	}
	driver, err := OpenDriver(ctx, driverName, DriverConfig{
		Database: config.Database,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	return &Manager{
		host:     host,
		driver:   driver,
		interval: interval,
		schedule: schedule,
		clock:    clk,
		logger:   logger,
	}, nil
}

// Host returns the host name.
func (m *Manager) Host() string { return m.host }

// Driver returns the driver opened by New.
func (m *Manager) Driver() Driver { return m.driver }

// Logger returns the manager's logger, tagged with the host.
func (m *Manager) Logger() *slog.Logger { return m.logger }

// Close releases the driver.
func (m *Manager) Close() error {
	return m.driver.Close()
}

// Run calls service.InitHost, then service.PeriodicTasks on every tick
// until ctx is cancelled. It returns nil on cancellation and the
// InitHost error if that fails.
func (m *Manager) Run(ctx context.Context, service Service) error {
	if err := service.InitHost(ctx); err != nil {
		return fmt.Errorf("manager: init host: %w", err)
	}
	m.logger.Info("manager started", "schedule", m.describeSchedule())

	if m.schedule != nil {
		return m.runScheduled(ctx, service)
	}

	ticker := m.clock.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.tick(ctx, service)
		case <-ctx.Done():
			m.logger.Info("manager stopped")
			return nil
		}
	}
}

func (m *Manager) runScheduled(ctx context.Context, service Service) error {
	for {
		wait, err := m.schedule.Until(m.clock.Now())
		if err != nil {
			return fmt.Errorf("manager: %w", err)
		}
		select {
		case <-m.clock.After(wait):
			m.tick(ctx, service)
		case <-ctx.Done():
			m.logger.Info("manager stopped")
			return nil
		}
	}
}

func (m *Manager) tick(ctx context.Context, service Service) {
	started := m.clock.Now()
	err := service.PeriodicTasks(ctx)
	switch {
	case err == nil:
		m.logger.Debug("periodic tasks completed", "duration", m.clock.Now().Sub(started))
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		// Shutdown interrupted the run.
	default:
		m.logger.Error("periodic tasks failed", "error", err)
	}
}

func (m *Manager) describeSchedule() string {
	if m.schedule != nil {
		return m.schedule.String()
	}
	return "every " + m.interval.String()
}
