// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zeebo/blake3"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bureau-foundation/novaadmin/admin"
	"github.com/bureau-foundation/novaadmin/lib/clock"
	"github.com/bureau-foundation/novaadmin/lib/codec"
	"github.com/bureau-foundation/novaadmin/lib/sqlitepool"
)

// DefaultRetention is how long snapshots are kept when Config.Retention
// is zero.
const DefaultRetention = 7 * 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS host_snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	taken_at   INTEGER NOT NULL,
	host_count INTEGER NOT NULL,
	digest     BLOB    NOT NULL,
	hosts      BLOB    NOT NULL
);
CREATE INDEX IF NOT EXISTS host_snapshots_taken_at ON host_snapshots (taken_at);
`

// HostLister lists compute hosts. *admin.Client implements it.
type HostLister interface {
	Hosts(ctx context.Context) ([]*admin.HostInfo, error)
}

// Config holds the parameters for creating a Service.
type Config struct {
	// Hosts is the source of host records. Required.
	Hosts HostLister
	// Pool stores snapshots. Required. The Service does not close it.
	Pool *sqlitepool.Pool
	// Retention bounds snapshot age. Defaults to DefaultRetention.
	Retention time.Duration
	// Clock stamps snapshots. If nil, clock.Real() is used.
	Clock clock.Clock
	// Logger is used for structured logging. If nil, slog.Default() is
	// used.
	Logger *slog.Logger
}

// Service snapshots the host inventory.
type Service struct {
	hosts     HostLister
	pool      *sqlitepool.Pool
	retention time.Duration
	clock     clock.Clock
	logger    *slog.Logger
}

// New creates a Service. The schema is created by InitHost.
func New(config Config) (*Service, error) {
	if config.Hosts == nil {
		return nil, fmt.Errorf("inventory: Hosts is required")
	}
	if config.Pool == nil {
		return nil, fmt.Errorf("inventory: Pool is required")
	}
	if config.Retention < 0 {
		return nil, fmt.Errorf("inventory: negative retention %v", config.Retention)
	}
	retention := config.Retention
	if retention == 0 {
		retention = DefaultRetention
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		hosts:     config.Hosts,
		pool:      config.Pool,
		retention: retention,
		clock:     clk,
		logger:    logger,
	}, nil
}

// InitHost creates the snapshot table.
func (s *Service) InitHost(ctx context.Context) error {
	err := s.pool.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.ExecuteScript(conn, schema, nil)
	})
	if err != nil {
		return fmt.Errorf("inventory: creating schema: %w", err)
	}
	return nil
}

// PeriodicTasks records one snapshot and prunes expired ones.
func (s *Service) PeriodicTasks(ctx context.Context) error {
	summary, changed, err := s.Record(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("host snapshot recorded",
		"id", summary.ID,
		"hosts", summary.HostCount,
		"changed", changed,
	)

	pruned, err := s.Prune(ctx)
	if err != nil {
		return err
	}
	if pruned > 0 {
		s.logger.Info("host snapshots pruned", "count", pruned, "retention", s.retention)
	}
	return nil
}

// Record lists hosts and stores them as a new snapshot. changed is
// false when the host set is identical to the latest stored snapshot.
func (s *Service) Record(ctx context.Context) (summary Summary, changed bool, err error) {
	records, err := s.hosts.Hosts(ctx)
	if err != nil {
		return Summary{}, false, fmt.Errorf("inventory: listing hosts: %w", err)
	}
	hosts := hostsFrom(records)

	// The digest covers the uncompressed deterministic encoding so it
	// does not depend on compressor settings.
	encoded, err := codec.Marshal(hosts)
	if err != nil {
		return Summary{}, false, fmt.Errorf("inventory: encoding hosts: %w", err)
	}
	digest := blake3.Sum256(encoded)
	blob, err := codec.MarshalCompressed(hosts)
	if err != nil {
		return Summary{}, false, fmt.Errorf("inventory: %w", err)
	}

	summary = Summary{
		TakenAt:   s.clock.Now().UTC(),
		HostCount: len(hosts),
		Digest:    digest[:],
	}

	err = s.pool.With(ctx, func(conn *sqlite.Conn) (err error) {
		endTransaction, err := sqlitex.ImmediateTransaction(conn)
		if err != nil {
			return err
		}
		defer endTransaction(&err)

		previous, err := latestSummary(conn)
		if err != nil {
			return err
		}
		changed = previous == nil || !bytes.Equal(previous.Digest, summary.Digest)

		err = sqlitex.Execute(conn,
			"INSERT INTO host_snapshots (taken_at, host_count, digest, hosts) VALUES (?, ?, ?, ?)",
			&sqlitex.ExecOptions{Args: []any{summary.TakenAt.UnixNano(), summary.HostCount, summary.Digest, blob}})
		if err != nil {
			return err
		}
		summary.ID = conn.LastInsertRowID()
		return nil
	})
	if err != nil {
		return Summary{}, false, fmt.Errorf("inventory: storing snapshot: %w", err)
	}
	return summary, changed, nil
}

// Prune deletes snapshots older than the retention period, always
// keeping the latest one. Returns the number deleted.
func (s *Service) Prune(ctx context.Context) (int, error) {
	cutoff := s.clock.Now().Add(-s.retention).UnixNano()
	var deleted int
	err := s.pool.With(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn,
			`DELETE FROM host_snapshots
			 WHERE taken_at < ? AND id < (SELECT max(id) FROM host_snapshots)`,
			&sqlitex.ExecOptions{Args: []any{cutoff}})
		if err != nil {
			return err
		}
		deleted = conn.Changes()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("inventory: pruning snapshots: %w", err)
	}
	return deleted, nil
}

// Latest returns the most recent snapshot, or nil if none is stored.
func (s *Service) Latest(ctx context.Context) (*Snapshot, error) {
	var snapshot *Snapshot
	err := s.pool.With(ctx, func(conn *sqlite.Conn) error {
		var err error
		snapshot, err = querySnapshot(conn,
			"SELECT id, taken_at, host_count, digest, hosts FROM host_snapshots ORDER BY id DESC LIMIT 1")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("inventory: reading latest snapshot: %w", err)
	}
	return snapshot, nil
}

// Get returns the snapshot with the given id, or nil if it does not
// exist.
func (s *Service) Get(ctx context.Context, id int64) (*Snapshot, error) {
	var snapshot *Snapshot
	err := s.pool.With(ctx, func(conn *sqlite.Conn) error {
		var err error
		snapshot, err = querySnapshot(conn,
			"SELECT id, taken_at, host_count, digest, hosts FROM host_snapshots WHERE id = ?", id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("inventory: reading snapshot %d: %w", id, err)
	}
	return snapshot, nil
}

// History returns up to limit snapshot summaries, newest first. A
// non-positive limit returns all of them.
func (s *Service) History(ctx context.Context, limit int) ([]Summary, error) {
	query := "SELECT id, taken_at, host_count, digest FROM host_snapshots ORDER BY id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	summaries := make([]Summary, 0)
	err := s.pool.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				summaries = append(summaries, scanSummary(stmt))
				return nil
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("inventory: reading history: %w", err)
	}
	return summaries, nil
}

func latestSummary(conn *sqlite.Conn) (*Summary, error) {
	var summary *Summary
	err := sqlitex.Execute(conn,
		"SELECT id, taken_at, host_count, digest FROM host_snapshots ORDER BY id DESC LIMIT 1",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				scanned := scanSummary(stmt)
				summary = &scanned
				return nil
			},
		})
	return summary, err
}

func querySnapshot(conn *sqlite.Conn, query string, args ...any) (*Snapshot, error) {
	var snapshot *Snapshot
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			blob := make([]byte, stmt.ColumnLen(4))
			stmt.ColumnBytes(4, blob)

			var hosts []Host
			if err := codec.UnmarshalCompressed(blob, &hosts); err != nil {
				return err
			}
			if hosts == nil {
				hosts = []Host{}
			}
			snapshot = &Snapshot{Summary: scanSummary(stmt), Hosts: hosts}
			return nil
		},
	})
	return snapshot, err
}

// scanSummary reads columns id, taken_at, host_count, digest.
func scanSummary(stmt *sqlite.Stmt) Summary {
	digest := make([]byte, stmt.ColumnLen(3))
	stmt.ColumnBytes(3, digest)
	return Summary{
		ID:        stmt.ColumnInt64(0),
		TakenAt:   time.Unix(0, stmt.ColumnInt64(1)).UTC(),
		HostCount: stmt.ColumnInt(2),
		Digest:    digest,
	}
}
