// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool opens the SQLite databases behind the manager's
// "sqlite" driver and the host inventory store.
//
// It wraps zombiezen.com/go/sqlite's sqlitex.Pool. Callers [Pool.Take]
// a connection, use it from one goroutine, and [Pool.Put] it back, or
// let [Pool.With] do both around a callback. Every connection gets the
// same pragmas:
//
//   - journal_mode=WAL: readers never block the single writer.
//   - synchronous=NORMAL: commits survive a process crash.
//   - busy_timeout=5000: wait for the write lock instead of failing.
//   - foreign_keys=ON
//   - temp_store=MEMORY
//
// Schema setup belongs in Config.OnConnect, which runs once per
// connection after the pragmas:
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path:      "/var/lib/nova/inventory.db",
//	    Logger:    logger,
//	    OnConnect: func(conn *sqlite.Conn) error { return sqlitex.ExecuteScript(conn, schema, nil) },
//	})
package sqlitepool
