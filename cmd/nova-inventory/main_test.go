// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bureau-foundation/novaadmin/lib/sqlitepool"
	"github.com/bureau-foundation/novaadmin/lib/testutil"
)

func writeConfig(t *testing.T, plane *testutil.ControlPlane, database string) string {
	t.Helper()
	host, port := plane.HostPort(t)
	directory := t.TempDir()
	keyPath := filepath.Join(directory, "admin.key")
	if err := os.WriteFile(keyPath, []byte("admin-secret\n"), 0o600); err != nil {
		t.Fatalf("writing key: %v", err)
	}
	configPath := filepath.Join(directory, "nova-inventory.yaml")
	content := fmt.Sprintf(`admin:
  controller_ip: %s
  port: %d
  secret_key_file: %s
manager:
  host: inventory-test
  database: %s
`, host, port, keyPath, database)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return configPath
}

func TestRun_Once(t *testing.T) {
	plane := testutil.NewControlPlane(t)
	plane.Respond("DescribeHosts", `<DescribeHostsResponse><hostSet>
  <item><hostname>node-1</hostname></item>
  <item><hostname>node-2</hostname></item>
</hostSet></DescribeHostsResponse>`)
	database := filepath.Join(t.TempDir(), "inventory.db")

	if err := run([]string{"--config", writeConfig(t, plane, database), "--once"}); err != nil {
		t.Fatalf("run --once: %v", err)
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{Path: database, PoolSize: 1})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer pool.Close()

	var counts []int64
	err = pool.With(context.Background(), func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "SELECT host_count FROM host_snapshots", &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				counts = append(counts, stmt.ColumnInt64(0))
				return nil
			},
		})
	})
	if err != nil {
		t.Fatalf("reading snapshots: %v", err)
	}
	if len(counts) != 1 || counts[0] != 2 {
		t.Errorf("snapshot host counts = %v, want [2]", counts)
	}
}

func TestRun_Errors(t *testing.T) {
	plane := testutil.NewControlPlane(t)
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing database", []string{"--config", writeConfig(t, plane, "")}, "database path is required"},
		{"unknown flag", []string{"--bogus"}, "unknown flag"},
		{"missing config file", []string{"--config", "/nonexistent/nova-inventory.yaml"}, "nova-inventory.yaml"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := run(test.args)
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("run error = %v, want it to contain %q", err, test.wantErr)
			}
		})
	}
}

func TestRun_HelpAndVersion(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {"--version"}} {
		if err := run(args); err != nil {
			t.Errorf("run %v: %v", args, err)
		}
	}
}
