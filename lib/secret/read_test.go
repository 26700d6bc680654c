// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeKey(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "admin.key")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}
	return path
}

func TestReadFromPath_Trims(t *testing.T) {
	for name, content := range map[string]string{
		"bare":            "admin-secret-key",
		"newline":         "admin-secret-key\n",
		"crlf":            "admin-secret-key\r\n",
		"both sides":      " \tadmin-secret-key  \n",
		"blank lines":     "admin-secret-key\n\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			buffer, err := ReadFromPath(writeKey(t, content))
			if err != nil {
				t.Fatalf("ReadFromPath: %v", err)
			}
			defer buffer.Close()
			if got := buffer.String(); got != "admin-secret-key" {
				t.Errorf("secret = %q, want %q", got, "admin-secret-key")
			}
		})
	}
}

func TestReadFromPath_KeepsInteriorSpace(t *testing.T) {
	identity := "# created: 2026-02-18\nAGE-SECRET-KEY-1ABC"
	buffer, err := ReadFromPath(writeKey(t, identity+"\n"))
	if err != nil {
		t.Fatalf("ReadFromPath: %v", err)
	}
	defer buffer.Close()
	if got := buffer.String(); got != identity {
		t.Errorf("secret = %q, want %q", got, identity)
	}
}

func TestReadFromPath_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{"missing file", func(*testing.T) string { return "/nonexistent/admin.key" }, "no such file"},
		{"empty file", func(t *testing.T) string { return writeKey(t, "") }, "is empty"},
		{"white space only", func(t *testing.T) string { return writeKey(t, "  \n\t\n") }, "is empty"},
		{"oversized", func(t *testing.T) string { return writeKey(t, strings.Repeat("k", maxKeySize+1)) }, "larger than"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buffer, err := ReadFromPath(test.path(t))
			if err == nil {
				buffer.Close()
				t.Fatal("ReadFromPath succeeded, want error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, test.wantErr)
			}
		})
	}
}

func TestRead_FromReader(t *testing.T) {
	buffer, err := read(strings.NewReader("  piped-key\n"), "stdin")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	defer buffer.Close()
	if got := buffer.String(); got != "piped-key" {
		t.Errorf("secret = %q, want %q", got, "piped-key")
	}

	if _, err := read(strings.NewReader(""), "stdin"); err == nil || !strings.Contains(err.Error(), "stdin is empty") {
		t.Errorf("empty stdin error = %v, want \"stdin is empty\"", err)
	}
}
