// File: filex_test.go
// Title: File Path Utilities Tests
// Description: Tests for the home expansion, existence and parent
//              directory helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial test implementation
// - 2026-10-18 v0.2.0: Tests for the reduced path helpers

package filex

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/numerik")

	tests := []struct {
		input    string
		expected string
	}{
		{"~", "/home/numerik"},
		{"~/.numerik/journal.db", "/home/numerik/.numerik/journal.db"},
		{"/var/lib/numerik/journal.db", "/var/lib/numerik/journal.db"},
		{"data/journal.db", "data/journal.db"},
		{"~other/journal.db", "~other/journal.db"},
		{":memory:", ":memory:"},
	}
	for _, tt := range tests {
		if got := ExpandHome(tt.input); got != tt.expected {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}

	if got := HomePath(".numerik", "config.toml"); got != "/home/numerik/.numerik/config.toml" {
		t.Errorf("HomePath = %q", got)
	}
}

func TestExistsIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(file, []byte("[engine]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !Exists(dir) || IsFile(dir) {
		t.Errorf("directory: Exists=%v IsFile=%v", Exists(dir), IsFile(dir))
	}
	if !Exists(file) || !IsFile(file) {
		t.Errorf("file: Exists=%v IsFile=%v", Exists(file), IsFile(file))
	}
	missing := filepath.Join(dir, "missing.toml")
	if Exists(missing) || IsFile(missing) {
		t.Error("missing file reported as existing")
	}
}

func TestEnsureParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "journal.db")
	if err := EnsureParentDir(path); err != nil {
		t.Fatalf("EnsureParentDir: %v", err)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Errorf("parent directory not created: %v", err)
	}
	if Exists(path) {
		t.Error("EnsureParentDir created the file itself")
	}
	// idempotent
	if err := EnsureParentDir(path); err != nil {
		t.Errorf("second EnsureParentDir: %v", err)
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureParentDir(filepath.Join(blocker, "journal.db")); err == nil {
		t.Error("EnsureParentDir below a regular file should fail")
	}
}
