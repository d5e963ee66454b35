package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_ReturnsConfigError(t *testing.T) {
	t.Setenv("FETCH_DELAY", "soon")

	err := run()
	if err == nil || !strings.HasPrefix(err.Error(), "config:") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestRun_ReturnsStorageError(t *testing.T) {
	t.Setenv("FETCH_DELAY", "0s")
	t.Setenv("DATASET_PATH", filepath.Join(t.TempDir(), "missing.json"))

	err := run()
	if err == nil || !strings.HasPrefix(err.Error(), "storage:") {
		t.Fatalf("expected storage error, got %v", err)
	}
}
