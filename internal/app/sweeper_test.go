package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/agvlog/internal/app"
	"github.com/example/agvlog/internal/core/record"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestSweepDeletesOnlyExpiredFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	fresh := now.Format(record.DateLayout) + ".txt"
	edge := now.AddDate(0, 0, -29).Format(record.DateLayout) + ".txt"
	stale := now.AddDate(0, 0, -31).Format(record.DateLayout) + ".txt"
	touch(t, dir, fresh)
	touch(t, dir, edge)
	touch(t, dir, stale)

	removed, err := app.NewSweeper(dir, 30).Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(removed) != 1 || removed[0] != stale {
		t.Errorf("removed = %v, want [%s]", removed, stale)
	}
	for _, name := range []string{fresh, edge} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("file %s was deleted but is within retention", name)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, stale)); !os.IsNotExist(err) {
		t.Errorf("expired file %s still present", stale)
	}
}

func TestSweepIgnoresUnstampedNames(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "watch.log")
	touch(t, dir, ".day.lock")
	touch(t, dir, "notes.txt")

	removed, err := app.NewSweeper(dir, 30).Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(removed) != 0 {
		t.Errorf("removed = %v, want nothing", removed)
	}
}

func TestSweepMissingDirIsNoOp(t *testing.T) {
	removed, err := app.NewSweeper(filepath.Join(t.TempDir(), "absent"), 30).Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep on missing directory returned error: %v", err)
	}
	if removed != nil {
		t.Errorf("removed = %v, want nil", removed)
	}
}
