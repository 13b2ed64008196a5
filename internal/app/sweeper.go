package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/agvlog/internal/core/record"
)

// Sweeper deletes day log files older than a configured age. Files are
// judged by the date stamp in their name, never by filesystem
// timestamps, and always deleted whole.
type Sweeper struct {
	dir           string
	retentionDays int
}

// NewSweeper creates a sweeper for the given log directory.
func NewSweeper(dir string, retentionDays int) *Sweeper {
	return &Sweeper{dir: dir, retentionDays: retentionDays}
}

// Sweep removes expired day files and returns the names of the files
// it deleted. Files whose names do not start with a parseable date
// stamp are ignored.
func (s *Sweeper) Sweep(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	var removed []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if len(name) < len(record.DateLayout) {
			continue
		}
		fileDate, err := time.Parse(record.DateLayout, name[:len(record.DateLayout)])
		if err != nil {
			continue
		}
		if !fileDate.Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", name, err)
		}
		removed = append(removed, name)
	}

	return removed, nil
}
