// Package logfile contains the day-file implementation of the mission
// log store.
package logfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/example/agvlog/internal/core/record"
	"github.com/example/agvlog/internal/ports/secondary"
)

// lockName is the advisory lock file guarding every read-modify-write
// on the day files. The dispatch CLI and the watch daemon are separate
// processes, so the lock must work across processes.
const lockName = ".day.lock"

// Store implements secondary.DayLog over a directory of date-stamped
// text files, one per calendar day.
type Store struct {
	dir  string
	lock *flock.Flock
}

// NewStore creates the log directory if needed and returns a store
// rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &Store{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, lockName)),
	}, nil
}

// Dir returns the log directory path.
func (s *Store) Dir() string { return s.dir }

// todayPath returns the date-stamped path for the given moment.
func (s *Store) todayPath(now time.Time) string {
	return filepath.Join(s.dir, now.Format(record.DateLayout)+".txt")
}

// Create prepends the block to today's file, creating it if absent.
// Mission launches may interleave with an already-running day's file,
// so existing content is preserved below the new block.
func (s *Store) Create(ctx context.Context, block []string) (string, error) {
	if err := s.lock.Lock(); err != nil {
		return "", fmt.Errorf("failed to acquire log lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	path := s.todayPath(time.Now())

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read day log: %w", err)
	}

	content := strings.Join(block, "\n") + "\n" + string(existing)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write day log: %w", err)
	}

	return path, nil
}

// LatestPath returns the most recently modified day file, or "" when
// there is none yet.
func (s *Store) LatestPath(ctx context.Context) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to read log directory: %w", err)
	}

	var (
		latest     string
		latestTime time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = filepath.Join(s.dir, entry.Name())
			latestTime = info.ModTime()
		}
	}

	return latest, nil
}

// ExtractIDs scans every line of the file and returns the id token
// following each "ID:" marker, in file order. A missing file means
// there is nothing to reconcile yet and yields (nil, nil).
func (s *Store) ExtractIDs(ctx context.Context, path string) ([]string, error) {
	lines, err := s.ReadAll(ctx, path)
	if err != nil {
		return nil, err
	}
	return record.ExtractIDs(lines), nil
}

// ReadAll returns the file's lines. A missing file yields (nil, nil).
func (s *Store) ReadAll(ctx context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read day log: %w", err)
	}
	return strings.Split(string(data), "\n"), nil
}

// Update applies fn to the file's lines under the writer lock, then
// truncates and rewrites the whole file in a single pass when fn
// reports a change. A missing file is a no-op.
func (s *Store) Update(ctx context.Context, path string, fn func(lines []string) (bool, error)) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire log lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read day log: %w", err)
	}

	// Splitting on "\n" keeps a trailing empty element for the final
	// newline, so an unchanged slice joins back byte-identical.
	lines := strings.Split(string(data), "\n")

	changed, err := fn(lines)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write day log: %w", err)
	}

	return nil
}

// Ensure Store implements the interface
var _ secondary.DayLog = (*Store)(nil)
