package secondary

import "context"

// DayLog is the secondary port for the per-day mission log store.
//
// The store assumes a single logical writer: implementations must hold
// a per-file writer lock across every read-modify-write so the launch
// path and the reconciler can never interleave partial writes.
type DayLog interface {
	// Create writes a new record block at the top of today's log
	// file, creating the file (and the log directory) if needed, and
	// returns the file path.
	Create(ctx context.Context, block []string) (string, error)

	// LatestPath returns the path of the most recently modified day
	// file, or "" when the log directory holds none.
	LatestPath(ctx context.Context) (string, error)

	// ExtractIDs returns every mission id in the file, in file order,
	// duplicates preserved positionally. A missing file yields
	// (nil, nil): there is nothing to reconcile yet.
	ExtractIDs(ctx context.Context, path string) ([]string, error)

	// Update applies fn to the file's lines under the writer lock and
	// rewrites the whole file in one pass when fn reports a change.
	// fn mutates the slice in place. A missing file is a no-op.
	Update(ctx context.Context, path string, fn func(lines []string) (changed bool, err error)) error

	// ReadAll returns the file's lines for read-only consumers.
	ReadAll(ctx context.Context, path string) ([]string, error)
}
