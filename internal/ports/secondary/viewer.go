package secondary

import "context"

// Viewer is the secondary port for the auxiliary status-viewing
// process. At most one instance may run at a time; it is identified by
// a fixed session name.
type Viewer interface {
	// Running reports whether the viewer session already exists.
	Running(ctx context.Context) (bool, error)

	// Launch spawns a new viewer session.
	Launch(ctx context.Context) error
}
