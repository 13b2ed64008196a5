// Package tmux contains the tmux viewer adapter.
package tmux

import (
	"context"
	"fmt"

	"github.com/example/agvlog/internal/ports/secondary"
	tmuxpkg "github.com/example/agvlog/internal/tmux"
)

// Adapter implements secondary.Viewer by hosting the watch loop in a
// detached tmux session, wrapping the internal/tmux package.
type Adapter struct {
	sessionName string
}

// NewAdapter creates a viewer adapter for the given session name.
func NewAdapter(sessionName string) *Adapter {
	return &Adapter{sessionName: sessionName}
}

// Running reports whether the watcher session exists.
func (a *Adapter) Running(ctx context.Context) (bool, error) {
	g, err := tmuxpkg.NewGotmuxAdapter()
	if err != nil {
		return false, fmt.Errorf("tmux unavailable: %w", err)
	}
	return g.SessionExists(a.sessionName), nil
}

// Launch starts a detached session running the watch loop.
func (a *Adapter) Launch(ctx context.Context) error {
	g, err := tmuxpkg.NewGotmuxAdapter()
	if err != nil {
		return fmt.Errorf("tmux unavailable: %w", err)
	}
	if g.SessionExists(a.sessionName) {
		return nil
	}
	return g.CreateCommandSession(a.sessionName, "agvlog watch")
}

// AttachHint returns the command a user runs to view the watcher output.
func (a *Adapter) AttachHint() string {
	return fmt.Sprintf("tmux attach -t %s", a.sessionName)
}

// Ensure Adapter implements the interface
var _ secondary.Viewer = (*Adapter)(nil)
