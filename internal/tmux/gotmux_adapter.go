// Package tmux wraps the gotmux library for watcher session lifecycle
// management.
package tmux

import (
	"fmt"
	"strings"

	"github.com/GianlucaP106/gotmux/gotmux"
)

// GotmuxAdapter wraps gotmux for session lifecycle management.
type GotmuxAdapter struct {
	tmux *gotmux.Tmux
}

// NewGotmuxAdapter creates a new gotmux adapter.
func NewGotmuxAdapter() (*GotmuxAdapter, error) {
	tmux, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("failed to create tmux client: %w", err)
	}
	return &GotmuxAdapter{
		tmux: tmux,
	}, nil
}

// escapeShellCommand works around a gotmux quoting bug where ShellCommand is
// wrapped in single quotes (e.g. 'agvlog watch'). The shell interprets that as
// a single token, so multi-word commands fail with "command not found" (status
// 127). By replacing spaces with ' ' (close-quote, space, open-quote),
// gotmux's wrapping produces 'agvlog' 'watch' which the shell correctly parses
// as separate words.
func escapeShellCommand(cmd string) string {
	return strings.ReplaceAll(cmd, " ", "' '")
}

// SessionExists checks if a tmux session exists.
func (g *GotmuxAdapter) SessionExists(name string) bool {
	sessions, err := g.tmux.ListSessions()
	if err != nil {
		return false
	}
	for _, s := range sessions {
		if s.Name == name {
			return true
		}
	}
	return false
}

// CreateCommandSession creates a detached session whose first window runs
// the given command as its root process.
func (g *GotmuxAdapter) CreateCommandSession(name, command string) error {
	_, err := g.tmux.NewSession(&gotmux.SessionOptions{
		Name:         name,
		ShellCommand: escapeShellCommand(command),
	})
	if err != nil {
		return fmt.Errorf("failed to create session %s: %w", name, err)
	}
	return nil
}

// KillSession terminates a tmux session. Killing an absent session is
// not an error.
func (g *GotmuxAdapter) KillSession(name string) error {
	sessions, err := g.tmux.ListSessions()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	for _, s := range sessions {
		if s.Name == name {
			if err := s.Kill(); err != nil {
				return fmt.Errorf("failed to kill session %s: %w", name, err)
			}
			return nil
		}
	}
	return nil
}

// AttachInstructions returns the command a user runs to view the session.
func (g *GotmuxAdapter) AttachInstructions(name string) string {
	return fmt.Sprintf("tmux attach -t %s", name)
}
