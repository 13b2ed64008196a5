package tmux

import "testing"

func TestEscapeShellCommand(t *testing.T) {
	tests := []struct {
		name     string
		cmd      string
		expected string
	}{
		{"single word passes through", "agvlog", "agvlog"},
		{"two words", "agvlog watch", "agvlog' 'watch"},
		{"three words", "agvlog watch now", "agvlog' 'watch' 'now"},
		{"empty command", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeShellCommand(tt.cmd); got != tt.expected {
				t.Errorf("escapeShellCommand(%q) = %q, want %q", tt.cmd, got, tt.expected)
			}
		})
	}
}
