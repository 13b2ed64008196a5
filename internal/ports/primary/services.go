// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces the CLI layer calls into.
package primary

import "context"

// LaunchMissionRequest carries the operator's dispatch arguments.
type LaunchMissionRequest struct {
	FromNode string
	ToNode   string
}

// LaunchMissionResponse reports a successful dispatch.
type LaunchMissionResponse struct {
	MissionID string
	LogPath   string
}

// LaunchService dispatches a mission and records it in the day log.
type LaunchService interface {
	LaunchMission(ctx context.Context, req LaunchMissionRequest) (*LaunchMissionResponse, error)
}

// ReconcileService performs one reconciliation pass over a day log
// file: extract ids, query live state, classify, rewrite changed
// fields in place.
type ReconcileService interface {
	Reconcile(ctx context.Context, path string) error
}
