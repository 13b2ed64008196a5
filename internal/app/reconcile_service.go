// Package app contains the application services that orchestrate the
// functional core, the day-log store and the fleet controller ports.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	coremission "github.com/example/agvlog/internal/core/mission"
	"github.com/example/agvlog/internal/core/record"
	"github.com/example/agvlog/internal/ports/primary"
	"github.com/example/agvlog/internal/ports/secondary"
)

// ReconcileServiceImpl implements the ReconcileService interface.
type ReconcileServiceImpl struct {
	querier     secondary.MissionQuerier
	telemetry   secondary.VehicleTelemetry
	log         secondary.DayLog
	vehicleName string
	queryWindow int
}

// NewReconcileService creates a new ReconcileService with injected
// dependencies. queryWindow bounds how many recent missions are
// fetched per pass; it is sized to the customer worst case.
func NewReconcileService(
	querier secondary.MissionQuerier,
	telemetry secondary.VehicleTelemetry,
	log secondary.DayLog,
	vehicleName string,
	queryWindow int,
) *ReconcileServiceImpl {
	return &ReconcileServiceImpl{
		querier:     querier,
		telemetry:   telemetry,
		log:         log,
		vehicleName: vehicleName,
		queryWindow: queryWindow,
	}
}

// Reconcile runs one reconciliation pass over the day log at path:
// extract mission ids, join them against freshly polled mission state,
// classify each record and rewrite only the fields that changed. The
// whole file is rewritten once per pass, not once per record.
func (s *ReconcileServiceImpl) Reconcile(ctx context.Context, path string) error {
	ids, err := s.log.ExtractIDs(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to extract mission ids: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	// A failed controller query aborts the pass without touching the
	// file; the next poll interval retries.
	missions, err := s.querier.RecentMissions(ctx, s.queryWindow)
	if err != nil {
		return fmt.Errorf("failed to query recent missions: %w", err)
	}

	// Vehicle faults and messages degrade to empty on failure; they
	// only feed the free-text fields.
	veh, err := s.telemetry.Vehicle(ctx, s.vehicleName)
	if err != nil {
		veh = &secondary.VehicleSnapshot{}
	}

	matches := joinByID(ids, missions)
	if len(matches) == 0 {
		return nil
	}

	return s.log.Update(ctx, path, func(lines []string) (bool, error) {
		changed := false
		for _, id := range ids {
			st, ok := matches[id]
			if !ok {
				// No upstream match: leave the record untouched.
				continue
			}
			if s.applyUpdate(lines, id, st, veh) {
				changed = true
			}
		}
		return changed, nil
	})
}

// applyUpdate rewrites one record block in place and reports whether
// anything was written. Records whose block cannot be fully addressed
// are skipped rather than partially rewritten.
func (s *ReconcileServiceImpl) applyUpdate(lines []string, id string, st secondary.MissionStatus, veh *secondary.VehicleSnapshot) bool {
	i, ok := record.FindID(lines, id)
	if !ok || !record.Fits(lines, i) {
		return false
	}

	launchedAt := record.LaunchedAt(lines, i)
	elapsed := record.TimeDifference(lines, i)
	if elapsed == "" {
		// Legacy blocks may carry a finish line without the elapsed
		// field; treat it as the sentinel so the commit stays reachable.
		elapsed = record.ElapsedSentinel
	}

	snap := coremission.Snapshot{
		State:           st.State,
		NavigationState: st.NavigationState,
		TransportState:  st.TransportState,
	}
	outcome := coremission.Classify(snap, launchedAt != "", elapsed == record.ElapsedSentinel)

	now := time.Now()
	finished := formatArrivingTime(st.ArrivingTime)
	if finished == "" {
		// No arriving time reported yet: keep the stored timestamp.
		finished = record.FinishedAt(lines, i)
	}

	switch outcome {
	case coremission.OutcomeStarted:
		if launchedAt == "" {
			record.SetLaunchedAt(lines, i, now.Format(record.TimeLayout))
		}
		record.SetFinished(lines, i, finished, elapsed)

	case coremission.OutcomeCompleted:
		if start, err := time.Parse(record.TimeLayout, launchedAt); err == nil {
			diff := now.Sub(start).Truncate(time.Second)
			record.SetFinished(lines, i, finished, diff.String())
		} else {
			// Unparseable launch stamp: keep the sentinel rather than
			// committing a bogus duration.
			record.SetFinished(lines, i, finished, elapsed)
		}

	default:
		record.SetFinished(lines, i, finished, elapsed)
	}

	record.SetFault(lines, i, veh.FirstError(), veh.FirstAlarm())
	record.SetStates(lines, i, st.State, st.NavigationState, st.TransportState)
	record.SetMessages(lines, i, strings.Join(veh.Messages, ", "))

	return true
}

// joinByID joins log ids against polled missions, first match wins,
// preserving the encounter order of the mission list.
func joinByID(ids []string, missions []secondary.MissionStatus) map[string]secondary.MissionStatus {
	matches := make(map[string]secondary.MissionStatus, len(ids))
	for _, id := range ids {
		if _, done := matches[id]; done {
			continue
		}
		for _, m := range missions {
			if m.MissionID == id {
				matches[id] = m
				break
			}
		}
	}
	return matches
}

// arrivingTimeLayouts are the timestamp shapes the controller has been
// observed to emit for arrivingtime.
var arrivingTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// formatArrivingTime renders the controller's ISO timestamp in the
// day-log format, or "" when absent or unparseable.
func formatArrivingTime(iso string) string {
	if iso == "" {
		return ""
	}
	for _, layout := range arrivingTimeLayouts {
		if ts, err := time.Parse(layout, iso); err == nil {
			return ts.Format(record.TimeLayout)
		}
	}
	return ""
}

// Ensure ReconcileServiceImpl implements the interface
var _ primary.ReconcileService = (*ReconcileServiceImpl)(nil)
