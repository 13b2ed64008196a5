package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/agvlog/internal/core/record"
	"github.com/example/agvlog/internal/ports/primary"
	"github.com/example/agvlog/internal/ports/secondary"
)

// defaultPayload is sent with every node-to-node submission.
const defaultPayload = "Default Payload"

// LaunchServiceImpl implements the LaunchService interface.
type LaunchServiceImpl struct {
	submitter   secondary.MissionSubmitter
	querier     secondary.MissionQuerier
	telemetry   secondary.VehicleTelemetry
	log         secondary.DayLog
	reconciler  primary.ReconcileService
	vehicleName string
}

// NewLaunchService creates a new LaunchService with injected
// dependencies.
func NewLaunchService(
	submitter secondary.MissionSubmitter,
	querier secondary.MissionQuerier,
	telemetry secondary.VehicleTelemetry,
	log secondary.DayLog,
	reconciler primary.ReconcileService,
	vehicleName string,
) *LaunchServiceImpl {
	return &LaunchServiceImpl{
		submitter:   submitter,
		querier:     querier,
		telemetry:   telemetry,
		log:         log,
		reconciler:  reconciler,
		vehicleName: vehicleName,
	}
}

// LaunchMission dispatches a node-to-node mission and, on acceptance,
// records it at the top of today's log file. The record is seeded with
// a telemetry snapshot and with the state codes of the most recently
// polled mission as initial display values; the first reconciliation
// pass replaces them with the new mission's own state.
func (s *LaunchServiceImpl) LaunchMission(ctx context.Context, req primary.LaunchMissionRequest) (*primary.LaunchMissionResponse, error) {
	res, err := s.submitter.Submit(ctx, secondary.MissionSubmission{
		Type:      secondary.MissionTypeNodeToNode,
		FromNode:  req.FromNode,
		ToNode:    req.ToNode,
		Payload:   defaultPayload,
		Reference: uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit mission: %w", err)
	}
	if res.RetCode != secondary.RetCodeNoError {
		return nil, fmt.Errorf("mission rejected by controller (retcode %d)", res.RetCode)
	}
	if len(res.AcceptedMissionIDs) == 0 {
		return nil, fmt.Errorf("controller accepted the mission but returned no id")
	}
	missionID := res.AcceptedMissionIDs[0]

	// Initial display values come from the most recent mission known
	// to the controller, not the one just submitted.
	var seed secondary.MissionStatus
	if recent, err := s.querier.RecentMissions(ctx, 1); err == nil && len(recent) > 0 {
		seed = recent[0]
	}

	// Telemetry degrades to an empty snapshot; the record is created
	// either way.
	veh, err := s.telemetry.Vehicle(ctx, s.vehicleName)
	if err != nil {
		veh = &secondary.VehicleSnapshot{}
	}

	rec := record.MissionRecord{
		FromNode:             req.FromNode,
		ToNode:               req.ToNode,
		MissionID:            missionID,
		FinishedAt:           time.Now().Format(record.TimeLayout),
		TimeDifference:       record.ElapsedSentinel,
		Errors:               veh.Errors,
		Alarms:               veh.Alarms,
		BatteryPercent:       veh.BatteryInfo(),
		VehicleStateAtLaunch: veh.StateToken(),
		State:                seed.State,
		NavigationState:      seed.NavigationState,
		TransportState:       seed.TransportState,
	}

	path, err := s.log.Create(ctx, record.Encode(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to create log record: %w", err)
	}

	// Pull the dispatched mission's own state right away. Best
	// effort: a failed pass is retried by the poller.
	_ = s.reconciler.Reconcile(ctx, path)

	return &primary.LaunchMissionResponse{
		MissionID: missionID,
		LogPath:   path,
	}, nil
}

// Ensure LaunchServiceImpl implements the interface
var _ primary.LaunchService = (*LaunchServiceImpl)(nil)
