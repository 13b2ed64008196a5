// Package secondary defines the secondary ports (driven adapters) for
// the application. These are the interfaces through which the
// application drives external systems.
package secondary

import "context"

// RetCode is the result code returned by the fleet controller for a
// mission submission.
type RetCode int

// RetCodeNoError means the controller accepted the mission.
const RetCodeNoError RetCode = 0

// MissionType identifies the kind of mission being submitted.
type MissionType int

// MissionTypeNodeToNode is a plain pick/drop transport between two
// named nodes.
const MissionTypeNodeToNode MissionType = 0

// MissionSubmission is the request sent to the controller when
// dispatching a mission.
type MissionSubmission struct {
	Type     MissionType
	FromNode string
	ToNode   string
	Payload  string
	// Reference is a client-generated correlation id attached to the
	// submission so operator logs can be matched with controller logs.
	Reference string
}

// SubmitResult is the controller's answer to a mission submission.
type SubmitResult struct {
	RetCode            RetCode
	AcceptedMissionIDs []string
}

// MissionStatus is the live state of one mission as reported by the
// controller.
type MissionStatus struct {
	MissionID       string
	State           int
	NavigationState int
	TransportState  int
	// ArrivingTime is an ISO 8601 timestamp, empty when the
	// controller has not estimated or recorded an arrival yet.
	ArrivingTime string
}

// VehicleSnapshot is the telemetry reported for one vehicle. Any field
// may be absent upstream and defaults to empty; use the accessors
// instead of indexing the slices.
type VehicleSnapshot struct {
	States   []string // state["vehicle.state"]
	Errors   []string // state["errors"]
	Battery  []string // state["battery.info"]
	Messages []string // state["messages"]
	Alarms   []string
}

// StateToken returns the first reported vehicle state, or "".
func (v VehicleSnapshot) StateToken() string { return first(v.States) }

// FirstError returns the first reported error, or "".
func (v VehicleSnapshot) FirstError() string { return first(v.Errors) }

// FirstAlarm returns the first reported alarm, or "".
func (v VehicleSnapshot) FirstAlarm() string { return first(v.Alarms) }

// BatteryInfo returns the first battery info value, or "".
func (v VehicleSnapshot) BatteryInfo() string { return first(v.Battery) }

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// MissionSubmitter dispatches missions to the fleet controller.
type MissionSubmitter interface {
	// Submit sends a mission to the controller and returns its verdict.
	Submit(ctx context.Context, sub MissionSubmission) (*SubmitResult, error)
}

// MissionQuerier retrieves live mission state from the fleet controller.
type MissionQuerier interface {
	// RecentMissions returns up to limit of the most recent missions,
	// newest first.
	RecentMissions(ctx context.Context, limit int) ([]MissionStatus, error)
}

// VehicleTelemetry retrieves live vehicle state from the fleet
// controller.
type VehicleTelemetry interface {
	// Vehicle returns the telemetry snapshot for the named vehicle.
	Vehicle(ctx context.Context, name string) (*VehicleSnapshot, error)
}
