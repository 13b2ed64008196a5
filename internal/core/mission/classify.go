// Package mission contains the pure classification logic for polled
// mission state. This is part of the Functional Core - no I/O, only
// pure functions.
package mission

// State codes reported by the fleet controller.
const (
	// StateRunning is the mission state while the vehicle executes it.
	StateRunning = 2
	// NavigationNavigating is the navigation state while driving.
	NavigationNavigating = 3
	// TransportTransporting is the transport state while carrying.
	TransportTransporting = 4
	// TransportDone is the terminal transport state of a delivered
	// mission.
	TransportDone = 8
)

// Snapshot is the (state, navigationState, transportState) triple
// reported for a mission by the controller.
type Snapshot struct {
	State           int
	NavigationState int
	TransportState  int
}

// Underway reports whether the triple means the vehicle is actively
// running the mission. All three codes must agree.
func (s Snapshot) Underway() bool {
	return s.State == StateRunning &&
		s.NavigationState == NavigationNavigating &&
		s.TransportState == TransportTransporting
}

// Outcome is the ternary reconciliation branch for one record.
type Outcome int

const (
	// OutcomeInProgress refreshes the live fields and the tentative
	// finish timestamp; the stored elapsed value is carried over.
	OutcomeInProgress Outcome = iota
	// OutcomeStarted additionally stamps the launch time if it is not
	// set yet. The elapsed value is never computed in this branch.
	OutcomeStarted
	// OutcomeCompleted commits the elapsed time. This branch is
	// reachable at most once per record: it requires the stored
	// elapsed field to still hold the sentinel.
	OutcomeCompleted
)

// String returns the branch name for logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeStarted:
		return "started"
	case OutcomeCompleted:
		return "completed"
	default:
		return "in-progress"
	}
}

// Classify decides the reconciliation branch for a record.
//
// launched reports whether the record already carries a launch
// timestamp; elapsedPending reports whether the stored time-difference
// field still holds the sentinel. Once the elapsed value has been
// committed, Classify can never return OutcomeCompleted again for the
// record, which makes the commit exactly-once by construction. Live
// fields keep refreshing after completion regardless of branch; only
// the elapsed field is terminal.
func Classify(s Snapshot, launched, elapsedPending bool) Outcome {
	if s.Underway() {
		return OutcomeStarted
	}
	if s.TransportState == TransportDone && launched && elapsedPending {
		return OutcomeCompleted
	}
	return OutcomeInProgress
}
