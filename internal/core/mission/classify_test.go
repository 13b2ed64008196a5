package mission

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		snap           Snapshot
		launched       bool
		elapsedPending bool
		want           Outcome
	}{
		{
			name:           "running triple classifies as started",
			snap:           Snapshot{State: 2, NavigationState: 3, TransportState: 4},
			launched:       false,
			elapsedPending: true,
			want:           OutcomeStarted,
		},
		{
			name:           "running triple stays started once launched",
			snap:           Snapshot{State: 2, NavigationState: 3, TransportState: 4},
			launched:       true,
			elapsedPending: true,
			want:           OutcomeStarted,
		},
		{
			name:           "terminal transport with launch pending elapsed completes",
			snap:           Snapshot{State: 4, NavigationState: 0, TransportState: 8},
			launched:       true,
			elapsedPending: true,
			want:           OutcomeCompleted,
		},
		{
			name:           "terminal transport without launch stamp stays in progress",
			snap:           Snapshot{State: 4, NavigationState: 0, TransportState: 8},
			launched:       false,
			elapsedPending: true,
			want:           OutcomeInProgress,
		},
		{
			name:           "terminal transport after elapsed commit stays in progress",
			snap:           Snapshot{State: 4, NavigationState: 0, TransportState: 8},
			launched:       true,
			elapsedPending: false,
			want:           OutcomeInProgress,
		},
		{
			name:           "partial running triple is not started",
			snap:           Snapshot{State: 2, NavigationState: 3, TransportState: 7},
			launched:       false,
			elapsedPending: true,
			want:           OutcomeInProgress,
		},
		{
			name:           "idle vehicle is in progress branch",
			snap:           Snapshot{State: 0, NavigationState: 0, TransportState: 0},
			launched:       false,
			elapsedPending: true,
			want:           OutcomeInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.snap, tt.launched, tt.elapsedPending)
			if got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Once the elapsed value has been committed, no snapshot whatsoever may
// reach the completed branch again.
func TestClassifyCommitIsExactlyOnce(t *testing.T) {
	snaps := []Snapshot{
		{State: 2, NavigationState: 3, TransportState: 4},
		{State: 4, NavigationState: 0, TransportState: 8},
		{State: 0, NavigationState: 0, TransportState: 0},
		{State: 2, NavigationState: 3, TransportState: 8},
		{State: 9, NavigationState: 9, TransportState: 8},
	}

	for _, snap := range snaps {
		if got := Classify(snap, true, false); got == OutcomeCompleted {
			t.Errorf("Classify(%+v, launched, committed) = completed, want any other branch", snap)
		}
	}
}

func TestSnapshotUnderway(t *testing.T) {
	if !(Snapshot{State: 2, NavigationState: 3, TransportState: 4}).Underway() {
		t.Error("expected (2,3,4) to be underway")
	}
	if (Snapshot{State: 2, NavigationState: 3, TransportState: 8}).Underway() {
		t.Error("did not expect (2,3,8) to be underway")
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeStarted.String() != "started" {
		t.Errorf("OutcomeStarted.String() = %q", OutcomeStarted.String())
	}
	if OutcomeCompleted.String() != "completed" {
		t.Errorf("OutcomeCompleted.String() = %q", OutcomeCompleted.String())
	}
	if OutcomeInProgress.String() != "in-progress" {
		t.Errorf("OutcomeInProgress.String() = %q", OutcomeInProgress.String())
	}
}
