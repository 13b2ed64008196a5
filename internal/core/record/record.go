// Package record contains the codec for the day-log record format.
// This is part of the Functional Core - no I/O, only pure functions
// over slices of lines.
//
// A mission is persisted as a contiguous block of fixed-purpose lines.
// Every field lives at a fixed offset from the "ID:" marker line, and
// this package owns all of those offsets: nothing else in the repo is
// allowed to do line arithmetic on a day file.
package record

import (
	"fmt"
	"strings"
)

// TimeLayout is the timestamp format used inside record blocks.
const TimeLayout = "02-01-2006 15:04:05"

// DateLayout is the date-stamp format used for day-file names.
const DateLayout = "02-01-2006"

// ElapsedSentinel is the placeholder written to the time-difference
// field until the mission is observed complete. Once the field holds a
// concrete duration it is never rewritten.
const ElapsedSentinel = "N/A"

// idMarker is the literal label token that identifies the join-key line.
const idMarker = "ID:"

// separator closes every record block.
var separator = strings.Repeat("-", 125)

// Line offsets relative to the "ID:" marker line. Layout version 1.
const (
	offFromNode   = -2
	offToNode     = -1
	offLaunchedAt = 1
	offFinished   = 2
	offError      = 3
	offAlarm      = 4
	offBattery    = 5
	offVehicle    = 6
	offState      = 7
	offNavigation = 8
	offTransport  = 9
	offMessages   = 10
)

// BlockLines is the total line count of one encoded record block.
const BlockLines = 15

// MissionRecord is one entry per dispatched mission.
type MissionRecord struct {
	FromNode  string
	ToNode    string
	MissionID string

	LaunchedAt     string // empty until first observed in progress
	FinishedAt     string
	TimeDifference string // ElapsedSentinel or a concrete duration

	Errors []string
	Alarms []string

	BatteryPercent       string // snapshot captured at creation
	VehicleStateAtLaunch string // snapshot captured at creation

	State           int
	NavigationState int
	TransportState  int

	Messages []string
}

// Encode renders the record as its fixed multi-line block. The output
// is deterministic; free-text list fields are comma-joined and are not
// round-trippable when a value itself contains ", ".
func Encode(r MissionRecord) []string {
	return []string{
		fmt.Sprintf(" From Node: %s ", r.FromNode),
		fmt.Sprintf(" To Node: %s ", r.ToNode),
		fmt.Sprintf(" ID: %s ", r.MissionID),
		fmt.Sprintf(" Mission launched at: %s", r.LaunchedAt),
		finishLine(r.FinishedAt, r.TimeDifference),
		fmt.Sprintf(" Error: %s", strings.Join(r.Errors, ", ")),
		fmt.Sprintf(" Alarm: %s", strings.Join(r.Alarms, ", ")),
		fmt.Sprintf(" Battery: %s%% ", r.BatteryPercent),
		fmt.Sprintf(" Vehicle state: %s", r.VehicleStateAtLaunch),
		fmt.Sprintf(" State: %d", r.State),
		fmt.Sprintf(" Navigation state: %d", r.NavigationState),
		fmt.Sprintf(" Transport state: %d", r.TransportState),
		fmt.Sprintf(" Messages: %s", strings.Join(r.Messages, ", ")),
		separator,
		"",
	}
}

func finishLine(finishedAt, elapsed string) string {
	return fmt.Sprintf(" Finished at:         %s | Time difference: %s", finishedAt, elapsed)
}

// FindID returns the index of the "ID:" marker line holding missionID.
// The id is the whitespace token immediately following the literal
// "ID:"; the first match wins.
func FindID(lines []string, missionID string) (int, bool) {
	for i, line := range lines {
		if id, ok := idToken(line); ok && id == missionID {
			return i, true
		}
	}
	return 0, false
}

// ExtractIDs returns every mission id in the given lines, in order.
// Duplicates are preserved positionally.
func ExtractIDs(lines []string) []string {
	var ids []string
	for _, line := range lines {
		if id, ok := idToken(line); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// MarkerIndexes returns the index of every "ID:" marker line, in order.
func MarkerIndexes(lines []string) []int {
	var idx []int
	for i, line := range lines {
		if _, ok := idToken(line); ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// idToken extracts the token following the "ID:" label, if present.
func idToken(line string) (string, bool) {
	fields := strings.Fields(line)
	for i, f := range fields {
		if f == idMarker && i+1 < len(fields) {
			return fields[i+1], true
		}
	}
	return "", false
}

// Fits reports whether a full record block can be addressed from the
// marker line at index i. A block that fails this check is malformed
// and must be skipped, never partially rewritten.
func Fits(lines []string, i int) bool {
	if i+offFromNode < 0 || i+offMessages >= len(lines) {
		return false
	}
	return strings.Contains(lines[i+offFinished], "Finished at:")
}

// LaunchedAt returns the launch timestamp stored in the block at marker
// index i, or "" when the mission has not been observed in progress.
func LaunchedAt(lines []string, i int) string {
	_, val, ok := strings.Cut(lines[i+offLaunchedAt], ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(val)
}

// FinishedAt returns the finish timestamp stored in the block at marker
// index i, or "".
func FinishedAt(lines []string, i int) string {
	head, _, ok := strings.Cut(lines[i+offFinished], "|")
	if !ok {
		head = lines[i+offFinished]
	}
	val, ok := strings.CutPrefix(strings.TrimSpace(head), "Finished at:")
	if !ok {
		return ""
	}
	return strings.TrimSpace(val)
}

// TimeDifference returns the elapsed-time field of the block at marker
// index i: ElapsedSentinel, a concrete duration, or "" when the finish
// line does not carry the field at all.
func TimeDifference(lines []string, i int) string {
	_, after, ok := strings.Cut(lines[i+offFinished], "|")
	if !ok {
		return ""
	}
	val, ok := strings.CutPrefix(strings.TrimSpace(after), "Time difference:")
	if !ok {
		return ""
	}
	return strings.TrimSpace(val)
}

// SetLaunchedAt stamps the launch timestamp line.
func SetLaunchedAt(lines []string, i int, ts string) {
	lines[i+offLaunchedAt] = fmt.Sprintf(" Mission launched at: %s", ts)
}

// SetFinished rewrites the finish line with the given finish timestamp
// and elapsed-time value. Callers must pass the previously stored
// elapsed value unless they are the single commit point.
func SetFinished(lines []string, i int, finishedAt, elapsed string) {
	lines[i+offFinished] = finishLine(finishedAt, elapsed)
}

// SetFault rewrites the last-observed error and alarm lines.
func SetFault(lines []string, i int, errText, alarmText string) {
	lines[i+offError] = fmt.Sprintf(" Error: %s", errText)
	lines[i+offAlarm] = fmt.Sprintf(" Alarm: %s", alarmText)
}

// SetStates rewrites the three live state code lines.
func SetStates(lines []string, i, state, navigation, transport int) {
	lines[i+offState] = fmt.Sprintf(" State: %d", state)
	lines[i+offNavigation] = fmt.Sprintf(" Navigation state: %d", navigation)
	lines[i+offTransport] = fmt.Sprintf(" Transport state: %d", transport)
}

// SetMessages rewrites the last-observed vehicle message line.
func SetMessages(lines []string, i int, messages string) {
	lines[i+offMessages] = fmt.Sprintf(" Messages: %s", messages)
}

// BlockSlice returns the block's lines from the From-Node line through
// the Messages line, for display purposes.
func BlockSlice(lines []string, i int) []string {
	return lines[i+offFromNode : i+offMessages+1]
}
