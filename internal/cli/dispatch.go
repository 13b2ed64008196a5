package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/agvlog/internal/ports/primary"
	"github.com/example/agvlog/internal/wire"
)

// RunDispatch is the root command handler: submit a node-to-node
// mission and record it in today's log file.
func RunDispatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	fromNode, toNode := args[0], args[1]

	// Expired day files are pruned on every dispatch so the directory
	// never needs a separate maintenance schedule.
	if removed, err := wire.Sweeper().Sweep(ctx); err != nil {
		fmt.Printf("warning: retention sweep failed: %v\n", err)
	} else if len(removed) > 0 {
		fmt.Printf("removed %d expired log file(s)\n", len(removed))
	}

	resp, err := wire.LaunchService().LaunchMission(ctx, primary.LaunchMissionRequest{
		FromNode: fromNode,
		ToNode:   toNode,
	})
	if err != nil {
		return err
	}

	color.Green("✓ Mission %s dispatched: %s -> %s", resp.MissionID, fromNode, toNode)
	fmt.Printf("Recorded in %s\n", resp.LogPath)

	ensureViewer(ctx)
	return nil
}

// ensureViewer starts the watcher session if it is not already running.
// Viewer problems never fail a dispatch; the record is already written.
func ensureViewer(ctx context.Context) {
	viewer := wire.Viewer()

	running, err := viewer.Running(ctx)
	if err != nil {
		fmt.Printf("watcher session unavailable (%v); run 'agvlog watch' manually\n", err)
		return
	}
	if running {
		return
	}
	if err := viewer.Launch(ctx); err != nil {
		fmt.Printf("failed to start watcher session (%v); run 'agvlog watch' manually\n", err)
		return
	}
	fmt.Printf("started watcher session %q\n", wire.Config().ViewerSession)
}
