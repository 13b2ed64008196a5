package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/agvlog/internal/wire"
)

// SweepCmd returns the sweep command.
func SweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete log files older than the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := wire.Sweeper().Sweep(context.Background())
			if err != nil {
				return err
			}
			if len(removed) == 0 {
				fmt.Println("No expired log files")
				return nil
			}
			for _, name := range removed {
				color.Yellow("deleted %s", name)
			}
			color.Green("✓ Removed %d expired log file(s)", len(removed))
			return nil
		},
	}
}
