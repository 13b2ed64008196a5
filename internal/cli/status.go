package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/example/agvlog/internal/core/record"
	"github.com/example/agvlog/internal/wire"
)

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	faultStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

// StatusCmd returns the status command.
func StatusCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the most recent missions from today's log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			dayLog := wire.DayLog()

			path, err := dayLog.LatestPath(ctx)
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Println("No mission log files found")
				return nil
			}

			lines, err := dayLog.ReadAll(ctx, path)
			if err != nil {
				return err
			}

			markers := record.MarkerIndexes(lines)
			if len(markers) == 0 {
				fmt.Printf("No missions recorded in %s\n", filepath.Base(path))
				return nil
			}

			fmt.Printf("\n%s (%d missions)\n\n", filepath.Base(path), len(markers))

			shown := 0
			for _, i := range markers {
				if shown >= count {
					break
				}
				if !record.Fits(lines, i) {
					continue
				}
				printBlock(lines, i)
				shown++
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of missions to show, newest first")
	return cmd
}

// printBlock renders one mission block with a colored verdict line.
func printBlock(lines []string, i int) {
	elapsed := record.TimeDifference(lines, i)
	launched := record.LaunchedAt(lines, i)

	var verdict string
	switch {
	case elapsed != "" && elapsed != record.ElapsedSentinel:
		verdict = doneStyle.Render(fmt.Sprintf("done in %s", elapsed))
	case launched != "":
		verdict = pendingStyle.Render("in progress")
	default:
		verdict = faultStyle.Render("not yet started")
	}

	fmt.Printf("%s  %s\n", lines[i], verdict)
	for _, line := range record.BlockSlice(lines, i) {
		if line == lines[i] {
			continue
		}
		fmt.Println(detailStyle.Render(line))
	}
	fmt.Println()
}
