package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/example/agvlog/internal/cli"
	"github.com/example/agvlog/internal/version"
)

func main() {
	// Optional .env for controller credentials; absence is fine.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "agvlog <from-node> <to-node>",
		Short:   "agvlog - AGV mission dispatch and day-log reconciliation",
		Version: version.String(),
		Long: `agvlog dispatches node-to-node AGV missions and maintains a
plain-text day log of every mission, reconciled against the fleet
controller until each record carries its final elapsed time.`,
		Args: cobra.ExactArgs(2),
		RunE: cli.RunDispatch,
	}

	rootCmd.AddCommand(cli.WatchCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.SweepCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
