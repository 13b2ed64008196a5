package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/example/agvlog/internal/wire"
)

// WatchCmd returns the watch command.
func WatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the reconciliation loop in the foreground",
		Long: `Poll the fleet controller and keep today's log file current.

Only one watcher may run per log directory; a second invocation exits
immediately. Stop with Ctrl-C or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()

			lock := flock.New(filepath.Join(cfg.LogDir, "watch.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("failed to acquire watcher lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("watcher already running for %s", cfg.LogDir)
			}
			defer lock.Unlock()

			logFile, err := os.OpenFile(filepath.Join(cfg.LogDir, "watch.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("failed to open watch log: %w", err)
			}
			defer logFile.Close()

			logger := log.New(io.MultiWriter(os.Stdout, logFile), "", log.LstdFlags)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return wire.Poller(logger).Run(ctx)
		},
	}
}
