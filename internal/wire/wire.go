// Package wire provides dependency injection for the agvlog
// application. It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/agvlog/internal/adapters/antserver"
	"github.com/example/agvlog/internal/adapters/logfile"
	tmuxadapter "github.com/example/agvlog/internal/adapters/tmux"
	"github.com/example/agvlog/internal/app"
	"github.com/example/agvlog/internal/config"
	"github.com/example/agvlog/internal/ports/primary"
	"github.com/example/agvlog/internal/ports/secondary"
)

var (
	cfg              *config.Config
	store            *logfile.Store
	client           *antserver.Client
	reconcileService primary.ReconcileService
	launchService    primary.LaunchService
	sweeper          *app.Sweeper
	viewer           secondary.Viewer
	once             sync.Once
)

// Config returns the singleton loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// DayLog returns the singleton day-log store.
func DayLog() secondary.DayLog {
	once.Do(initServices)
	return store
}

// ReconcileService returns the singleton ReconcileService instance.
func ReconcileService() primary.ReconcileService {
	once.Do(initServices)
	return reconcileService
}

// LaunchService returns the singleton LaunchService instance.
func LaunchService() primary.LaunchService {
	once.Do(initServices)
	return launchService
}

// Sweeper returns the singleton retention sweeper.
func Sweeper() *app.Sweeper {
	once.Do(initServices)
	return sweeper
}

// Viewer returns the singleton watcher-session viewer.
func Viewer() secondary.Viewer {
	once.Do(initServices)
	return viewer
}

// Poller returns a new poller writing its cycle log through the given
// logger. Each call creates a fresh poller; the loop lifetime belongs
// to the caller.
func Poller(logger *log.Logger) *app.Poller {
	once.Do(initServices)
	return app.NewPoller(
		reconcileService,
		client,
		store,
		cfg.VehicleName,
		cfg.PollInterval(),
		logger,
	)
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load(".")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store, err = logfile.NewStore(cfg.LogDir)
	if err != nil {
		log.Fatalf("failed to open log directory: %v", err)
	}

	client = antserver.NewClient(cfg.ServerURL, cfg.APIKey, cfg.RequestTimeout())

	reconcileService = app.NewReconcileService(client, client, store, cfg.VehicleName, cfg.QueryWindow)
	launchService = app.NewLaunchService(client, client, client, store, reconcileService, cfg.VehicleName)
	sweeper = app.NewSweeper(cfg.LogDir, cfg.RetentionDays)
	viewer = tmuxadapter.NewAdapter(cfg.ViewerSession)
}
