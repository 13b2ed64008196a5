package app

import (
	"context"
	"log"
	"time"

	"github.com/example/agvlog/internal/ports/primary"
	"github.com/example/agvlog/internal/ports/secondary"
)

// vehicleStateMax is the longest state token the controller emits;
// longer tokens are truncated before gating, matching controller
// behavior of suffixing transient detail onto the base state.
const vehicleStateMax = 22

// activeVehicleStates are the vehicle states that warrant a
// reconciliation pass. When the vehicle is idle there is nothing to
// reconcile and polling the mission list is wasted controller load.
var activeVehicleStates = map[string]bool{
	"runningAMission":        true,
	"MovingToChargerParking": true,
	"inError":                true,
}

// Poller runs the reconciler on a fixed interval, gated by the
// vehicle's current motion/fault state. It owns the process-wide
// polling loop lifetime.
type Poller struct {
	reconciler  primary.ReconcileService
	telemetry   secondary.VehicleTelemetry
	log         secondary.DayLog
	vehicleName string
	interval    time.Duration
	logger      *log.Logger
}

// NewPoller creates a poller with injected dependencies. The logger
// receives one line per skipped or failed cycle and is never nil in
// production wiring.
func NewPoller(
	reconciler primary.ReconcileService,
	telemetry secondary.VehicleTelemetry,
	dayLog secondary.DayLog,
	vehicleName string,
	interval time.Duration,
	logger *log.Logger,
) *Poller {
	return &Poller{
		reconciler:  reconciler,
		telemetry:   telemetry,
		log:         dayLog,
		vehicleName: vehicleName,
		interval:    interval,
		logger:      logger,
	}
}

// Run polls until ctx is canceled. An in-flight cycle always finishes
// before Run returns; transient upstream errors are logged and never
// stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Printf("poller starting (vehicle %s, interval %s)", p.vehicleName, p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Println("poller stopping")
			return nil
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

// cycle runs one gated reconciliation attempt.
func (p *Poller) cycle(ctx context.Context) {
	veh, err := p.telemetry.Vehicle(ctx, p.vehicleName)
	if err != nil {
		// Unknown vehicle state: skip this cycle, keep polling.
		p.logger.Printf("skipping cycle: vehicle query failed: %v", err)
		return
	}

	state := veh.StateToken()
	if len(state) > vehicleStateMax {
		state = state[:vehicleStateMax]
	}
	if !activeVehicleStates[state] {
		return
	}

	path, err := p.log.LatestPath(ctx)
	if err != nil {
		p.logger.Printf("skipping cycle: %v", err)
		return
	}
	if path == "" {
		// No day file yet: nothing to reconcile.
		return
	}

	if err := p.reconciler.Reconcile(ctx, path); err != nil {
		p.logger.Printf("reconciliation pass failed: %v", err)
	}
}
