package service

import (
	"context"
	"time"

	"sundial"
	"sundial/internal/config"
	"sundial/internal/logger"
	"sundial/internal/repository"
)

// DaemonService drives the recurring tick: recompute, change-suppressed
// setter invocation, periodic status publication.
type DaemonService struct {
	cfg        *config.Config
	controller Controller
	setter     Setter
	statusRepo repository.StatusRepo
	eventRepo  repository.EventRepo
	log        *logger.Logger

	// applyFailing tracks the setter's health so a dead backend produces one
	// ERROR event on the falling edge instead of one per tick.
	applyFailing bool
}

// NewDaemonService wires the tick loop dependencies.
func NewDaemonService(cfg *config.Config, controller Controller, setter Setter, statusRepo repository.StatusRepo, eventRepo repository.EventRepo, log *logger.Logger) *DaemonService {
	return &DaemonService{
		cfg:        cfg,
		controller: controller,
		setter:     setter,
		statusRepo: statusRepo,
		eventRepo:  eventRepo,
		log:        log,
	}
}

// Run ticks at the configured interval until ctx is canceled. The first tick
// fires immediately so the display is corrected at startup, not one interval
// later.
func (d *DaemonService) Run(ctx context.Context) {
	t := time.NewTicker(d.cfg.TickInterval())
	defer t.Stop()

	d.runTick(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			d.shutdown()
			return
		case now := <-t.C:
			d.runTick(ctx, now)
		}
	}
}

// runTick performs a single loop iteration.
func (d *DaemonService) runTick(ctx context.Context, now time.Time) {
	st := d.controller.Tick(ctx, now)

	if !st.Paused {
		d.applyTemperature(ctx, st)
	}

	interval := d.cfg.Daemon.StatusUpdateInterval
	if interval == 0 || st.TickCount%uint64(interval) == 0 {
		if err := d.statusRepo.Write(st); err != nil {
			d.log.Warnw("failed to write status file", "err", err)
		}
	}

	d.log.Debugw("tick",
		"phase", st.Phase,
		"temp", st.CurrentTemp,
		"target", st.TargetTemp,
		"progress", st.Progress,
		"paused", st.Paused,
	)
}

// applyTemperature invokes the external setter when the change-suppression
// policy calls for it. The call runs under its own timeout, detached from the
// loop context, so an in-flight invocation may finish during shutdown and a
// hung tool cannot stall the loop past the bound.
func (d *DaemonService) applyTemperature(ctx context.Context, st sundial.RuntimeState) {
	if !shouldApply(d.cfg.Daemon.OptimizeUpdates, st.LastSentTemp, st.CurrentTemp) {
		return
	}

	applyCtx, cancel := context.WithTimeout(context.Background(), d.cfg.SetterTimeout())
	err := d.setter.Apply(applyCtx, st.CurrentTemp)
	cancel()

	if err != nil {
		// Non-fatal: state stays accurate for queries, retry next tick.
		d.log.Errorw("failed to set display temperature", "temp", st.CurrentTemp, "err", err)
		if !d.applyFailing {
			d.appendEvent(ctx, sundial.Event{
				Type:        sundial.EventError,
				Description: "External setter failing",
				Metadata:    map[string]any{"temp": st.CurrentTemp, "error": err.Error()},
			})
		}
		d.applyFailing = true
		return
	}

	d.applyFailing = false
	d.controller.MarkApplied(ctx, st.CurrentTemp)
}

// shouldApply decides whether the external setter is invoked this tick.
// With optimization off every tick applies; otherwise only a change since the
// last successful application does. A zero lastSent means nothing was ever
// applied.
func shouldApply(optimizeUpdates bool, lastSent, current int) bool {
	if !optimizeUpdates {
		return true
	}
	return lastSent == 0 || lastSent != current
}

// shutdown publishes a final status snapshot so external readers see the
// state the daemon exited with. The controller persisted state on every tick.
func (d *DaemonService) shutdown() {
	st := d.controller.Snapshot()
	if err := d.statusRepo.Write(st); err != nil {
		d.log.Warnw("failed to write final status", "err", err)
	}
	d.log.Infow("daemon stopped", "temp", st.CurrentTemp, "phase", st.Phase)
}

func (d *DaemonService) appendEvent(ctx context.Context, e sundial.Event) {
	if d.eventRepo == nil {
		return
	}
	if err := d.eventRepo.Append(ctx, e); err != nil {
		d.log.Warnw("failed to append event", "type", e.Type, "err", err)
	}
}
