package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"sundial"
	"sundial/internal/config"
	"sundial/internal/logger"
	"sundial/internal/repository"
	"sundial/internal/schedule"
	"sundial/internal/transition"
)

// ErrInvalidTemperature rejects override values that are not positive Kelvin.
var ErrInvalidTemperature = errors.New("temperature must be a positive Kelvin integer")

// ControllerService is the exclusive owner of the runtime state. The tick
// loop and the HTTP command handlers both funnel through its mutex, which
// linearizes commands against ticks.
type ControllerService struct {
	cfg       *config.Config
	sched     *schedule.Schedule
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	log       *logger.Logger
	clock     func() time.Time

	mu    sync.RWMutex
	state sundial.RuntimeState
}

// NewControllerService restores persisted runtime state when available,
// otherwise initializes fresh from the schedule. A corrupt or unreadable
// state row is logged and discarded, never fatal.
func NewControllerService(ctx context.Context, cfg *config.Config, sched *schedule.Schedule, stateRepo repository.StateRepo, eventRepo repository.EventRepo, log *logger.Logger) (*ControllerService, error) {
	c := &ControllerService{
		cfg:       cfg,
		sched:     sched,
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		log:       log,
		clock:     time.Now,
	}

	restored := false
	if stateRepo != nil {
		st, err := stateRepo.Load(ctx)
		switch {
		case err != nil:
			log.Warnw("failed to load persisted state, starting fresh", "err", err)
		case st.ID != 0:
			c.state = st
			restored = true
		}
	}

	if !restored {
		c.state = sundial.RuntimeState{ID: 1}
		c.recompute(c.clock())
	} else if !c.state.Paused && !c.state.Overridden() {
		// The saved snapshot may be hours old; recompute before anyone queries.
		c.recompute(c.clock())
	}

	return c, nil
}

// recompute resolves the schedule at now and updates temperature, phase and
// progress. Callers must hold the write lock (or own the state exclusively).
func (c *ControllerService) recompute(now time.Time) {
	res := c.sched.Resolve(now)
	eased := transition.Ease(c.cfg.Transition.Easing, res.Progress)
	value := transition.Interpolate(res.Phase, eased, c.cfg.Temperature.Day, c.cfg.Temperature.Night)

	c.state.Phase = res.Phase
	c.state.Progress = res.Progress
	c.state.EasedProgress = eased
	c.state.CurrentTemp = transition.Round(value)
	c.state.TargetTemp = c.targetFor(res.Phase)
	c.state.UpdatedAt = now.UTC()
}

// targetFor maps a phase to the extreme it steers toward.
func (c *ControllerService) targetFor(phase sundial.Phase) int {
	switch phase {
	case sundial.PhaseDay, sundial.PhaseToDay:
		return c.cfg.Temperature.Day
	default:
		return c.cfg.Temperature.Night
	}
}

// Tick advances the state by one loop iteration. Recomputation is skipped
// while paused or overridden; tick counting and bookkeeping continue so
// status output stays truthful about elapsed ticks.
func (c *ControllerService) Tick(ctx context.Context, now time.Time) sundial.RuntimeState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.TickCount++

	if !c.state.Paused && !c.state.Overridden() {
		prev := c.state.Phase
		c.recompute(now)
		if prev != "" && prev != c.state.Phase {
			c.appendEvent(ctx, sundial.Event{
				Type:        sundial.EventPhaseChange,
				Description: "Phase changed to " + string(c.state.Phase),
				Metadata: map[string]any{
					"from":   string(prev),
					"to":     string(c.state.Phase),
					"target": c.state.TargetTemp,
				},
			})
		}
	} else {
		c.state.UpdatedAt = now.UTC()
	}

	c.persist(ctx)

	return c.state
}

// Pause freezes the applied temperature. Wall-clock bookkeeping continues;
// the schedule is absolute, so no elapsed-pause offset is ever applied.
func (c *ControllerService) Pause(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Paused {
		return nil
	}
	c.state.Paused = true
	c.state.UpdatedAt = c.clock().UTC()
	c.persist(ctx)
	c.appendEvent(ctx, sundial.Event{
		Type:        sundial.EventPause,
		Description: "Automatic transitions paused",
		Metadata:    map[string]any{"temp": c.state.CurrentTemp},
	})
	return nil
}

// Resume clears the paused flag and any active override, then recomputes
// phase and target from the current wall-clock time.
func (c *ControllerService) Resume(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Paused = false
	c.state.OverrideTemp = 0
	c.recompute(c.clock())
	c.persist(ctx)
	c.appendEvent(ctx, sundial.Event{
		Type:        sundial.EventResume,
		Description: "Automatic transitions resumed",
		Metadata:    map[string]any{"phase": string(c.state.Phase), "target": c.state.TargetTemp},
	})
	return nil
}

// SetOverride forces a temperature and suppresses automatic recomputation
// until Resume clears it. Non-positive values are rejected unchanged.
func (c *ControllerService) SetOverride(ctx context.Context, kelvin int) error {
	if kelvin <= 0 {
		return ErrInvalidTemperature
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.OverrideTemp = kelvin
	c.state.CurrentTemp = kelvin
	c.state.TargetTemp = kelvin
	c.state.Progress = 1
	c.state.EasedProgress = 1
	c.state.UpdatedAt = c.clock().UTC()
	c.persist(ctx)
	c.appendEvent(ctx, sundial.Event{
		Type:        sundial.EventOverride,
		Description: "Temperature override set",
		Metadata:    map[string]any{"temp": kelvin},
	})
	return nil
}

// Snapshot returns a copy of the current state without mutation.
func (c *ControllerService) Snapshot() sundial.RuntimeState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

// MarkApplied records the last value successfully sent to the external setter.
func (c *ControllerService) MarkApplied(ctx context.Context, kelvin int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.LastSentTemp = kelvin
	c.persist(ctx)
}

// persist saves the state best-effort; a failing database must not take the
// tick loop down with it. Callers hold the write lock.
func (c *ControllerService) persist(ctx context.Context) {
	if c.stateRepo == nil {
		return
	}
	if err := c.stateRepo.Save(ctx, c.state); err != nil {
		c.log.Warnw("failed to persist runtime state", "err", err)
	}
}

// appendEvent logs best-effort; event-log failures never fail a command.
func (c *ControllerService) appendEvent(ctx context.Context, e sundial.Event) {
	if c.eventRepo == nil {
		return
	}
	if err := c.eventRepo.Append(ctx, e); err != nil {
		c.log.Warnw("failed to append event", "type", e.Type, "err", err)
	}
}
