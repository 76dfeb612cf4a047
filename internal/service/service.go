package service

import (
	"context"
	"time"

	"sundial"
	"sundial/internal/config"
	"sundial/internal/logger"
	"sundial/internal/repository"
	"sundial/internal/schedule"
)

// Controller owns the runtime state. Every mutation goes through one of the
// named operations; queries return copies and never block on external calls.
type Controller interface {
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	SetOverride(ctx context.Context, kelvin int) error
	Snapshot() sundial.RuntimeState
	Tick(ctx context.Context, now time.Time) sundial.RuntimeState
	MarkApplied(ctx context.Context, kelvin int)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]sundial.Event, error)
}

// Daemon runs the background tick loop that recomputes the target and drives
// the external setter. Stop via context cancellation for graceful shutdown.
type Daemon interface {
	Run(ctx context.Context)
}

// Setter is the boundary to the external display-temperature tool.
// Apply is fallible and retried on the next tick; it must respect ctx.
type Setter interface {
	Apply(ctx context.Context, kelvin int) error
}

// Service aggregates all sub-services.
type Service struct {
	Controller
	EventLog
	Daemon
}

// NewService wires the repository layer into concrete services.
func NewService(ctx context.Context, cfg *config.Config, sched *schedule.Schedule, repos *repository.Repository, log *logger.Logger) (*Service, error) {
	ctrl, err := NewControllerService(ctx, cfg, sched, repos.StateRepo, repos.EventRepo, log)
	if err != nil {
		return nil, err
	}

	setter := NewHyprctlSetter(cfg.Setter.Command)

	return &Service{
		Controller: ctrl,
		EventLog:   NewEventLogService(repos.EventRepo),
		Daemon:     NewDaemonService(cfg, ctrl, setter, repos.StatusRepo, repos.EventRepo, log),
	}, nil
}
