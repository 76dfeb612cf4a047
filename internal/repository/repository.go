package repository

import (
	"context"
	"database/sql"
	"time"

	"sundial"
)

// StateRepo persists the single runtime-state row for restart continuity.
type StateRepo interface {
	Save(ctx context.Context, s sundial.RuntimeState) error
	Load(ctx context.Context) (sundial.RuntimeState, error)
}

// EventRepo is the append-only command/phase event log.
type EventRepo interface {
	Append(ctx context.Context, e sundial.Event) error
	List(ctx context.Context, from, to time.Time, typ string) ([]sundial.Event, error)
}

// StatusRepo publishes the line-oriented status representation consumed by
// external tooling (status bars) and by the CLI fallback path.
type StatusRepo interface {
	Write(s sundial.RuntimeState) error
	Read() (Status, error)
}

// Repository aggregates the persistence backends.
type Repository struct {
	StateRepo  StateRepo
	EventRepo  EventRepo
	StatusRepo StatusRepo
}

// NewRepository wires the SQLite-backed repositories plus the status file.
func NewRepository(db *sql.DB, statusPath string) *Repository {
	return &Repository{
		StateRepo:  NewStateSQLite(db),
		EventRepo:  NewEventSQLite(db),
		StatusRepo: NewStatusFile(statusPath),
	}
}
