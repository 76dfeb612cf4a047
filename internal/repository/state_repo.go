package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sundial"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

// constants and helpers for clarity and reuse
const (
	runtimeStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO runtime_state (id, temp, target, phase, progress, eased_progress, paused, override_temp, last_sent_temp, tick_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			temp=excluded.temp,
			target=excluded.target,
			phase=excluded.phase,
			progress=excluded.progress,
			eased_progress=excluded.eased_progress,
			paused=excluded.paused,
			override_temp=excluded.override_temp,
			last_sent_temp=excluded.last_sent_temp,
			tick_count=excluded.tick_count,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, temp, target, phase, progress, eased_progress, paused, override_temp, last_sent_temp, tick_count, updated_at
		FROM runtime_state WHERE id=?
	`
)

// Save updates or inserts the runtime_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state sundial.RuntimeState) error {
	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		runtimeStateRowID,
		state.CurrentTemp,
		state.TargetTemp,
		string(state.Phase),
		state.Progress,
		state.EasedProgress,
		state.Paused,
		state.OverrideTemp,
		state.LastSentTemp,
		state.TickCount,
		tsUTC,
	)
	return err
}

// Load fetches the single runtime_state row (id=1).
// A missing row is not an error: a zero-ID state signals "no state yet".
func (r *StateSQLite) Load(ctx context.Context) (sundial.RuntimeState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, runtimeStateRowID)

	var s sundial.RuntimeState
	var phase string
	if err := row.Scan(
		&s.ID,
		&s.CurrentTemp,
		&s.TargetTemp,
		&phase,
		&s.Progress,
		&s.EasedProgress,
		&s.Paused,
		&s.OverrideTemp,
		&s.LastSentTemp,
		&s.TickCount,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sundial.RuntimeState{}, nil
		}
		return sundial.RuntimeState{}, err
	}

	s.Phase = sundial.Phase(phase)
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
