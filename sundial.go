package sundial

import "time"

// Phase is the current segment of the day/night cycle.
type Phase string

const (
	PhaseDay     Phase = "day"
	PhaseNight   Phase = "night"
	PhaseToDay   Phase = "transitioning_to_day"
	PhaseToNight Phase = "transitioning_to_night"
)

// Event types recorded in the event log.
const (
	EventPause       = "PAUSE"
	EventResume      = "RESUME"
	EventOverride    = "OVERRIDE"
	EventPhaseChange = "PHASE_CHANGE"
	EventError       = "ERROR"
)

// RuntimeState is the daemon's mutable state snapshot. It is owned by the
// controller; everything else sees copies.
type RuntimeState struct {
	ID            int       `json:"id"`
	CurrentTemp   int       `json:"temp"`           // Kelvin currently driven to the display
	TargetTemp    int       `json:"target"`         // Kelvin endpoint being steered toward
	Phase         Phase     `json:"phase"`          // day | night | transitioning_*
	Progress      float64   `json:"progress"`       // raw transition progress, 1.0 outside a window
	EasedProgress float64   `json:"eased_progress"` // progress after the configured easing
	Paused        bool      `json:"paused"`
	OverrideTemp  int       `json:"override_temp,omitempty"`  // 0 means no override
	LastSentTemp  int       `json:"last_sent_temp,omitempty"` // 0 means nothing sent yet
	TickCount     uint64    `json:"tick_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Overridden reports whether a forced temperature is active.
func (s *RuntimeState) Overridden() bool {
	return s.OverrideTemp > 0
}

// Event is a single log entry.
type Event struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // PAUSE | RESUME | OVERRIDE | PHASE_CHANGE | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
