// Package schedule resolves the current phase of the day/night cycle.
package schedule

import (
	"time"

	"sundial"
	"sundial/internal/config"
	"sundial/internal/solar"
)

const dayLength = 24 * time.Hour

// Resolution is the outcome of resolving a wall-clock instant: the active
// phase and the raw progress through its transition window. Outside a window
// progress is 1.0 (transition complete).
type Resolution struct {
	Phase    sundial.Phase
	Progress float64
}

// Schedule determines phase and progress from the configured mode.
// In auto mode the day boundaries come from the solar calculator, in fixed
// mode from the wakeup/bedtime clock times.
type Schedule struct {
	mode     string
	calc     *solar.Calculator
	wakeup   time.Duration
	bedtime  time.Duration
	duration time.Duration
}

// New builds a schedule from the resolved configuration.
func New(cfg *config.Config) (*Schedule, error) {
	wakeup, err := config.ParseTimeOfDay(cfg.Schedule.Wakeup)
	if err != nil {
		return nil, err
	}
	bedtime, err := config.ParseTimeOfDay(cfg.Schedule.Bedtime)
	if err != nil {
		return nil, err
	}

	s := &Schedule{
		mode:     cfg.Mode,
		wakeup:   wakeup,
		bedtime:  bedtime,
		duration: cfg.TransitionDuration(),
	}

	if cfg.Mode == config.ModeAuto {
		calc, err := solar.NewCalculator(cfg.Location.Latitude, cfg.Location.Longitude)
		if err != nil {
			return nil, err
		}
		s.calc = calc
	}

	return s, nil
}

// Resolve returns the phase and raw progress at the given instant.
func (s *Schedule) Resolve(now time.Time) Resolution {
	dayStart := s.wakeup
	nightStart := s.bedtime

	if s.mode == config.ModeAuto {
		times := s.calc.Compute(now)
		if times.PolarDay {
			return Resolution{Phase: sundial.PhaseDay, Progress: 1}
		}
		if times.PolarNight {
			return Resolution{Phase: sundial.PhaseNight, Progress: 1}
		}
		dayStart = sinceMidnight(times.Sunrise)
		nightStart = sinceMidnight(times.Sunset)
	}

	return resolve(sinceMidnight(now), dayStart, nightStart, s.duration)
}

// resolve works on clock offsets from midnight so that windows straddling
// midnight (late bedtimes, high-latitude solar events) wrap naturally.
//
// Each transition window is anchored at its boundary event: ToDay spans
// [dayStart, dayStart+w) and ToNight spans [nightStart, nightStart+w).
// The effective width w is clamped so neither window can reach the opposite
// boundary, which keeps progress within [0,1] even for oversized durations.
func resolve(now, dayStart, nightStart, duration time.Duration) Resolution {
	dayGap := wrap(nightStart - dayStart)
	nightGap := dayLength - dayGap

	w := duration
	if w > dayGap {
		w = dayGap
	}
	if w > nightGap {
		w = nightGap
	}

	if w > 0 {
		if off := wrap(now - dayStart); off < w {
			return Resolution{Phase: sundial.PhaseToDay, Progress: float64(off) / float64(w)}
		}
		if off := wrap(now - nightStart); off < w {
			return Resolution{Phase: sundial.PhaseToNight, Progress: float64(off) / float64(w)}
		}
	}

	if wrap(now-dayStart) < dayGap {
		return Resolution{Phase: sundial.PhaseDay, Progress: 1}
	}
	return Resolution{Phase: sundial.PhaseNight, Progress: 1}
}

// wrap normalizes a clock offset into [0, 24h).
func wrap(d time.Duration) time.Duration {
	d %= dayLength
	if d < 0 {
		d += dayLength
	}
	return d
}

// sinceMidnight returns t's offset from midnight in its own location.
func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}
