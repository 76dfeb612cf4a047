// Package transition maps transition progress to display temperatures.
package transition

import "sundial/internal/config"

// Ease maps raw progress r to eased progress for the given easing kind.
// Input is clamped to [0,1]; every kind satisfies f(0)=0, f(1)=1 and is
// monotonically non-decreasing on the interval. Unknown kinds fall back to
// linear so a stale persisted value can never break the loop.
func Ease(kind string, r float64) float64 {
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}

	switch kind {
	case config.EasingIn:
		return r * r
	case config.EasingOut:
		return r * (2 - r) // 1-(1-r)^2
	case config.EasingInOut:
		return r * r * (3 - 2*r) // smoothstep
	default:
		return r
	}
}
