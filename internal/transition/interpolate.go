package transition

import (
	"math"

	"sundial"
)

// Interpolate returns the temperature for a phase at the given eased progress.
// Steady phases sit at their extreme; transitions move from the phase's origin
// extreme to its destination. The result is clamped to the day/night envelope
// so floating-point overshoot at the endpoints can never escape it.
func Interpolate(phase sundial.Phase, eased float64, dayTemp, nightTemp int) float64 {
	day := float64(dayTemp)
	night := float64(nightTemp)

	var value float64
	switch phase {
	case sundial.PhaseDay:
		value = day
	case sundial.PhaseNight:
		value = night
	case sundial.PhaseToDay:
		value = night + (day-night)*eased
	case sundial.PhaseToNight:
		value = day + (night-day)*eased
	default:
		value = day
	}

	lo := math.Min(day, night)
	hi := math.Max(day, night)
	return math.Min(math.Max(value, lo), hi)
}

// Round converts an interpolated value to the integer Kelvin sent outward.
// Rounding happens only at this boundary; intermediate math stays in floats.
func Round(value float64) int {
	return int(math.Round(value))
}
