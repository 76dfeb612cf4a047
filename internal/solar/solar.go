// Package solar computes sunrise and sunset for a coordinate and date.
package solar

import (
	"errors"
	"time"

	sunrise "github.com/nathan-osman/go-sunrise"
)

var (
	// ErrLatitudeRange is returned for latitudes outside [-90, 90].
	ErrLatitudeRange = errors.New("latitude out of range [-90, 90]")
	// ErrLongitudeRange is returned for longitudes outside [-180, 180].
	ErrLongitudeRange = errors.New("longitude out of range [-180, 180]")
)

// Times holds the solar day boundaries for one calendar date. During polar
// summer or winter there is no boundary to report and the corresponding flag
// is set instead.
type Times struct {
	Sunrise    time.Time
	Sunset     time.Time
	PolarDay   bool // sun never sets
	PolarNight bool // sun never rises
}

// Calculator derives solar times for a fixed coordinate.
type Calculator struct {
	latitude  float64
	longitude float64
}

// NewCalculator validates the coordinate and returns a calculator for it.
func NewCalculator(latitude, longitude float64) (*Calculator, error) {
	if latitude < -90 || latitude > 90 {
		return nil, ErrLatitudeRange
	}
	if longitude < -180 || longitude > 180 {
		return nil, ErrLongitudeRange
	}
	return &Calculator{latitude: latitude, longitude: longitude}, nil
}

// Compute returns sunrise/sunset for the calendar date of t, expressed in t's
// location. When the NOAA hour-angle has no solution (polar conditions) the
// library reports zero times; solar elevation at local noon then decides
// between polar day and polar night.
func (c *Calculator) Compute(t time.Time) Times {
	year, month, day := t.Date()

	rise, set := sunrise.SunriseSunset(c.latitude, c.longitude, year, month, day)
	if rise.IsZero() && set.IsZero() {
		noon := time.Date(year, month, day, 12, 0, 0, 0, t.Location())
		if sunrise.Elevation(c.latitude, c.longitude, noon) > 0 {
			return Times{PolarDay: true}
		}
		return Times{PolarNight: true}
	}

	return Times{
		Sunrise: rise.In(t.Location()),
		Sunset:  set.In(t.Location()),
	}
}
