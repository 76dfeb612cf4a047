package transition

import (
	"math"
	"testing"

	"sundial/internal/config"
)

var easingKinds = []string{
	config.EasingLinear,
	config.EasingIn,
	config.EasingOut,
	config.EasingInOut,
}

func TestEase_EndpointsFixed(t *testing.T) {
	for _, kind := range easingKinds {
		if got := Ease(kind, 0); got != 0 {
			t.Fatalf("%s: f(0) = %v, want 0", kind, got)
		}
		if got := Ease(kind, 1); got != 1 {
			t.Fatalf("%s: f(1) = %v, want 1", kind, got)
		}
	}
}

func TestEase_ClampsInput(t *testing.T) {
	for _, kind := range easingKinds {
		if got := Ease(kind, -0.5); got != 0 {
			t.Fatalf("%s: f(-0.5) = %v, want 0", kind, got)
		}
		if got := Ease(kind, 1.5); got != 1 {
			t.Fatalf("%s: f(1.5) = %v, want 1", kind, got)
		}
	}
}

func TestEase_MonotoneNonDecreasing(t *testing.T) {
	const steps = 100
	for _, kind := range easingKinds {
		prev := Ease(kind, 0)
		for i := 1; i <= steps; i++ {
			r := float64(i) / steps
			cur := Ease(kind, r)
			if cur < prev {
				t.Fatalf("%s: f(%v)=%v < f(prev)=%v", kind, r, cur, prev)
			}
			prev = cur
		}
	}
}

func TestEase_MidpointValues(t *testing.T) {
	cases := []struct {
		kind string
		want float64
	}{
		{config.EasingLinear, 0.5},
		{config.EasingIn, 0.25},
		{config.EasingOut, 0.75},
		{config.EasingInOut, 0.5},
	}
	for _, tc := range cases {
		if got := Ease(tc.kind, 0.5); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: f(0.5) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestEase_UnknownKindFallsBackToLinear(t *testing.T) {
	if got := Ease("bogus", 0.3); got != 0.3 {
		t.Fatalf("got %v, want 0.3", got)
	}
}
