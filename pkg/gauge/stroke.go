package gauge

import (
	"math"

	"github.com/matzehuels/ringgauge/pkg/settings"
)

// StrokeColor returns the ring color for the view-model's current value.
func StrokeColor(vm settings.ViewModel) Color {
	t := vm.Targets
	v := vm.CurrentValue
	mid := ParseColorOrBlack(t.MidColor.Solid.Color)

	switch {
	case v == t.Mid:
		return mid
	case v < t.Mid:
		return Lerp(mid, ParseColorOrBlack(t.MinColor.Solid.Color), Fraction(v-t.Min, t.Mid-t.Min))
	default:
		return Lerp(ParseColorOrBlack(t.MaxColor.Solid.Color), mid, Fraction(v-t.Mid, t.Max-t.Mid))
	}
}

// Fraction returns num/den clamped into [0,1].
//
// A zero-width range (den == 0) puts any non-zero offset past the collapsed
// boundary, so the result saturates: 1 for a positive offset, 0 otherwise.
// NaN results are treated as 0.
func Fraction(num, den float64) float64 {
	if den == 0 {
		if num > 0 {
			return 1
		}
		return 0
	}
	f := num / den
	if math.IsNaN(f) {
		return 0
	}
	return max(0, min(1, f))
}
