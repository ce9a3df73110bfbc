package errors

import (
	"math"
	"regexp"
)

// hexColorRegex matches "#rgb" and "#rrggbb" colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor checks that s is a "#rgb" or "#rrggbb" color.
// field names the setting in the error message.
func ValidateHexColor(field, s string) error {
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "%s: invalid color %q (want #rrggbb)", field, s)
	}
	return nil
}

// ValidateViewport checks that both dimensions are finite and positive.
// Dimensions below the gauge minimum are allowed; the layout floors them.
func ValidateViewport(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidViewport, "viewport must be positive and finite, got %gx%g", width, height)
		}
	}
	return nil
}

// ValidateFiniteViewport rejects NaN or infinite dimensions only. Zero and
// negative host viewports are floored by the layout.
func ValidateFiniteViewport(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidViewport, "viewport must be finite, got %gx%g", width, height)
		}
	}
	return nil
}
