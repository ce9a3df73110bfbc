package dataview

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Fill is the host's color value: {"solid": {"color": "#rrggbb"}}.
type Fill struct {
	Solid Solid `json:"solid"`
}

// Solid holds a solid color string.
type Solid struct {
	Color string `json:"color"`
}

// SolidFill returns a Fill with the given color string.
func SolidFill(color string) Fill { return Fill{Solid: Solid{Color: color}} }

// AsNumber converts the numeric shapes a decoded host value can take.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// AsFill converts a Fill, *Fill, or decoded JSON object into a Fill.
// Objects without a string solid.color are rejected.
func AsFill(v any) (Fill, bool) {
	switch f := v.(type) {
	case Fill:
		return f, f.Solid.Color != ""
	case *Fill:
		if f == nil {
			return Fill{}, false
		}
		return *f, f.Solid.Color != ""
	case map[string]any:
		solid, ok := f["solid"].(map[string]any)
		if !ok {
			return Fill{}, false
		}
		color, ok := solid["color"].(string)
		if !ok || color == "" {
			return Fill{}, false
		}
		return SolidFill(color), true
	}
	return Fill{}, false
}

// FormatNumber formats n with the shortest decimal that round-trips,
// e.g. 0.5 -> "0.5" and 1 -> "1".
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Stringify renders a host value as display text.
func Stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if n, ok := AsNumber(v); ok {
		return FormatNumber(n)
	}
	return fmt.Sprint(v)
}
