package gauge

import "github.com/matzehuels/ringgauge/pkg/settings"

// MinViewportSize is the smallest width or height used for layout.
const MinViewportSize = 20.0

// labelMargin is subtracted from the unstroked share of the side when sizing
// the label.
const labelMargin = 0.02

// RingFill is the ring's interior fill, drawn at RingFillOpacity.
var RingFill = Color{R: 255, G: 255, B: 255}

// RingFillOpacity keeps the ring interior transparent.
const RingFillOpacity = 0.0

// Scene is the full draw instruction set for one render.
type Scene struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Tooltip string  `json:"tooltip"`
	Circle  Circle  `json:"circle"`
	Label   Label   `json:"label"`
}

// Circle is the gauge ring.
type Circle struct {
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	R           float64 `json:"r"`
	Stroke      Color   `json:"-"`
	StrokeHex   string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Label is the centered symbol.
type Label struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"fontSize"`
	Color    Color   `json:"-"`
	ColorHex string  `json:"color"`
}

// Build lays out the scene for vm in a width x height viewport.
func Build(vm settings.ViewModel, width, height float64) Scene {
	w, h := ClampViewport(width, height)
	side := min(w, h)
	s := vm.StrokeFraction

	r := Radius(side, s)
	stroke := StrokeColor(vm)
	fs := FontSize(side, s)
	labelColor := ParseColorOrBlack(vm.Symbol.Color.Solid.Color)

	return Scene{
		Width:   w,
		Height:  h,
		Tooltip: vm.Tooltip,
		Circle: Circle{
			CX:          w / 2,
			CY:          h / 2,
			R:           r,
			Stroke:      stroke,
			StrokeHex:   stroke.Hex(),
			StrokeWidth: StrokeWidth(r, s),
		},
		Label: Label{
			Text:     vm.Symbol.Glyph,
			X:        w / 2,
			Y:        h/2 + fs/3,
			FontSize: fs,
			Color:    labelColor,
			ColorHex: labelColor.Hex(),
		},
	}
}

// ClampViewport floors both dimensions to MinViewportSize.
func ClampViewport(width, height float64) (float64, float64) {
	return floorDim(width), floorDim(height)
}

func floorDim(v float64) float64 {
	// Written as !(v >= min) so NaN is floored too.
	if !(v >= MinViewportSize) {
		return MinViewportSize
	}
	return v
}

// Radius leaves room for the stroke so the ring never clips the viewport.
func Radius(side, strokeFraction float64) float64 {
	return side/(1+strokeFraction)/2 - 1
}

// StrokeWidth is the ring thickness in pixels.
func StrokeWidth(radius, strokeFraction float64) float64 {
	return strokeFraction * radius * 2
}

// FontSize is the label size in pixels. It can drop below zero for stroke
// fractions close to 1; sinks skip the label then.
func FontSize(side, strokeFraction float64) float64 {
	return side * (1 - strokeFraction - labelMargin) / 2
}
