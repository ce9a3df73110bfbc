package gauge

import (
	"math"
	"testing"

	"github.com/matzehuels/ringgauge/pkg/settings"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBuildGeometry(t *testing.T) {
	vm := settings.Builtin().ViewModel()
	vm.CurrentValue = 0.75

	s := Build(vm, 100, 50)

	if s.Width != 100 || s.Height != 50 {
		t.Errorf("size = %vx%v", s.Width, s.Height)
	}
	if s.Circle.CX != 50 || s.Circle.CY != 25 {
		t.Errorf("center = (%v, %v)", s.Circle.CX, s.Circle.CY)
	}
	wantR := 50.0/1.2/2 - 1
	if !approx(s.Circle.R, wantR) {
		t.Errorf("radius = %v, want %v", s.Circle.R, wantR)
	}
	if !approx(s.Circle.StrokeWidth, 0.2*wantR*2) {
		t.Errorf("stroke width = %v, want %v", s.Circle.StrokeWidth, 0.2*wantR*2)
	}
	if math.Abs(s.Circle.StrokeWidth-7.93) > 0.01 {
		t.Errorf("stroke width = %v, want ~7.93", s.Circle.StrokeWidth)
	}
	if s.Circle.StrokeHex != "#7ac05d" {
		t.Errorf("stroke = %s", s.Circle.StrokeHex)
	}

	wantFS := 50 * (1 - 0.2 - 0.02) / 2
	if !approx(s.Label.FontSize, wantFS) {
		t.Errorf("font size = %v, want %v", s.Label.FontSize, wantFS)
	}
	if s.Label.X != 50 || !approx(s.Label.Y, 25+wantFS/3) {
		t.Errorf("label at (%v, %v)", s.Label.X, s.Label.Y)
	}
	if s.Label.Text != "?" || s.Label.ColorHex != "#000000" {
		t.Errorf("label = %+v", s.Label)
	}
	if s.Tooltip != "0.5" {
		t.Errorf("tooltip = %q", s.Tooltip)
	}
}

func TestBuildFloorsViewport(t *testing.T) {
	vm := settings.Builtin().ViewModel()

	tests := []struct {
		w, h, wantW, wantH float64
	}{
		{5, 5, 20, 20},
		{0, 300, 20, 300},
		{300, 19.9, 300, 20},
		{20, 20, 20, 20},
		{math.NaN(), 40, 20, 40},
	}
	for _, tt := range tests {
		s := Build(vm, tt.w, tt.h)
		if s.Width != tt.wantW || s.Height != tt.wantH {
			t.Errorf("Build(%v, %v) size = %vx%v, want %vx%v", tt.w, tt.h, s.Width, s.Height, tt.wantW, tt.wantH)
		}
	}

	s := Build(vm, 1, 1)
	if want := 20.0/1.2/2 - 1; !approx(s.Circle.R, want) {
		t.Errorf("radius at floor = %v, want %v", s.Circle.R, want)
	}
}

func TestBuildStrokeExtremes(t *testing.T) {
	vm := settings.Builtin().ViewModel()

	vm.StrokeFraction = 0
	s := Build(vm, 200, 200)
	if s.Circle.StrokeWidth != 0 || !approx(s.Circle.R, 99) {
		t.Errorf("no stroke: r=%v w=%v", s.Circle.R, s.Circle.StrokeWidth)
	}

	vm.StrokeFraction = 1
	s = Build(vm, 200, 200)
	if !approx(s.Circle.R, 49) || !approx(s.Circle.StrokeWidth, 98) {
		t.Errorf("full stroke: r=%v w=%v", s.Circle.R, s.Circle.StrokeWidth)
	}
	if s.Label.FontSize >= 0 {
		t.Errorf("font size should go negative at full stroke, got %v", s.Label.FontSize)
	}
}

func TestRingStaysInsideViewport(t *testing.T) {
	for _, sf := range []float64{0, 0.1, 0.2, 0.5, 0.9, 1} {
		for _, side := range []float64{20, 37, 100, 1000} {
			r := Radius(side, sf)
			outer := r + StrokeWidth(r, sf)/2
			if outer > side/2 {
				t.Errorf("side=%v stroke=%v: outer edge %v exceeds half side %v", side, sf, outer, side/2)
			}
		}
	}
}
