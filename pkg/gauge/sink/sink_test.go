package sink

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/ringgauge/pkg/gauge"
	"github.com/matzehuels/ringgauge/pkg/settings"
)

func testScene(value float64, w, h float64) (settings.ViewModel, gauge.Scene) {
	vm := settings.Builtin().ViewModel()
	vm.CurrentValue = value
	vm.Tooltip = "Sales & <Margin>"
	return vm, gauge.Build(vm, w, h)
}

func TestRenderSVG(t *testing.T) {
	_, s := testScene(0.75, 100, 50)
	svg := string(RenderSVG(s))

	for _, want := range []string{
		`viewBox="0 0 100 50"`,
		`<title>Sales &amp; &lt;Margin&gt;</title>`,
		`stroke="#7ac05d"`,
		`cx="50" cy="25"`,
		`r="19.8333`,
		`stroke-width="7.9333`,
		`fill="#ffffff" fill-opacity="0"`,
		`text-anchor="middle"`,
		`font-weight="bold"`,
		`>?</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q\n%s", want, svg)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	_, s := testScene(0.5, 100, 100)
	svg := string(RenderSVG(s, WithoutTooltip(), WithClass("kpi")))
	if strings.Contains(svg, "<title>") {
		t.Error("WithoutTooltip should drop <title>")
	}
	if !strings.Contains(svg, `class="kpi"`) {
		t.Error("WithClass not applied")
	}
}

func TestRenderSVGSkipsEmptyLabel(t *testing.T) {
	vm := settings.Builtin().ViewModel()
	vm.StrokeFraction = 1
	svg := string(RenderSVG(gauge.Build(vm, 100, 100)))
	if strings.Contains(svg, "<text") {
		t.Errorf("negative font size should skip the label:\n%s", svg)
	}

	vm = settings.Builtin().ViewModel()
	vm.Symbol.Glyph = ""
	svg = string(RenderSVG(gauge.Build(vm, 100, 100)))
	if strings.Contains(svg, "<text") {
		t.Errorf("empty glyph should skip the label:\n%s", svg)
	}
}

func TestRenderSVGRasterizes(t *testing.T) {
	_, s := testScene(1, 100, 100)
	icon, err := oksvg.ReadIconStream(bytes.NewReader(RenderSVG(s)), oksvg.IgnoreErrorMode)
	if err != nil {
		t.Fatalf("ReadIconStream() error: %v", err)
	}
	if icon.ViewBox.W != 100 || icon.ViewBox.H != 100 {
		t.Fatalf("ViewBox = %vx%v, want 100x100", icon.ViewBox.W, icon.ViewBox.H)
	}

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	icon.SetTarget(0, 0, 100, 100)
	scanner := rasterx.NewScannerGV(100, 100, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(100, 100, scanner), 1.0)

	// Top of the ring, inside the stroke band.
	top := int(s.Circle.CY - s.Circle.R)
	if _, _, _, a := img.At(int(s.Circle.CX), top).RGBA(); a == 0 {
		t.Errorf("pixel on the ring at (%v, %d) is transparent", s.Circle.CX, top)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("corner pixel should be transparent")
	}
}

func TestRenderPNG(t *testing.T) {
	_, s := testScene(0.25, 100, 50)
	data, err := RenderPNG(s, WithScale(2))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	b := img.Bounds()
	if math.Abs(float64(b.Dx())-200) > 1 || math.Abs(float64(b.Dy())-100) > 1 {
		t.Errorf("PNG size = %dx%d, want ~200x100", b.Dx(), b.Dy())
	}
}

func TestRenderPNGInvalidScale(t *testing.T) {
	_, s := testScene(0.5, 100, 100)
	if _, err := RenderPNG(s, WithScale(0)); err == nil {
		t.Error("RenderPNG() with zero scale should fail")
	}
}

func TestRenderPDF(t *testing.T) {
	_, s := testScene(0.5, 120, 120)
	data, err := RenderPDF(s)
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("RenderPDF() output does not start with %%PDF: %q", data[:min(len(data), 16)])
	}
}

func TestRenderJSON(t *testing.T) {
	vm, s := testScene(0.75, 100, 50)
	data, err := RenderJSON(s, WithViewModel(vm))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		ViewModel settings.ViewModel `json:"viewModel"`
		Scene     struct {
			Width  float64 `json:"width"`
			Circle struct {
				Stroke string `json:"stroke"`
			} `json:"circle"`
			Label struct {
				Text string `json:"text"`
			} `json:"label"`
		} `json:"scene"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Scene.Width != 100 {
		t.Errorf("width = %v", out.Scene.Width)
	}
	if out.Scene.Circle.Stroke != "#7ac05d" {
		t.Errorf("stroke = %q", out.Scene.Circle.Stroke)
	}
	if out.Scene.Label.Text != "?" {
		t.Errorf("label = %q", out.Scene.Label.Text)
	}
	if out.ViewModel.CurrentValue != 0.75 {
		t.Errorf("viewModel.currentValue = %v", out.ViewModel.CurrentValue)
	}
}

func TestRenderJSONWithoutViewModel(t *testing.T) {
	_, s := testScene(0.5, 100, 100)
	data, err := RenderJSON(s)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if strings.Contains(string(data), "viewModel") {
		t.Error("viewModel should be omitted")
	}
}

func TestRenderThumbnail(t *testing.T) {
	_, s := testScene(0, 100, 100)
	data, err := RenderThumbnail(RenderSVG(s), 32)
	if err != nil {
		t.Fatalf("RenderThumbnail() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("bounds = %v, want 32x32", b)
	}

	for _, size := range []int{0, -1, MaxThumbnailSize + 1} {
		if _, err := RenderThumbnail(RenderSVG(s), size); err == nil {
			t.Errorf("size %d: expected error", size)
		}
	}
}
