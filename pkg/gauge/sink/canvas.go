package sink

import (
	"bytes"
	"fmt"
	"image/png"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/matzehuels/ringgauge/pkg/gauge"
)

const (
	cssDPI  = 96.0
	pxToMm  = 25.4 / cssDPI
	pxToPt  = 72.0 / cssDPI
	fontKey = "ringgauge-bold"
)

var (
	fontOnce   sync.Once
	fontFamily *canvas.FontFamily
	fontErr    error
)

func labelFont() (*canvas.FontFamily, error) {
	fontOnce.Do(func() {
		fam := canvas.NewFontFamily(fontKey)
		if err := fam.LoadFont(gobold.TTF, 0, canvas.FontBold); err != nil {
			fontErr = fmt.Errorf("load label font: %w", err)
			return
		}
		fontFamily = fam
	})
	return fontFamily, fontErr
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the scene.
func RenderPNG(s gauge.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("invalid png scale %v", r.scale)
	}

	c, err := drawScene(s)
	if err != nil {
		return nil, err
	}
	img := rasterizer.Draw(c, canvas.DPI(cssDPI*r.scale), canvas.DefaultColorSpace)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF draws the scene onto a single PDF page of the same size.
func RenderPDF(s gauge.Scene) ([]byte, error) {
	c, err := drawScene(s)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, c.W, c.H, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawScene(s gauge.Scene) (*canvas.Canvas, error) {
	c := canvas.New(s.Width*pxToMm, s.Height*pxToMm)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	circle := s.Circle
	if circle.R > 0 {
		ctx.SetFillColor(gauge.RingFill.NRGBA(gauge.RingFillOpacity))
		ctx.SetStrokeColor(circle.Stroke.RGBA())
		ctx.SetStrokeWidth(circle.StrokeWidth * pxToMm)
		ctx.DrawPath(circle.CX*pxToMm, circle.CY*pxToMm, canvas.Circle(circle.R*pxToMm))
	}

	label := s.Label
	if label.FontSize <= 0 || label.Text == "" {
		return c, nil
	}
	fam, err := labelFont()
	if err != nil {
		return nil, err
	}
	face := fam.Face(label.FontSize*pxToPt, label.Color.RGBA(), canvas.FontBold, canvas.FontNormal)
	line := canvas.NewTextLine(face, label.Text, canvas.Center)
	ctx.DrawText(label.X*pxToMm, label.Y*pxToMm, line)
	return c, nil
}
