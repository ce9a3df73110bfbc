package visual

import (
	"bytes"

	"github.com/matzehuels/ringgauge/pkg/gauge"
	"github.com/matzehuels/ringgauge/pkg/gauge/sink"
)

// SVGSurface keeps the last drawn scene as an SVG document.
type SVGSurface struct {
	opts []sink.SVGOption
	svg  []byte
}

// NewSVGSurface returns an empty surface. opts are applied on every draw.
func NewSVGSurface(opts ...sink.SVGOption) *SVGSurface {
	return &SVGSurface{opts: opts}
}

// Clear implements Surface.
func (s *SVGSurface) Clear() { s.svg = nil }

// Draw implements Surface.
func (s *SVGSurface) Draw(scene gauge.Scene) error {
	s.svg = sink.RenderSVG(scene, s.opts...)
	return nil
}

// Bytes returns a copy of the current document, or nil when nothing is drawn.
func (s *SVGSurface) Bytes() []byte {
	if s.svg == nil {
		return nil
	}
	return bytes.Clone(s.svg)
}

var _ Surface = (*SVGSurface)(nil)
