package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/ringgauge/pkg/gauge"
)

// FontFamily is used for the label in SVG output.
const FontFamily = "helvetica, arial, sans-serif"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	tooltip bool
	class   string
}

// WithoutTooltip drops the <title> element carrying the tooltip text.
func WithoutTooltip() SVGOption { return func(r *svgRenderer) { r.tooltip = false } }

// WithClass sets the class attribute on the root element.
func WithClass(c string) SVGOption { return func(r *svgRenderer) { r.class = c } }

// RenderSVG renders the scene as a standalone SVG document. Numbers are
// written at full precision so they match the JSON scene.
func RenderSVG(s gauge.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{tooltip: true, class: "ringgauge"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" class="%s" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		escapeXML(r.class), num(s.Width), num(s.Height), num(s.Width), num(s.Height))
	if r.tooltip && s.Tooltip != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(s.Tooltip))
	}
	renderCircle(&buf, s.Circle)
	renderLabel(&buf, s.Label)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCircle(buf *bytes.Buffer, c gauge.Circle) {
	fmt.Fprintf(buf, `  <circle class="ring" cx="%s" cy="%s" r="%s" fill="%s" fill-opacity="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		num(c.CX), num(c.CY), num(max(0, c.R)), gauge.RingFill.Hex(), num(gauge.RingFillOpacity), c.Stroke.Hex(), num(c.StrokeWidth))
}

func renderLabel(buf *bytes.Buffer, l gauge.Label) {
	if l.FontSize <= 0 || l.Text == "" {
		return
	}
	fmt.Fprintf(buf, `  <text class="symbol" x="%s" y="%s" text-anchor="middle" font-family="%s" font-weight="bold" font-size="%spx" fill="%s">%s</text>`+"\n",
		num(l.X), num(l.Y), FontFamily, num(l.FontSize), l.Color.Hex(), escapeXML(l.Text))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
