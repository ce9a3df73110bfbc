// Package sink writes a [gauge.Scene] out in the supported formats.
//
//   - SVG: [RenderSVG], plain markup written directly
//   - PNG: [RenderPNG], rasterized through tdewolff/canvas
//   - PDF: [RenderPDF], drawn through tdewolff/canvas
//   - JSON: [RenderJSON], the scene plus the view-model it came from
//
// [RenderThumbnail] goes the other way: it rasterizes stored SVG markup
// through oksvg when the scene itself is no longer at hand.
//
// Scene units are CSS pixels. The canvas sinks convert them to millimetres
// at 96 DPI, so a 100x100 scene becomes a 100x100 pixel PNG at scale 1.
//
// [gauge.Scene]: github.com/matzehuels/ringgauge/pkg/gauge.Scene
package sink
