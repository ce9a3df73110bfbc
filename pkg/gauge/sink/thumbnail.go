package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// MaxThumbnailSize caps the edge length of [RenderThumbnail] output.
const MaxThumbnailSize = 512

// RenderThumbnail rasterizes an SVG document written by [RenderSVG] into a
// size×size PNG. Only shapes are drawn; text elements are skipped, so the
// thumbnail shows the ring alone.
func RenderThumbnail(svg []byte, size int) ([]byte, error) {
	if size <= 0 || size > MaxThumbnailSize {
		return nil, fmt.Errorf("thumbnail size must be in 1..%d, got %d", MaxThumbnailSize, size)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	icon.SetTarget(0, 0, float64(size), float64(size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
