package pipeline

import (
	"fmt"

	"github.com/matzehuels/ringgauge/pkg/errors"
	"github.com/matzehuels/ringgauge/pkg/gauge"
	"github.com/matzehuels/ringgauge/pkg/gauge/sink"
	"github.com/matzehuels/ringgauge/pkg/settings"
)

// RenderFormat renders one output format.
func RenderFormat(format string, vm settings.ViewModel, s gauge.Scene, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(s)
	case FormatPNG:
		data, err = sink.RenderPNG(s, sink.WithScale(opts.PNGScale))
	case FormatPDF:
		data, err = sink.RenderPDF(s)
	case FormatJSON:
		data, err = sink.RenderJSON(s, sink.WithViewModel(vm))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// Render renders every requested format without touching any cache.
func Render(vm settings.ViewModel, s gauge.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(format, vm, s, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
