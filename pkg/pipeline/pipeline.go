// Package pipeline runs the resolve → layout → render flow for one update.
//
// The CLI and the HTTP server both go through a [Runner], so caching and
// format handling behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Update:  update,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ringgauge/pkg/cache"
	"github.com/matzehuels/ringgauge/pkg/dataview"
	"github.com/matzehuels/ringgauge/pkg/errors"
	"github.com/matzehuels/ringgauge/pkg/gauge"
	"github.com/matzehuels/ringgauge/pkg/settings"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the viewport width used when the update carries none.
	DefaultWidth = 200.0

	// DefaultHeight is the viewport height used when the update carries none.
	DefaultHeight = 200.0

	// DefaultPNGScale renders PNGs at 2x.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Update is the host payload. A nil viewport falls back to Width/Height.
	Update *dataview.UpdateOptions `json:"update"`

	// Defaults replace the built-in fallback values. Zero means built-in.
	Defaults *settings.Defaults `json:"defaults,omitempty"`

	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Formats  []string `json:"formats,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	ViewModel settings.ViewModel
	Scene     gauge.Scene

	// InputHash identifies the update and defaults; artifact keys derive from it.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ResolveTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache usage for the render stage.
type CacheInfo struct {
	Hits      int  // Number of formats served from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Update == nil {
		return errors.New(errors.ErrCodeInvalidInput, "update is required")
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)

	if o.Defaults == nil {
		d := settings.Builtin()
		o.Defaults = &d
	}
	if err := o.Defaults.Validate(); err != nil {
		return err
	}

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if vp := o.Update.Viewport; vp != nil {
		if err := errors.ValidateFiniteViewport(vp.Width, vp.Height); err != nil {
			return err
		}
	} else if err := errors.ValidateViewport(o.Width, o.Height); err != nil {
		return err
	}

	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png_scale must be positive, got %g", o.PNGScale)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Viewport returns the update's viewport, or Width/Height when it has none.
func (o *Options) Viewport() (float64, float64) {
	if o.Update != nil && o.Update.Viewport != nil {
		return o.Update.Viewport.Width, o.Update.Viewport.Height
	}
	return o.Width, o.Height
}

// EffectiveUpdate returns the update with the fallback viewport applied.
func (o *Options) EffectiveUpdate() *dataview.UpdateOptions {
	u := *o.Update
	if u.Viewport == nil {
		w, h := o.Viewport()
		u.Viewport = &dataview.Viewport{Width: w, Height: h}
	}
	return &u
}

// InputHash returns the content hash of the effective update and defaults.
func (o *Options) InputHash() (string, error) {
	data, err := json.Marshal(struct {
		Update   *dataview.UpdateOptions `json:"update"`
		Defaults *settings.Defaults      `json:"defaults"`
	}{o.EffectiveUpdate(), o.Defaults})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "hash update")
	}
	return cache.Hash(data), nil
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.PNGScale
	}
	return opts
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
