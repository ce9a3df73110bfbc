// Package visual is the host-facing gauge: it owns a drawing surface and
// follows the host lifecycle of construction, update, enumeration and
// teardown.
//
// The host serializes calls, so a Visual is not safe for concurrent use.
// Callers that serve requests concurrently create one Visual per request.
package visual

import (
	"context"
	"time"

	"github.com/matzehuels/ringgauge/pkg/dataview"
	"github.com/matzehuels/ringgauge/pkg/gauge"
	"github.com/matzehuels/ringgauge/pkg/observability"
	"github.com/matzehuels/ringgauge/pkg/settings"
)

// Surface is where a Visual draws.
type Surface interface {
	// Clear removes everything previously drawn.
	Clear()
	// Draw replaces the surface content with the scene.
	Draw(s gauge.Scene) error
}

// Option configures a Visual.
type Option func(*Visual)

// WithDefaults replaces the built-in fallback values.
func WithDefaults(d settings.Defaults) Option {
	return func(v *Visual) { v.defaults = d }
}

// Visual renders one gauge onto a Surface.
type Visual struct {
	surface  Surface
	defaults settings.Defaults

	vm    *settings.ViewModel
	scene gauge.Scene
}

// New binds a Visual to surface and clears whatever the surface held.
func New(surface Surface, opts ...Option) *Visual {
	v := &Visual{surface: surface, defaults: settings.Builtin()}
	for _, opt := range opts {
		opt(v)
	}
	surface.Clear()
	return v
}

// Update resolves the first data view and redraws. Options without a
// viewport are ignored.
func (v *Visual) Update(ctx context.Context, opts *dataview.UpdateOptions) error {
	if opts == nil || opts.Viewport == nil {
		return nil
	}

	start := time.Now()
	dv := opts.First()
	vm := settings.Resolve(dv, v.defaults)
	observability.Pipeline().OnResolve(ctx, dv != nil && dv.Metadata != nil, time.Since(start))

	scene := gauge.Build(vm, opts.Viewport.Width, opts.Viewport.Height)
	if err := v.surface.Draw(scene); err != nil {
		return err
	}
	v.vm = &vm
	v.scene = scene
	return nil
}

// EnumerateObjectInstances describes the current settings of one group for
// a property editor. It returns an empty slice before the first update and
// for unknown group names.
func (v *Visual) EnumerateObjectInstances(objectName string) []settings.Instance {
	if v.vm == nil {
		return []settings.Instance{}
	}
	return settings.Enumerate(*v.vm, objectName)
}

// ViewModel returns the view-model of the last successful update.
func (v *Visual) ViewModel() (settings.ViewModel, bool) {
	if v.vm == nil {
		return settings.ViewModel{}, false
	}
	return *v.vm, true
}

// Scene returns the scene of the last successful update.
func (v *Visual) Scene() (gauge.Scene, bool) {
	return v.scene, v.vm != nil
}

// Destroy drops the retained view-model. The surface is left as is.
func (v *Visual) Destroy() {
	v.vm = nil
	v.scene = gauge.Scene{}
}
