package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ringgauge/pkg/cache"
	"github.com/matzehuels/ringgauge/pkg/errors"
	"github.com/matzehuels/ringgauge/pkg/gauge"
	"github.com/matzehuels/ringgauge/pkg/observability"
	"github.com/matzehuels/ringgauge/pkg/settings"
	"github.com/matzehuels/ringgauge/pkg/visual"
)

const artifactKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so one Runner can serve concurrent
// Execute calls.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL applies to newly cached artifacts. Zero means cache.TTLArtifact.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used and artifacts are never cached.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute resolves the update, lays out the scene and renders every
// requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	resolveStart := time.Now()
	vm, scene, err := r.Resolve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	result := &Result{ViewModel: vm, Scene: scene}
	result.Stats.ResolveTime = time.Since(resolveStart)

	r.Logger.Debug("resolved view-model",
		"value", vm.CurrentValue,
		"stroke", scene.Circle.StrokeHex,
		"viewport", fmt.Sprintf("%gx%g", scene.Width, scene.Height))

	hash, err := opts.InputHash()
	if err != nil {
		return nil, err
	}
	result.InputHash = hash

	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, hash, vm, scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = hits == len(opts.Formats)

	r.Logger.Info("rendered gauge",
		"formats", opts.Formats,
		"cached", hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Resolve runs one host update through a fresh Visual and returns what it
// drew.
func (r *Runner) Resolve(ctx context.Context, opts Options) (settings.ViewModel, gauge.Scene, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return settings.ViewModel{}, gauge.Scene{}, err
	}
	v := visual.New(visual.NewSVGSurface(), visual.WithDefaults(*opts.Defaults))
	defer v.Destroy()

	if err := v.Update(ctx, opts.EffectiveUpdate()); err != nil {
		return settings.ViewModel{}, gauge.Scene{}, err
	}
	vm, ok := v.ViewModel()
	if !ok {
		return settings.ViewModel{}, gauge.Scene{}, errors.New(errors.ErrCodeInternal, "update produced no view-model")
	}
	scene, _ := v.Scene()
	return vm, scene, nil
}

// RenderWithCacheInfo renders all formats concurrently, serving each from
// the cache when possible. It returns the number of cache hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, inputHash string, vm settings.ViewModel, s gauge.Scene, opts Options) (map[string][]byte, int, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var (
		mu        sync.Mutex
		hits      int
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, hit, err := r.renderOne(gctx, inputHash, format, vm, s, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			artifacts[format] = data
			if hit {
				hits++
			}
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, 0, err
	}
	return artifacts, hits, nil
}

func (r *Runner) renderOne(ctx context.Context, inputHash, format string, vm settings.ViewModel, s gauge.Scene, opts Options) ([]byte, bool, error) {
	if cache.IsNull(r.Cache) {
		data, err := RenderFormat(format, vm, s, opts)
		return data, false, err
	}

	key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
	hooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err == nil && hit {
			hooks.OnCacheHit(ctx, artifactKeyType)
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, artifactKeyType)
	}

	data, err := RenderFormat(format, vm, s, opts)
	if err != nil {
		return nil, false, err
	}
	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.TTLArtifact
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		opts.Logger.Warn("cache write failed", "format", format, "error", err)
	} else {
		hooks.OnCacheSet(ctx, artifactKeyType, len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
