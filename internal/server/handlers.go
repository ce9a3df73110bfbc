package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ringgauge/pkg/buildinfo"
	"github.com/matzehuels/ringgauge/pkg/dataview"
	"github.com/matzehuels/ringgauge/pkg/errors"
	"github.com/matzehuels/ringgauge/pkg/gauge/sink"
	"github.com/matzehuels/ringgauge/pkg/pipeline"
	"github.com/matzehuels/ringgauge/pkg/store"
	"github.com/matzehuels/ringgauge/pkg/visual"
)

const (
	headerCache    = "X-Cache"
	headerSnapshot = "X-Snapshot-Id"

	defaultThumbnailSize = 64
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

// handleRender renders one format. Rendered gauges are stored as snapshots
// unless ?snapshot=false.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	update, err := s.decodeUpdate(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	formats := []string{format}
	if format != pipeline.FormatSVG {
		formats = append(formats, pipeline.FormatSVG)
	}
	result, err := s.cfg.Runner.Execute(r.Context(), s.pipelineOptions(update, formats, r.URL.Query().Get("refresh") == "true"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	if r.URL.Query().Get("snapshot") != "false" {
		snap := store.NewSnapshot(update, result.ViewModel, result.Scene, result.Artifacts[pipeline.FormatSVG])
		if err := s.cfg.Store.Save(r.Context(), snap); err != nil {
			s.log.Warn("snapshot not saved", "error", err)
		} else {
			w.Header().Set(headerSnapshot, snap.ID)
		}
	}

	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set(headerCache, cacheStatus)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// handleEnumerate runs the update through a Visual and returns the
// requested settings group.
func (s *Server) handleEnumerate(w http.ResponseWriter, r *http.Request) {
	update, err := s.decodeUpdate(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.pipelineOptions(update, nil, false)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, err)
		return
	}
	v := visual.New(visual.NewSVGSurface(), visual.WithDefaults(*opts.Defaults))
	defer v.Destroy()
	if err := v.Update(r.Context(), opts.EffectiveUpdate()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v.EnumerateObjectInstances(chi.URLParam(r, "objectName")))
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	snaps, err := s.cfg.Store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSnapshotSVG(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatSVG])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(snap.SVG)
}

// handleSnapshotThumbnail rasterizes the stored SVG. ?size= sets the edge
// length in pixels.
func (s *Server) handleSnapshotThumbnail(w http.ResponseWriter, r *http.Request) {
	size := defaultThumbnailSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > sink.MaxThumbnailSize {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "size must be in 1..%d, got %q", sink.MaxThumbnailSize, v))
			return
		}
		size = n
	}

	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	data, err := sink.RenderThumbnail(snap.SVG, size)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "thumbnail %s", snap.ID))
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatPNG])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.cfg.Store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) loadSnapshot(w http.ResponseWriter, r *http.Request) (*store.Snapshot, bool) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		s.writeError(w, err)
		return nil, false
	}
	snap, err := s.cfg.Store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return snap, true
}

func (s *Server) decodeUpdate(w http.ResponseWriter, r *http.Request) (*dataview.UpdateOptions, error) {
	return dataview.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func (s *Server) pipelineOptions(update *dataview.UpdateOptions, formats []string, refresh bool) pipeline.Options {
	defaults := s.cfg.Defaults
	return pipeline.Options{
		Update:   update,
		Defaults: &defaults,
		Width:    s.cfg.Width,
		Height:   s.cfg.Height,
		Formats:  formats,
		PNGScale: s.cfg.PNGScale,
		Refresh:  refresh,
		Logger:   s.log,
	}
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", "error", err)
	}
}

// writeError maps err to a status code and writes {"error", "code"}.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	s.writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}

func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
