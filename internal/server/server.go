// Package server exposes the gauge pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/ringgauge/pkg/pipeline"
	"github.com/matzehuels/ringgauge/pkg/settings"
	"github.com/matzehuels/ringgauge/pkg/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Config holds server configuration.
type Config struct {
	Addr        string
	CORSOrigins []string
	ReadTimeout time.Duration

	Runner   *pipeline.Runner
	Store    store.Store
	Logger   *log.Logger
	Defaults settings.Defaults

	// Fallback viewport and PNG scale for updates that carry none.
	Width, Height float64
	PNGScale      float64
}

// Server represents the HTTP server.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    *log.Logger
	cfg    Config
}

// New creates a new HTTP server.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Defaults == (settings.Defaults{}) {
		cfg.Defaults = settings.Builtin()
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Logger.WithPrefix("server"),
		cfg:    cfg,
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{headerCache, headerSnapshot},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/enumerate/{objectName}", s.handleEnumerate)

		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", s.handleListSnapshots)
			r.Get("/{id}", s.handleGetSnapshot)
			r.Get("/{id}/svg", s.handleSnapshotSVG)
			r.Get("/{id}/thumbnail.png", s.handleSnapshotThumbnail)
			r.Delete("/{id}", s.handleDeleteSnapshot)
		})
	})
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("starting HTTP server", "addr", s.cfg.Addr)
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
