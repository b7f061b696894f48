// Package server provides the HTTP front end of legisview.
package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hyperjump/legisview/internal/config"
	"github.com/hyperjump/legisview/internal/loader"
	"github.com/hyperjump/legisview/internal/metrics"
	"github.com/hyperjump/legisview/internal/render"
	"github.com/hyperjump/legisview/internal/search"
	"github.com/hyperjump/legisview/internal/session"
)

// Server is the HTTP server for the viewer.
type Server struct {
	loader     *loader.Loader
	dispatcher *search.Dispatcher
	renderer   *render.Renderer
	sessions   *session.Manager
	metrics    *metrics.Metrics
	config     *config.ServerConfig
	publicURL  *url.URL
	logger     *zap.Logger
	server     *http.Server
}

// NewServer creates a server with the given dependencies. m may be nil.
func NewServer(
	ld *loader.Loader,
	renderer *render.Renderer,
	sessions *session.Manager,
	m *metrics.Metrics,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		loader:     ld,
		dispatcher: search.NewDispatcher(nil),
		renderer:   renderer,
		sessions:   sessions,
		metrics:    m,
		config:     cfg,
		logger:     logger,
	}
	if cfg.PublicURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.PublicURL, "/"))
		if err != nil {
			return nil, fmt.Errorf("invalid public url: %w", err)
		}
		s.publicURL = u
	}
	return s, nil
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.Middleware)

		r.Get("/", s.handleHome)
		r.Get("/hansard", s.handleHansardList)
		r.Get("/hansard/{id}", s.handleHansard)
		r.Get("/inquiry", s.handleInquiryList)
		r.Get("/inquiry/{id}", s.handleInquiry)

		r.Get("/search", s.handleSearch)
		r.Post("/search", s.handleSearchSubmit)
		r.Post("/search/quick", s.handleQuickSearch)
		r.Post("/search/facet", s.handleFacet)

		r.Post("/display/toggle", s.handleToggle)
	})
	r.NotFound(s.handleNotFound)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// pageURL is the absolute URL of the current page, used for share links.
func (s *Server) pageURL(r *http.Request) *url.URL {
	if s.publicURL != nil {
		u := *s.publicURL
		u.Path = u.Path + r.URL.Path
		return &u
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return &url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path}
}
