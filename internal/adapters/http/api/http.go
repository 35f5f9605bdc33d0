// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	service "github.com/okian/rootsroads/internal/app"
	"github.com/okian/rootsroads/internal/domain/article"
	"github.com/okian/rootsroads/internal/domain/dataset"
	"github.com/okian/rootsroads/internal/domain/geomap"
	"github.com/okian/rootsroads/internal/domain/stats"
	"github.com/okian/rootsroads/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
)

const reloadPath = "/api/reload"

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// Current returns the published dataset.
	Current(ctx context.Context) (*dataset.Dataset, error)
	// Status reports loader progress and the last failure.
	Status() service.Status
	// Reload reruns the loader.
	Reload(ctx context.Context) (*dataset.Dataset, error)
	// GetStats returns loader statistics for monitoring.
	GetStats() map[string]any
}

// Articles is the read-only article table.
type Articles interface {
	List() []article.Article
	Get(id string) (article.Article, error)
}

// Server wires HTTP routes for the site API.
type Server struct {
	deps     Dependencies
	log      logger.Logger
	boundary geomap.BoundaryService
	articles Articles

	globeTexture     string
	mapView          geomap.View
	highlightPadding int
	counterOptions   []stats.Option
	rateLimit        int
	boundaryLimit    int
	corsOrigins      []string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and handler logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBoundaryService enables /api/boundary.
func WithBoundaryService(b geomap.BoundaryService) Option {
	return func(s *Server) { s.boundary = b }
}

// WithArticles enables /api/articles.
func WithArticles(a Articles) Option {
	return func(s *Server) { s.articles = a }
}

// WithGlobeTexture sets the texture URL sent with the globe scene.
func WithGlobeTexture(url string) Option {
	return func(s *Server) {
		if url != "" {
			s.globeTexture = url
		}
	}
}

// WithMapView sets the initial map camera.
func WithMapView(v geomap.View) Option {
	return func(s *Server) { s.mapView = v }
}

// WithHighlightPadding sets the padding used when framing a country.
func WithHighlightPadding(px int) Option {
	return func(s *Server) {
		if px >= 0 {
			s.highlightPadding = px
		}
	}
}

// WithCounterAnimation sets the dashboard counter duration and step count.
func WithCounterAnimation(d time.Duration, steps int) Option {
	return func(s *Server) {
		s.counterOptions = []stats.Option{stats.WithDuration(d), stats.WithSteps(steps)}
	}
}

// WithRateLimit caps requests per client IP and minute. The boundary proxy
// gets a tenth of it.
func WithRateLimit(perMinute int) Option {
	return func(s *Server) {
		if perMinute > 0 {
			s.rateLimit = perMinute
			s.boundaryLimit = max(perMinute/10, 1)
		}
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// NewServer creates a new API server.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:             deps,
		log:              logger.Nop(),
		globeTexture:     "https://unpkg.com/three-globe/example/img/earth-blue-marble.jpg",
		mapView:          geomap.DefaultView,
		highlightPadding: geomap.DefaultPaddingPX,
		rateLimit:        600,
		boundaryLimit:    60,
		corsOrigins:      []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns a chi router with the middleware stack and every API route.
func (s *Server) Router(ctx context.Context) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(httprate.Limit(s.rateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.Register(ctx, r)
	return r
}

// Register attaches all API routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.Get("/healthz", MetricsMiddleware(NewHealthHandler().HandleHealth, "healthz"))

	r.Route("/api", func(r chi.Router) {
		status := NewStatusHandler(s.deps, s.log)
		r.Get("/status", MetricsMiddleware(status.HandleStatus, "status"))
		r.Post("/reload", MetricsMiddleware(status.HandleReload, "reload"))

		r.Get("/contributors", MetricsMiddleware(NewContributorsHandler(s.current).HandleList, "contributors"))

		st := NewStatsHandler(s.current, s.deps, s.counterOptions...)
		r.Get("/stats", MetricsMiddleware(st.HandleStats, "stats"))
		r.Get("/stats/stream", MetricsMiddleware(st.HandleStream, "stats_stream"))

		r.Get("/globe", MetricsMiddleware(NewGlobeHandler(s.current, s.globeTexture).HandleScene, "globe"))
		r.Get("/map", MetricsMiddleware(NewMapHandler(s.current, s.mapView, s.highlightPadding).HandleView, "map"))

		if s.boundary != nil {
			b := NewBoundaryHandler(s.boundary, s.highlightPadding, s.log)
			r.With(httprate.Limit(s.boundaryLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))).
				Get("/boundary", MetricsMiddleware(b.HandleBoundary, "boundary"))
		}

		if s.articles != nil {
			a := NewArticlesHandler(s.articles)
			r.Get("/articles", MetricsMiddleware(a.HandleList, "articles"))
			r.Get("/articles/{id}", MetricsMiddleware(a.HandleGet, "article"))
		}
	})
}

// currentFunc resolves the dataset for a request or writes the error response.
type currentFunc func(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, bool)

// current returns the published dataset, or writes the blocking error
// surface and reports false.
func (s *Server) current(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, bool) {
	ds, err := s.deps.Current(r.Context())
	if err == nil {
		return ds, true
	}
	st := s.deps.Status()
	switch st.Phase {
	case service.PhaseFailed:
		_ = render.Render(w, r, errUnavailable(string(st.ErrorKind), st.Message))
	case service.PhaseReady:
		s.log.Error(r.Context(), "dataset missing after successful load", logger.Error(err))
		_ = render.Render(w, r, errInternal(err))
	default:
		w.Header().Set("Retry-After", "2")
		_ = render.Render(w, r, errUnavailable("", st.Message))
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, article.ErrNotFound)
}
