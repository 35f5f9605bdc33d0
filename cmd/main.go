package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/rootsroads/internal/adapters/boundary"
	"github.com/okian/rootsroads/internal/adapters/http/api"
	"github.com/okian/rootsroads/internal/adapters/http/site"
	"github.com/okian/rootsroads/internal/adapters/http/swagger"
	"github.com/okian/rootsroads/internal/adapters/sheet"
	app "github.com/okian/rootsroads/internal/app"
	"github.com/okian/rootsroads/internal/config"
	"github.com/okian/rootsroads/internal/domain/article"
	"github.com/okian/rootsroads/internal/domain/geomap"
	"github.com/okian/rootsroads/pkg/logger"
	"github.com/okian/rootsroads/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not available yet.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "server failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	svc := app.New(
		sheet.NewFetcher(cfg.SheetURL, sheet.WithTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond)),
		app.WithLogger(log.Named("loader")),
	)

	handler, err := newRouter(ctx, cfg, svc, log)
	if err != nil {
		return err
	}

	if cfg.LoadOnStart {
		// A failed load is shown to users with a retry action; it does not stop the server.
		_, _ = svc.Load(ctx)
	}

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// newRouter wires the API, docs and site routes.
func newRouter(ctx context.Context, cfg *config.Config, svc api.Dependencies, log logger.Logger) (http.Handler, error) {
	boundaries, err := boundary.New(cfg.BoundaryURL,
		boundary.WithTimeout(time.Duration(cfg.BoundaryTimeoutMS)*time.Millisecond),
		boundary.WithUserAgent(cfg.BoundaryUserAgent),
		boundary.WithCacheSize(cfg.BoundaryCacheSize),
		boundary.WithLogger(log.Named("boundary")),
	)
	if err != nil {
		return nil, err
	}
	articles, err := article.Default()
	if err != nil {
		return nil, err
	}

	apiServer := api.NewServer(svc,
		api.WithLogger(log.Named("http")),
		api.WithBoundaryService(boundaries),
		api.WithArticles(articles),
		api.WithGlobeTexture(cfg.GlobeTextureURL),
		api.WithMapView(geomap.View{
			Center: geomap.LatLng{Lat: cfg.MapCenterLat, Lng: cfg.MapCenterLng},
			Zoom:   cfg.MapZoom,
		}),
		api.WithHighlightPadding(cfg.HighlightPaddingPX),
		api.WithCounterAnimation(time.Duration(cfg.CounterDurationMS)*time.Millisecond, cfg.CounterSteps),
		api.WithRateLimit(cfg.RateLimitPerMinute),
		api.WithCORSOrigins(cfg.CORSAllowedOrigins),
	)

	r := apiServer.Router(ctx)
	swagger.Register(ctx, r)
	site.Register(ctx, r)
	return r, nil
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
