// Package app wires configuration, services, routing and lifecycle for the
// dashboard server.
package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"courtside/internal/config"
	"courtside/internal/dataset"
	apierrors "courtside/internal/errors"
	"courtside/internal/infrastructure"
	appmiddleware "courtside/internal/middleware"
	"courtside/internal/services"
	handlers "courtside/internal/transport/http"
	"courtside/pkg/contracts"
)

// AppName identifies the application in startup logs.
const AppName = "Courtside"

// Application is the main application container
type Application struct {
	Config           *config.Config
	Router           *chi.Mux
	Server           *http.Server
	Store            *dataset.Store
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	Logger           *slog.Logger
	Registry         *prometheus.Registry
	FrontendFS       fs.FS
}

// New creates the application: logger, services, router and HTTP server.
// The dataset is loaded eagerly so a bad input file fails here, before any
// request is served.
func New(cfg *config.Config, frontendFS fs.FS) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version),
		slog.String("dataset", cfg.Dataset.Path))

	app := &Application{
		Config:     cfg,
		Logger:     logger,
		FrontendFS: frontendFS,
		Registry:   prometheus.NewRegistry(),
	}

	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices builds the service graph and warms the dataset cache.
func (a *Application) initializeServices() error {
	a.Store = dataset.NewStore(a.Logger)
	a.DashboardService = services.NewDashboardService(a.Config, a.Store, a.Logger)
	a.HealthService = services.NewHealthService(a.Store, a.Config.Dataset.Path)

	// A DataError here is fatal: no partial dashboard is ever shown.
	if err := a.DashboardService.Warm(context.Background()); err != nil {
		return err
	}

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	errorHandler := apierrors.NewErrorHandler(a.Logger, false)
	httpMetrics := appmiddleware.NewHTTPMetrics(a.Registry)

	r.Use(appmiddleware.RequestID)
	r.Use(appmiddleware.RealIP)
	r.Use(httpMetrics.Handler)
	r.Use(appmiddleware.StructuredLogger(a.Logger))
	r.Use(appmiddleware.Recoverer(a.Logger))
	r.Use(appmiddleware.SecurityHeaders)
	r.Use(appmiddleware.Compress(5))

	if a.Config.Security.EnableCORS {
		r.Use(appmiddleware.CORS(appmiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(appmiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.Logger, errorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(appmiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		r.Mount("/dashboard", dashboardHandler.Routes())
	})

	r.Method(http.MethodGet, "/metrics", handlers.MetricsHandler(a.Registry))

	// The frontend is the presentation collaborator: it renders the series
	// the API computes and performs no aggregation of its own.
	r.Get("/*", a.serveFrontend())

	a.Router = r
}

// serveFrontend serves the embedded static dashboard, defaulting to
// index.html for the root and unmatched paths.
func (a *Application) serveFrontend() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path == "" {
			path = "index.html"
		}

		file, err := a.FrontendFS.Open(path)
		if err != nil {
			// Unmatched paths fall back to the single page
			file, err = a.FrontendFS.Open("index.html")
			if err != nil {
				http.NotFound(w, r)
				return
			}
			path = "index.html"
		}
		defer file.Close()

		switch strings.ToLower(filepath.Ext(path)) {
		case ".html":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
		case ".js":
			w.Header().Set("Content-Type", "application/javascript")
		case ".css":
			w.Header().Set("Content-Type", "text/css")
		case ".svg":
			w.Header().Set("Content-Type", "image/svg+xml")
		case ".ico":
			w.Header().Set("Content-Type", "image/x-icon")
		}

		io.Copy(w, file)
	}
}

// createServer builds the HTTP server from config
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run starts the server and blocks until an interrupt or a server error,
// then shuts down gracefully within the configured timeout.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr),
			slog.Int("port", a.Config.Server.Port))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if closeErr := infrastructure.CloseLogFile(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}
