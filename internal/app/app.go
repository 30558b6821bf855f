package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"f500cli/internal/config"
	"f500cli/internal/dataset"
	apierrors "f500cli/internal/errors"
	"f500cli/internal/exporter"
	"f500cli/internal/infrastructure"
	customMiddleware "f500cli/internal/middleware"
	"f500cli/internal/services"
	handlers "f500cli/internal/transport/http"
	"f500cli/internal/validation"
)

const (
	// Version is the application version reported by /api/version.
	Version = "v1.0.0"
	// AppName is the human-readable application name.
	AppName = "Fortune 500 Insights"
)

// Application is the dependency container for the insights server.
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	Logger          *slog.Logger
	OTelProviders   *infrastructure.OTelProviders
	DatasetService  *services.DatasetService
	InsightsService *services.InsightsService
}

// NewApplication wires configuration, logging, observability, services and
// routes into a runnable application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	loader := dataset.NewLoader(logger)
	store := dataset.NewStore(cfg.Dataset.MaxCachedSets)
	uploadValidator := validation.NewUploadValidator(logger, cfg.Dataset.MaxUploadBytes)

	datasetService := services.NewDatasetService(loader, store, uploadValidator, logger)
	insightsService := services.NewInsightsService(datasetService, logger)

	app := &Application{
		Config:          cfg,
		Logger:          logger,
		OTelProviders:   otelProviders,
		DatasetService:  datasetService,
		InsightsService: insightsService,
	}

	app.setupRouter()

	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.Group(func(r chi.Router) {
		if otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders); err != nil {
			a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
		} else {
			r.Use(otelMiddleware.Handler)
		}

		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Server.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Server.RateLimit.RPS,
				a.Config.Server.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes configures API endpoints.
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)
	writer := exporter.NewWriter(a.Logger)

	datasetHandler := handlers.NewDatasetHandler(a.DatasetService, writer, a.Logger, errorHandler, a.Config.Dataset.MaxUploadBytes)
	insightsHandler := handlers.NewInsightsHandler(a.InsightsService, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.DatasetService, a.Logger, Version)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/version", healthHandler.Version)

		r.Route("/datasets", func(r chi.Router) {
			r.Post("/", datasetHandler.Upload)

			r.Route("/{datasetID}", func(r chi.Router) {
				r.Use(datasetHandler.DatasetCtx)
				r.Get("/", datasetHandler.Summary)
				r.Get("/regions", datasetHandler.Regions)
				r.Get("/locations", insightsHandler.Locations)
				r.Get("/export/{report}", datasetHandler.Export)
				r.Route("/insights", insightsHandler.RegisterRoutes)
			})
		})
	})

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)
}

// Run starts the server and blocks until an interrupt or server error.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("HTTP server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("OpenTelemetry shutdown failed", slog.String("error", err.Error()))
		}
		infrastructure.CloseLogger()
		return nil
	})

	return g.Wait()
}
