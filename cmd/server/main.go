// Package main provides the main entry point for the eco atlas backend server.
// It sets up the HTTP server, database connections, middleware, and API routes.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ecoatlas/internal/config"
	"ecoatlas/internal/di"
	"ecoatlas/internal/handlers"
	"ecoatlas/internal/observability"
	contextutils "ecoatlas/internal/utils"
	"ecoatlas/internal/version"
)

// Application encapsulates the main application logic and can be tested
type Application struct {
	container di.ServiceContainerInterface
	server    *http.Server
	logger    *observability.Logger
}

// NewApplication creates a new application instance
func NewApplication(container di.ServiceContainerInterface, metricsHandler http.Handler) (*Application, error) {
	problemService, err := container.GetProblemService()
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get problem service")
	}

	solutionService, err := container.GetSolutionService()
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get solution service")
	}

	ideaService, err := container.GetIdeaService()
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get idea service")
	}

	statsService, err := container.GetStatsService()
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to get stats service")
	}

	cfg := container.GetConfig()
	router, err := handlers.NewRouter(
		cfg,
		problemService,
		solutionService,
		ideaService,
		statsService,
		container.GetDatabase(),
		metricsHandler,
		container.GetLogger(),
	)
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to build router")
	}

	return &Application{
		container: container,
		logger:    container.GetLogger(),
		server: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
	}, nil
}

// Run serves HTTP until ctx is cancelled or the listener fails.
func (a *Application) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "HTTP server listening", map[string]interface{}{"addr": a.server.Addr})
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err, ok := <-serverErr:
		if !ok {
			return nil
		}
		return contextutils.WrapError(err, "server failed")
	}
}

// Shutdown drains in-flight requests, then releases the container.
func (a *Application) Shutdown(ctx context.Context) error {
	serverErr := a.server.Shutdown(ctx)
	if serverErr != nil {
		a.logger.Error(ctx, "HTTP server shutdown failed", serverErr)
	}
	return errors.Join(serverErr, a.container.Shutdown(ctx))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	telemetry, err := observability.SetupObservability(&cfg.OpenTelemetry, config.DefaultServiceName, cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}
	logger := telemetry.Logger
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Warn(shutdownCtx, "Error shutting down telemetry", map[string]interface{}{"error": err.Error()})
		}
	}()

	flushErrors, err := observability.InitErrorReporting(cfg.Sentry, version.Version)
	if err != nil {
		logger.Warn(ctx, "Error reporting disabled", map[string]interface{}{"error": err.Error()})
		flushErrors = func() {}
	}
	defer flushErrors()

	logger.Info(ctx, "Starting eco atlas backend", map[string]interface{}{
		"port":           cfg.Server.Port,
		"log_level":      cfg.Server.LogLevel,
		"serve_frontend": cfg.Server.ServeFrontend,
	})

	container := di.NewServiceContainer(cfg, logger, telemetry.Instruments)
	if err := container.Initialize(ctx); err != nil {
		logger.Error(ctx, "Failed to initialize services", err)
		os.Exit(1)
	}

	app, err := NewApplication(container, telemetry.MetricsHandler)
	if err != nil {
		logger.Error(ctx, "Failed to create application", err)
		_ = container.Shutdown(context.Background())
		os.Exit(1)
	}

	runErr := app.Run(ctx)
	if runErr != nil {
		logger.Error(ctx, "Application failed", runErr)
	} else {
		logger.Info(context.Background(), "Received shutdown signal, shutting down gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "Error during application shutdown", err)
		runErr = errors.Join(runErr, err)
	}

	if runErr != nil {
		cancel()
		stop()
		os.Exit(1)
	}
	logger.Info(shutdownCtx, "Shutdown completed successfully")
}
