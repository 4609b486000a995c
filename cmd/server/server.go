package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/joho/godotenv"

	"github.com/recaphq/recap-server/internal/config"
	"github.com/recaphq/recap-server/internal/domain/catalog"
	"github.com/recaphq/recap-server/internal/domain/layout"
	"github.com/recaphq/recap-server/internal/domain/workspace"
	"github.com/recaphq/recap-server/internal/infrastructure/auth"
	"github.com/recaphq/recap-server/internal/infrastructure/logger"
	"github.com/recaphq/recap-server/internal/infrastructure/metrics"
	"github.com/recaphq/recap-server/internal/infrastructure/observability"
	"github.com/recaphq/recap-server/internal/infrastructure/seed"
	"github.com/recaphq/recap-server/internal/interfaces/httpserver"
)

// @title Recap Workspace API
// @version 1.0
// @description Adaptive workspace configuration engine for session recaps
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func init() {
	logger.GetLogger()
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	registry := catalog.NewRegistry()
	layouts := layout.NewCatalog()
	if err := seed.Load(registry, layouts); err != nil {
		log.Fatal().Err(err).Msg("seed catalogs")
	}
	metrics.SetCatalogSize(registry.Stats().TotalModules, layouts.Len())
	log.Info().
		Int("modules", registry.Stats().TotalModules).
		Int("layouts", layouts.Len()).
		Msg("catalogs seeded")

	generator := workspace.NewGenerator(registry, layouts)
	service, err := workspace.NewService(generator, cfg.GenerationCacheSize, cfg.DefaultMaxModules)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize workspace service")
	}

	httpServer := httpserver.New(cfg, log, service, registry, layouts, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
