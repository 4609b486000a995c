//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/recaphq/recap-server/internal/config"
	"github.com/recaphq/recap-server/internal/domain/catalog"
	"github.com/recaphq/recap-server/internal/domain/layout"
	"github.com/recaphq/recap-server/internal/domain/workspace"
	"github.com/recaphq/recap-server/internal/infrastructure/auth"
	"github.com/recaphq/recap-server/internal/infrastructure/logger"
	"github.com/recaphq/recap-server/internal/infrastructure/seed"
	"github.com/recaphq/recap-server/internal/interfaces/httpserver"
	"github.com/recaphq/recap-server/internal/interfaces/httpserver/handlers"
)

var engineSet = wire.NewSet(
	catalog.NewRegistry,
	wire.Bind(new(catalog.Registry), new(*catalog.DefaultRegistry)),
	layout.NewCatalog,
	newSeededGenerator,
	newWorkspaceService,
	wire.Bind(new(handlers.WorkspaceService), new(*workspace.Service)),
)

// BuildApplication demonstrates how to assemble the workspace service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		newLogger,
		newAuthValidator,
		engineSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}

// newSeededGenerator loads the embedded catalogs before handing the generator
// out, so injection fails fast on a broken seed.
func newSeededGenerator(registry catalog.Registry, layouts *layout.Catalog) (*workspace.Generator, error) {
	if err := seed.Load(registry, layouts); err != nil {
		return nil, err
	}
	return workspace.NewGenerator(registry, layouts), nil
}

func newWorkspaceService(cfg *config.Config, generator *workspace.Generator) (*workspace.Service, error) {
	return workspace.NewService(generator, cfg.GenerationCacheSize, cfg.DefaultMaxModules)
}
