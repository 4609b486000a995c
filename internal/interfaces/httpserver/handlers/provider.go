package handlers

import (
	"github.com/rs/zerolog"

	"github.com/recaphq/recap-server/internal/domain/catalog"
	"github.com/recaphq/recap-server/internal/domain/layout"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Workspace *WorkspaceHandler
	Catalog   *CatalogHandler
	Layout    *LayoutHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(service WorkspaceService, registry catalog.Registry, layouts *layout.Catalog, log zerolog.Logger) *Provider {
	return &Provider{
		Workspace: NewWorkspaceHandler(service, log),
		Catalog:   NewCatalogHandler(registry, log),
		Layout:    NewLayoutHandler(layouts, log),
	}
}
