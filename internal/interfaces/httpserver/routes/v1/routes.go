package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/recaphq/recap-server/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(engine *gin.Engine, middleware ...gin.HandlerFunc) {
	group := engine.Group("/v1", middleware...)
	registerWorkspaceRoutes(group, r.handlers.Workspace)
	registerModuleRoutes(group, r.handlers.Catalog)
	registerLayoutRoutes(group, r.handlers.Layout)
}
