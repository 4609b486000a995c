package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/recaphq/recap-server/internal/interfaces/httpserver/handlers"
)

func registerModuleRoutes(router gin.IRoutes, handler *handlers.CatalogHandler) {
	// gin matches the static /modules/stats segment ahead of :type.
	router.GET("/modules", handler.List)
	router.GET("/modules/stats", handler.Stats)
	router.GET("/modules/:type", handler.Get)
	router.POST("/modules/:type/validate", handler.ValidateConfig)
}
