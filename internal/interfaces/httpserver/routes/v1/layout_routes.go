package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/recaphq/recap-server/internal/interfaces/httpserver/handlers"
)

func registerLayoutRoutes(router gin.IRoutes, handler *handlers.LayoutHandler) {
	router.GET("/layouts", handler.List)
	router.GET("/layouts/:type", handler.Get)
}
