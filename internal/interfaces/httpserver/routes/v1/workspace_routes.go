package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/recaphq/recap-server/internal/interfaces/httpserver/handlers"
)

func registerWorkspaceRoutes(router gin.IRoutes, handler *handlers.WorkspaceHandler) {
	router.POST("/workspace/config", handler.GenerateConfig)
	router.POST("/workspace/analyze", handler.AnalyzeSession)
	router.POST("/workspace/layout", handler.SelectLayout)
}
