package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
	"github.com/recaphq/recap-server/internal/domain/layout"
	"github.com/recaphq/recap-server/internal/interfaces/httpserver/responses"
)

// LayoutHandler exposes read endpoints over the layout catalog.
type LayoutHandler struct {
	layouts *layout.Catalog
	log     zerolog.Logger
}

// NewLayoutHandler constructs the handler.
func NewLayoutHandler(layouts *layout.Catalog, log zerolog.Logger) *LayoutHandler {
	return &LayoutHandler{
		layouts: layouts,
		log:     log.With().Str("handler", "layout").Logger(),
	}
}

// List handles GET /v1/layouts
// @Summary List layout templates
// @Tags Layouts
// @Produce json
// @Success 200 {object} responses.LayoutListResponse
// @Router /v1/layouts [get]
func (h *LayoutHandler) List(c *gin.Context) {
	templates := h.layouts.GetAllLayouts()
	c.JSON(http.StatusOK, responses.LayoutListResponse{Data: templates, Total: len(templates)})
}

// Get handles GET /v1/layouts/:type
// @Summary Get one layout template
// @Tags Layouts
// @Produce json
// @Param type path string true "Layout type"
// @Success 200 {object} layout.Template
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/layouts/{type} [get]
func (h *LayoutHandler) Get(c *gin.Context) {
	layoutType := layout.Type(c.Param("type"))

	template, ok := h.layouts.GetLayout(layoutType)
	if !ok {
		responses.HandleError(c, engineErrors.NewLayoutNotRegistered(string(layoutType)), "layout not found")
		return
	}

	c.JSON(http.StatusOK, template)
}
