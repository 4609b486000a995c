package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/recaphq/recap-server/internal/domain/catalog"
	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
	"github.com/recaphq/recap-server/internal/interfaces/httpserver/responses"
)

// CatalogHandler exposes read and validation endpoints over the module
// registry.
type CatalogHandler struct {
	registry catalog.Registry
	log      zerolog.Logger
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(registry catalog.Registry, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		registry: registry,
		log:      log.With().Str("handler", "catalog").Logger(),
	}
}

// List handles GET /v1/modules
// @Summary List registered modules
// @Description Lists module definitions. Filters compose: category, variant, and tags all narrow the result.
// @Tags Modules
// @Produce json
// @Param category query string false "Module category"
// @Param variant query string false "Supported variant"
// @Param tag query []string false "Tag filter, repeatable"
// @Param match_all query bool false "Require every tag instead of any"
// @Success 200 {object} responses.ModuleListResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/modules [get]
func (h *CatalogHandler) List(c *gin.Context) {
	category := c.Query("category")
	variant := c.Query("variant")
	tags := c.QueryArray("tag")
	matchAll := c.Query("match_all") == "true"

	if category != "" && !catalog.Category(category).Valid() {
		responses.HandleBadRequest(c, fmt.Errorf("unknown category: %s", category), "invalid module filter")
		return
	}

	var entries []*catalog.Entry
	switch {
	case len(tags) > 0:
		entries = h.registry.SearchByTags(tags, matchAll)
	case category != "":
		entries = h.registry.GetByCategory(catalog.Category(category))
	case variant != "":
		entries = h.registry.GetByVariant(variant)
	default:
		entries = h.registry.GetAll()
	}

	// Secondary filters narrow whatever the primary lookup returned.
	filtered := make([]*catalog.Entry, 0, len(entries))
	for _, entry := range entries {
		if category != "" && entry.Definition.Category != catalog.Category(category) {
			continue
		}
		if variant != "" && !entry.Definition.SupportsVariant(variant) {
			continue
		}
		filtered = append(filtered, entry)
	}

	c.JSON(http.StatusOK, responses.ModulesFromEntries(filtered))
}

// Stats handles GET /v1/modules/stats
// @Summary Module registry statistics
// @Description Returns total module count, per-category counts, and registered types
// @Tags Modules
// @Produce json
// @Success 200 {object} catalog.Stats
// @Router /v1/modules/stats [get]
func (h *CatalogHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Stats())
}

// Get handles GET /v1/modules/:type
// @Summary Get one module definition
// @Tags Modules
// @Produce json
// @Param type path string true "Module type"
// @Success 200 {object} catalog.ModuleDefinition
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/modules/{type} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	moduleType := c.Param("type")

	entry, ok := h.registry.Get(moduleType)
	if !ok {
		responses.HandleError(c, engineErrors.NewModuleNotRegistered(moduleType), "module not found")
		return
	}

	c.JSON(http.StatusOK, entry.Definition)
}

// ValidateConfig handles POST /v1/modules/:type/validate
// @Summary Validate a candidate module config
// @Description Checks a candidate config against the registered definition. The validation result is the contract: an unregistered module comes back valid false, not 404.
// @Tags Modules
// @Accept json
// @Produce json
// @Param type path string true "Module type"
// @Param request body catalog.ModuleConfig true "Candidate module config"
// @Success 200 {object} catalog.ValidationResult
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/modules/{type}/validate [post]
func (h *CatalogHandler) ValidateConfig(c *gin.Context) {
	moduleType := c.Param("type")

	var candidate catalog.ModuleConfig
	if err := c.ShouldBindJSON(&candidate); err != nil {
		responses.HandleBadRequest(c, err, "invalid module config")
		return
	}

	c.JSON(http.StatusOK, h.registry.ValidateConfig(moduleType, &candidate))
}
