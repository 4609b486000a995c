package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/recaphq/recap-server/internal/domain/layout"
	"github.com/recaphq/recap-server/internal/domain/session"
	"github.com/recaphq/recap-server/internal/domain/workspace"
	"github.com/recaphq/recap-server/internal/infrastructure/auth"
	"github.com/recaphq/recap-server/internal/interfaces/httpserver/requests"
	"github.com/recaphq/recap-server/internal/interfaces/httpserver/responses"
)

// WorkspaceService is the generation surface the HTTP layer consumes.
type WorkspaceService interface {
	GenerateConfiguration(ctx context.Context, data session.Data, opts workspace.GenerateOptions) workspace.GenerationResult
	AnalyzeSession(ctx context.Context, data session.Data) (session.Characteristics, error)
	SelectLayout(ctx context.Context, data session.Data, override string) (layout.Selection, error)
}

// WorkspaceHandler exposes HTTP entrypoints for configuration generation.
type WorkspaceHandler struct {
	service WorkspaceService
	log     zerolog.Logger
}

// NewWorkspaceHandler constructs the handler.
func NewWorkspaceHandler(service WorkspaceService, log zerolog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		service: service,
		log:     log.With().Str("handler", "workspace").Logger(),
	}
}

// GenerateConfig handles POST /v1/workspace/config
// @Summary Generate a workspace configuration
// @Description Analyzes the session, selects a layout, composes modules, and returns the full generation result. Generation never hard-fails: success false carries a fallback configuration.
// @Tags Workspace
// @Accept json
// @Produce json
// @Param request body requests.GenerateConfigRequest true "Session data and generation options"
// @Success 200 {object} workspace.GenerationResult
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/workspace/config [post]
func (h *WorkspaceHandler) GenerateConfig(c *gin.Context) {
	var req requests.GenerateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBadRequest(c, err, "invalid generation request")
		return
	}

	// Attribute the configuration to the authenticated subject when the
	// session itself does not name a user.
	if req.SessionData.UserID == "" {
		req.SessionData.UserID = auth.UserID(c)
	}

	result := h.service.GenerateConfiguration(c.Request.Context(), req.SessionData, req.Options)

	// The result shape is the contract; fallbacks still return 200.
	c.JSON(http.StatusOK, result)
}

// AnalyzeSession handles POST /v1/workspace/analyze
// @Summary Analyze session content
// @Description Extracts content characteristics from raw session data
// @Tags Workspace
// @Accept json
// @Produce json
// @Param request body requests.AnalyzeSessionRequest true "Session data"
// @Success 200 {object} session.Characteristics
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/workspace/analyze [post]
func (h *WorkspaceHandler) AnalyzeSession(c *gin.Context) {
	var req requests.AnalyzeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBadRequest(c, err, "invalid analyze request")
		return
	}

	characteristics, err := h.service.AnalyzeSession(c.Request.Context(), req.SessionData)
	if err != nil {
		responses.HandleError(c, err, "failed to analyze session")
		return
	}

	c.JSON(http.StatusOK, characteristics)
}

// SelectLayout handles POST /v1/workspace/layout
// @Summary Select a layout for a session
// @Description Runs layout selection without composing modules. An optional layoutType overrides the heuristics.
// @Tags Workspace
// @Accept json
// @Produce json
// @Param request body requests.SelectLayoutRequest true "Session data and optional layout override"
// @Success 200 {object} layout.Selection
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/workspace/layout [post]
func (h *WorkspaceHandler) SelectLayout(c *gin.Context) {
	var req requests.SelectLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBadRequest(c, err, "invalid layout request")
		return
	}

	selection, err := h.service.SelectLayout(c.Request.Context(), req.SessionData, req.LayoutType)
	if err != nil {
		responses.HandleError(c, err, "failed to select layout")
		return
	}

	c.JSON(http.StatusOK, selection)
}
