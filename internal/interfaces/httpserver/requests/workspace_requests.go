package requests

import (
	"github.com/recaphq/recap-server/internal/domain/session"
	"github.com/recaphq/recap-server/internal/domain/workspace"
)

// GenerateConfigRequest carries session data plus generation options.
// Empty session data is valid and yields the fallback-friendly default
// configuration, so no field here is mandatory.
type GenerateConfigRequest struct {
	SessionData session.Data              `json:"sessionData"`
	Options     workspace.GenerateOptions `json:"options"`
}

// AnalyzeSessionRequest carries session data for characteristic extraction.
type AnalyzeSessionRequest struct {
	SessionData session.Data `json:"sessionData"`
}

// SelectLayoutRequest carries session data and an optional manual layout
// override. The override wins over heuristic selection when it names a
// registered layout.
type SelectLayoutRequest struct {
	SessionData session.Data `json:"sessionData"`
	LayoutType  string       `json:"layoutType,omitempty"`
}
