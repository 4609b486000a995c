package responses

import (
	"github.com/recaphq/recap-server/internal/domain/catalog"
	"github.com/recaphq/recap-server/internal/domain/layout"
)

// ModuleListResponse wraps module definitions for list endpoints.
type ModuleListResponse struct {
	Data  []catalog.ModuleDefinition `json:"data"`
	Total int                        `json:"total"`
}

// ModulesFromEntries maps registry entries onto their serializable
// definitions. Renderer handles never leave the process.
func ModulesFromEntries(entries []*catalog.Entry) ModuleListResponse {
	defs := make([]catalog.ModuleDefinition, 0, len(entries))
	for _, entry := range entries {
		defs = append(defs, entry.Definition)
	}
	return ModuleListResponse{Data: defs, Total: len(defs)}
}

// LayoutListResponse wraps layout templates for list endpoints.
type LayoutListResponse struct {
	Data  []layout.Template `json:"data"`
	Total int               `json:"total"`
}
