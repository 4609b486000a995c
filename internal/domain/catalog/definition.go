// Package catalog implements the module registry: the process-wide store of
// module definitions the composer draws candidates from.
package catalog

// Category is the closed set of module categories.
type Category string

const (
	CategoryMedia       Category = "media"
	CategoryTimeline    Category = "timeline"
	CategoryContent     Category = "content"
	CategoryAnalytics   Category = "analytics"
	CategoryNavigation  Category = "navigation"
	CategoryInteraction Category = "interaction"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// Valid reports whether the category is one of the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryMedia, CategoryTimeline, CategoryContent,
		CategoryAnalytics, CategoryNavigation, CategoryInteraction:
		return true
	}
	return false
}

// Common variant names. Variants are free strings; these are the ones the
// seeded modules use, ordered from smallest to richest.
const (
	VariantMinimal  = "minimal"
	VariantCompact  = "compact"
	VariantStandard = "standard"
	VariantExpanded = "expanded"
	VariantDetailed = "detailed"
)

// Definition describes a module at registration time. Type is passed
// separately to Register; optional fields are normalized there.
type Definition struct {
	DisplayName     string          `json:"displayName"`
	Description     string          `json:"description,omitempty"`
	Category        Category        `json:"category"`
	Icon            string          `json:"icon,omitempty"`
	Variants        []string        `json:"variants,omitempty"`
	DefaultVariant  string          `json:"defaultVariant,omitempty"`
	DefaultSettings map[string]any  `json:"defaultSettings,omitempty"`
	Requires        map[string]bool `json:"requires,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
}

// ModuleDefinition is the normalized definition stored in the registry.
type ModuleDefinition struct {
	Type string `json:"type"`
	Definition
}

// SupportsVariant reports whether the module declares the given variant.
func (d ModuleDefinition) SupportsVariant(variant string) bool {
	for _, v := range d.Variants {
		if v == variant {
			return true
		}
	}
	return false
}

// Chrome is the frame metadata a module instance renders with.
type Chrome struct {
	Title   string   `json:"title,omitempty"`
	Icon    string   `json:"icon,omitempty"`
	Actions []string `json:"actions,omitempty"`
}

// ModuleConfig is one composed module instance inside a configuration. It is
// created fresh per generation and discarded with the configuration.
type ModuleConfig struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	SlotID   string         `json:"slotId,omitempty"`
	Variant  string         `json:"variant"`
	Enabled  bool           `json:"enabled"`
	Settings map[string]any `json:"settings,omitempty"`
	Chrome   Chrome         `json:"chrome"`
	Priority int            `json:"priority"`
}

// ValidationResult reports the outcome of a candidate config check.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Stats summarizes registry contents for observability.
type Stats struct {
	TotalModules int              `json:"totalModules"`
	ByCategory   map[Category]int `json:"byCategory"`
	Types        []string         `json:"types"`
}
