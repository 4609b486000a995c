// Package workspace assembles session analysis, layout selection, and module
// composition into one immutable configuration for a presentation surface.
package workspace

import (
	"time"

	"github.com/recaphq/recap-server/internal/domain/catalog"
	"github.com/recaphq/recap-server/internal/domain/composition"
	"github.com/recaphq/recap-server/internal/domain/layout"
	"github.com/recaphq/recap-server/internal/domain/session"
)

// Configuration is the top-level aggregate handed to the caller. It is plain
// serializable data with no reference back into the catalogs.
type Configuration struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	Layout             layout.Template        `json:"layout"`
	AlternativeLayouts []layout.Type          `json:"alternativeLayouts,omitempty"`
	Theme              Theme                  `json:"theme"`
	Modules            []catalog.ModuleConfig `json:"modules"`
	Behavior           Behavior               `json:"behavior"`
	Metadata           Metadata               `json:"metadata"`
}

// Behavior carries presentation behavior flags.
type Behavior struct {
	AnimationsEnabled bool `json:"animationsEnabled"`
	AutoLayoutEnabled bool `json:"autoLayoutEnabled"`
	CompactMode       bool `json:"compactMode"`
}

// Metadata describes how and for whom the configuration was generated.
type Metadata struct {
	GeneratedAt     time.Time                `json:"generatedAt"`
	UserID          string                   `json:"userId,omitempty"`
	Tags            []string                 `json:"tags,omitempty"`
	Characteristics *session.Characteristics `json:"characteristics,omitempty"`
}

// GenerateOptions tune one generation call. Every field is optional.
type GenerateOptions struct {
	// LayoutType short-circuits heuristic selection when set.
	LayoutType string `json:"layoutType,omitempty"`

	// MaxModules caps placed modules. Zero defers to the service default.
	MaxModules int `json:"maxModules,omitempty"`

	// DefaultVariant is preferred for every module that supports it.
	DefaultVariant string `json:"defaultVariant,omitempty"`

	ExcludedModules  []string `json:"excludedModules,omitempty"`
	PreferredModules []string `json:"preferredModules,omitempty"`

	// ThemeMode is light, dark, or auto. Empty means auto.
	ThemeMode string `json:"themeMode,omitempty"`

	EnableAnimations *bool `json:"enableAnimations,omitempty"`
	EnableAutoLayout *bool `json:"enableAutoLayout,omitempty"`

	// FillEmptySlots controls fallback slot filling. Defaults to true.
	FillEmptySlots *bool `json:"fillEmptySlots,omitempty"`

	// Target is the responsive breakpoint: desktop, tablet, or mobile.
	Target string `json:"target,omitempty"`
}

// GenerationResult is the outcome of one generation call. Success false still
// carries a renderable fallback configuration and a non-empty error string.
type GenerationResult struct {
	Success           bool               `json:"success"`
	Config            *Configuration     `json:"config,omitempty"`
	LayoutSelection   layout.Selection   `json:"layoutSelection"`
	ModuleComposition composition.Result `json:"moduleComposition"`
	Validation        ValidationReport   `json:"validation"`
	Warnings          []string           `json:"warnings,omitempty"`
	Error             string             `json:"error,omitempty"`
}
