package workspace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/recaphq/recap-server/internal/domain/catalog"
	"github.com/recaphq/recap-server/internal/domain/composition"
	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
	"github.com/recaphq/recap-server/internal/domain/layout"
	"github.com/recaphq/recap-server/internal/domain/session"
	"github.com/recaphq/recap-server/internal/utils/configid"
)

// Generator runs the full pipeline: analyze, select, compose, assemble,
// validate. It never panics and never returns a malformed result shape.
type Generator struct {
	registry catalog.Registry
	layouts  *layout.Catalog
	selector *layout.Selector
	composer *composition.Composer

	now func() time.Time
}

// NewGenerator creates a generator over the given catalogs.
func NewGenerator(registry catalog.Registry, layouts *layout.Catalog) *Generator {
	return &Generator{
		registry: registry,
		layouts:  layouts,
		selector: layout.NewSelector(),
		composer: composition.NewComposer(registry, layouts),
		now:      time.Now,
	}
}

// SelectionFor returns the layout selection for the characteristics. A
// non-empty override bypasses the heuristics at full confidence.
func (g *Generator) SelectionFor(characteristics session.Characteristics, override layout.Type) layout.Selection {
	if override != "" {
		return g.selector.Manual(override)
	}
	return g.selector.Select(characteristics)
}

// Generate produces a configuration for the session. Internal failures come
// back as success false with a fallback configuration on the default layout.
func (g *Generator) Generate(data session.Data, opts GenerateOptions) GenerationResult {
	if err := data.Validate(); err != nil {
		return g.failure(data, opts, nil, err)
	}
	characteristics := session.Analyze(data)

	override := layout.Type(opts.LayoutType)
	if override != "" && !override.Valid() {
		return g.failure(data, opts, &characteristics, invalidLayoutType(opts.LayoutType))
	}
	selection := g.SelectionFor(characteristics, override)

	composeOpts := composition.Options{
		ExcludedModules:  opts.ExcludedModules,
		RequiredModules:  opts.PreferredModules,
		PreferredVariant: opts.DefaultVariant,
		MaxModules:       opts.MaxModules,
		FillEmptySlots:   true,
		Target:           layout.Breakpoint(opts.Target),
	}
	if opts.FillEmptySlots != nil {
		composeOpts.FillEmptySlots = *opts.FillEmptySlots
	}

	composed, err := g.composer.Compose(selection.LayoutType, characteristics, composeOpts)
	if err != nil {
		return g.failure(data, opts, &characteristics, err)
	}

	// Compose succeeded, so the template is registered.
	template, _ := g.layouts.GetLayout(selection.LayoutType)
	theme, themeWarnings := resolveTheme(opts.ThemeMode, data)

	at := g.now()
	config := &Configuration{
		ID:                 configid.FromSeed(generationSeed(data, opts), seedTime(data)),
		Name:               deriveName(template, data, at),
		Layout:             template,
		AlternativeLayouts: alternativeTypes(selection),
		Theme:              theme,
		Modules:            composed.Modules,
		Behavior:           behaviorFrom(opts),
		Metadata: Metadata{
			GeneratedAt:     at,
			UserID:          data.UserID,
			Tags:            append([]string(nil), data.Tags...),
			Characteristics: &characteristics,
		},
	}

	report := ValidateConfiguration(config)

	warnings := make([]string, 0, len(composed.Warnings)+len(themeWarnings)+len(report.Warnings))
	warnings = append(warnings, composed.Warnings...)
	warnings = append(warnings, themeWarnings...)
	warnings = append(warnings, report.Warnings...)

	return GenerationResult{
		Success:           true,
		Config:            config,
		LayoutSelection:   selection,
		ModuleComposition: composed,
		Validation:        report,
		Warnings:          warnings,
	}
}

// failure builds the safe fallback shape: default layout, empty composition,
// and a configuration the caller can still render.
func (g *Generator) failure(data session.Data, opts GenerateOptions, characteristics *session.Characteristics, cause error) GenerationResult {
	at := g.now()

	selection := layout.Selection{
		LayoutType: layout.TypeDefault,
		Confidence: 0,
		Reasoning: []string{
			fmt.Sprintf("generation failed: %v", cause),
			"fell back to the default layout",
		},
		Timestamp: at.UTC(),
	}

	template, ok := g.layouts.GetLayout(layout.TypeDefault)
	if !ok {
		template = layout.Template{Type: layout.TypeDefault, Slots: []layout.Slot{}}
	}
	theme, _ := resolveTheme(opts.ThemeMode, data)

	config := &Configuration{
		ID:       configid.FromSeed(generationSeed(data, opts), seedTime(data)),
		Name:     deriveName(template, data, at),
		Layout:   template,
		Theme:    theme,
		Modules:  []catalog.ModuleConfig{},
		Behavior: behaviorFrom(opts),
		Metadata: Metadata{
			GeneratedAt:     at,
			UserID:          data.UserID,
			Tags:            append([]string(nil), data.Tags...),
			Characteristics: characteristics,
		},
	}

	return GenerationResult{
		Success:         false,
		Config:          config,
		LayoutSelection: selection,
		ModuleComposition: composition.Result{
			Modules:        []catalog.ModuleConfig{},
			FilledSlots:    []string{},
			AvailableSlots: template.SlotIDs(),
		},
		Validation: ValidateConfiguration(config),
		Error:      cause.Error(),
	}
}

func invalidLayoutType(value string) error {
	return engineErrors.NewInvalidLayout(value, fmt.Sprintf("unknown layout type: %s", value))
}

// generationSeed serializes the inputs so identical calls derive identical
// configuration ids.
func generationSeed(data session.Data, opts GenerateOptions) []byte {
	seed, _ := json.Marshal(struct {
		Data session.Data    `json:"data"`
		Opts GenerateOptions `json:"opts"`
	}{data, opts})
	return seed
}

func seedTime(data session.Data) time.Time {
	if data.StartTime != nil {
		return *data.StartTime
	}
	return time.Time{}
}

func behaviorFrom(opts GenerateOptions) Behavior {
	b := Behavior{AnimationsEnabled: true, AutoLayoutEnabled: true}
	if opts.EnableAnimations != nil {
		b.AnimationsEnabled = *opts.EnableAnimations
	}
	if opts.EnableAutoLayout != nil {
		b.AutoLayoutEnabled = *opts.EnableAutoLayout
	}
	b.CompactMode = layout.Breakpoint(opts.Target) == layout.BreakpointMobile
	return b
}

func alternativeTypes(selection layout.Selection) []layout.Type {
	if len(selection.Alternatives) == 0 {
		return nil
	}
	types := make([]layout.Type, 0, len(selection.Alternatives))
	for _, alt := range selection.Alternatives {
		types = append(types, alt.LayoutType)
	}
	return types
}

// deriveName builds a readable configuration name from the layout and the
// session date.
func deriveName(template layout.Template, data session.Data, at time.Time) string {
	base := template.DisplayName
	if base == "" {
		base = humanizeLayoutType(template.Type)
	}
	day := at
	if data.StartTime != nil {
		day = *data.StartTime
	}
	return fmt.Sprintf("%s - %s", base, day.Format("Jan 2, 2006"))
}

func humanizeLayoutType(layoutType layout.Type) string {
	words := strings.Split(string(layoutType), "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
