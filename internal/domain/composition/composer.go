// Package composition assigns catalog modules to layout slots under
// capability, capacity, and exclusion constraints.
package composition

import (
	"fmt"
	"sort"

	"github.com/recaphq/recap-server/internal/domain/catalog"
	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
	"github.com/recaphq/recap-server/internal/domain/layout"
	"github.com/recaphq/recap-server/internal/domain/session"
)

// Placement priority tiers. Lower is more important. Mobile targets drop the
// fallback tier.
const (
	priorityRequired    = 1
	priorityRecommended = 2
	priorityMatched     = 3
	priorityFallback    = 4
)

// Options tune one composition call.
type Options struct {
	// ExcludedModules are never placed. RequiredModules are force-included
	// even when no capability matches; required wins when a type appears in
	// both lists.
	ExcludedModules []string
	RequiredModules []string

	// PreferredVariant is used for every placed module that supports it.
	PreferredVariant string

	// MaxModules caps the number of placed modules. Zero or negative means
	// slot-bounded only.
	MaxModules int

	// FillEmptySlots places fallback modules into slots left empty after
	// ranked placement.
	FillEmptySlots bool

	// Target selects the responsive adjustment. Empty behaves as desktop.
	Target layout.Breakpoint
}

// Result is the outcome of one composition call.
type Result struct {
	Modules        []catalog.ModuleConfig `json:"modules"`
	TotalModules   int                    `json:"totalModules"`
	FilledSlots    []string               `json:"filledSlots"`
	AvailableSlots []string               `json:"availableSlots"`
	Warnings       []string               `json:"warnings,omitempty"`
}

// Composer fills layout slots with modules from the catalog.
type Composer struct {
	registry catalog.Registry
	layouts  *layout.Catalog
}

// NewComposer creates a composer over the given catalogs.
func NewComposer(registry catalog.Registry, layouts *layout.Catalog) *Composer {
	return &Composer{
		registry: registry,
		layouts:  layouts,
	}
}

// Compose resolves the layout, ranks candidate modules, and fills slots
// greedily in rank order. Non-fatal problems surface as warnings on the
// result.
func (c *Composer) Compose(layoutType layout.Type, characteristics session.Characteristics, opts Options) (Result, error) {
	template, ok := c.layouts.GetLayout(layoutType)
	if !ok {
		return Result{}, engineErrors.NewLayoutNotRegistered(string(layoutType))
	}

	var warnings []string

	regIndex := make(map[string]int)
	for i, entry := range c.registry.GetAll() {
		regIndex[entry.Definition.Type] = i
	}
	recIndex := make(map[string]int)
	for i, moduleType := range template.RecommendedModules {
		if _, seen := recIndex[moduleType]; !seen {
			recIndex[moduleType] = i
		}
	}

	excluded := make(map[string]bool, len(opts.ExcludedModules))
	for _, moduleType := range opts.ExcludedModules {
		excluded[moduleType] = true
	}
	required := make(map[string]bool, len(opts.RequiredModules))
	requiredOrder := make([]string, 0, len(opts.RequiredModules))
	for _, moduleType := range opts.RequiredModules {
		if !c.registry.Has(moduleType) {
			warnings = append(warnings, fmt.Sprintf("required module %s not registered", moduleType))
			continue
		}
		if !required[moduleType] {
			required[moduleType] = true
			requiredOrder = append(requiredOrder, moduleType)
		}
	}

	candidates := c.collectCandidates(template, characteristics, excluded, requiredOrder)

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if required[a] != required[b] {
			return required[a]
		}
		ra, recA := recIndex[a]
		rb, recB := recIndex[b]
		if recA && recB && ra != rb {
			return ra < rb
		}
		if recA != recB {
			return recA
		}
		return regIndex[a] < regIndex[b]
	})

	maxModules := opts.MaxModules
	if maxModules <= 0 {
		maxModules = len(template.Slots)
	}

	placed := make([]catalog.ModuleConfig, 0, len(template.Slots))
	slotTaken := make(map[string]bool, len(template.Slots))

	for _, moduleType := range candidates {
		if len(placed) >= maxModules {
			break
		}
		entry, ok := c.registry.Get(moduleType)
		if !ok {
			continue
		}
		slot, found := firstOpenSlot(template, slotTaken, entry.Definition.Category)
		if !found {
			continue
		}
		slotTaken[slot.ID] = true
		placed = append(placed, c.buildModuleConfig(entry, slot.ID, opts.PreferredVariant, tierFor(moduleType, required, recIndex)))
	}

	if opts.FillEmptySlots {
		placed, warnings = c.fillRemaining(template, placed, slotTaken, excluded, maxModules, opts.PreferredVariant, warnings)
	}

	filled := make([]string, 0, len(placed))
	available := make([]string, 0)
	for _, slot := range template.Slots {
		if slotTaken[slot.ID] {
			filled = append(filled, slot.ID)
			continue
		}
		available = append(available, slot.ID)
		warnings = append(warnings, fmt.Sprintf("slot %s left unfilled", slot.ID))
	}

	result := Result{
		Modules:        placed,
		TotalModules:   len(placed),
		FilledSlots:    filled,
		AvailableSlots: available,
		Warnings:       warnings,
	}
	return ApplyResponsive(result, opts.Target), nil
}

// collectCandidates gathers capability-matched and recommended module types,
// deduplicated, with exclusions removed and required types force-included.
func (c *Composer) collectCandidates(template layout.Template, characteristics session.Characteristics, excluded map[string]bool, requiredOrder []string) []string {
	seen := make(map[string]bool)
	var candidates []string
	add := func(moduleType string) {
		if seen[moduleType] || excluded[moduleType] {
			return
		}
		seen[moduleType] = true
		candidates = append(candidates, moduleType)
	}

	for _, entry := range c.registry.GetByRequirements(characteristics.Flags()) {
		add(entry.Definition.Type)
	}
	for _, moduleType := range template.RecommendedModules {
		if c.registry.Has(moduleType) {
			add(moduleType)
		}
	}
	// Required types are force-included, past any exclusion.
	for _, moduleType := range requiredOrder {
		if !seen[moduleType] {
			seen[moduleType] = true
			candidates = append(candidates, moduleType)
		}
	}
	return candidates
}

// fillRemaining places fallback modules into still-empty slots, bounded by
// maxModules and slot category constraints.
func (c *Composer) fillRemaining(template layout.Template, placed []catalog.ModuleConfig, slotTaken map[string]bool, excluded map[string]bool, maxModules int, preferredVariant string, warnings []string) ([]catalog.ModuleConfig, []string) {
	inUse := make(map[string]bool, len(placed))
	for _, m := range placed {
		inUse[m.Type] = true
	}

	for _, slot := range template.Slots {
		if slotTaken[slot.ID] || len(placed) >= maxModules {
			continue
		}
		for _, entry := range c.registry.GetAll() {
			moduleType := entry.Definition.Type
			if inUse[moduleType] || excluded[moduleType] {
				continue
			}
			if !slot.AcceptsCategory(entry.Definition.Category) {
				continue
			}
			slotTaken[slot.ID] = true
			inUse[moduleType] = true
			placed = append(placed, c.buildModuleConfig(entry, slot.ID, preferredVariant, priorityFallback))
			warnings = append(warnings, fmt.Sprintf("slot %s filled with fallback module %s", slot.ID, moduleType))
			break
		}
	}
	return placed, warnings
}

// buildModuleConfig instantiates a placed module from its registry default.
func (c *Composer) buildModuleConfig(entry *catalog.Entry, slotID, preferredVariant string, priority int) catalog.ModuleConfig {
	config := entry.DefaultConfig()
	config.ID = fmt.Sprintf("%s-%s", entry.Definition.Type, slotID)
	config.SlotID = slotID
	config.Variant = resolveVariant(entry, preferredVariant)
	config.Priority = priority
	return config
}

// resolveVariant picks the preferred variant when the module supports it,
// falling back to the module default.
func resolveVariant(entry *catalog.Entry, preferredVariant string) string {
	if preferredVariant != "" && entry.Definition.SupportsVariant(preferredVariant) {
		return preferredVariant
	}
	return entry.Definition.DefaultVariant
}

// firstOpenSlot returns the first empty slot that accepts the category.
func firstOpenSlot(template layout.Template, slotTaken map[string]bool, category catalog.Category) (layout.Slot, bool) {
	for _, slot := range template.Slots {
		if slotTaken[slot.ID] {
			continue
		}
		if slot.AcceptsCategory(category) {
			return slot, true
		}
	}
	return layout.Slot{}, false
}

func tierFor(moduleType string, required map[string]bool, recIndex map[string]int) int {
	if required[moduleType] {
		return priorityRequired
	}
	if _, ok := recIndex[moduleType]; ok {
		return priorityRecommended
	}
	return priorityMatched
}
