package composition

import (
	"fmt"

	"github.com/recaphq/recap-server/internal/domain/catalog"
	"github.com/recaphq/recap-server/internal/domain/layout"
)

// ApplyResponsive adapts a composed result to the target breakpoint. Desktop
// and tablet pass through unchanged. Mobile drops fallback-tier modules and
// caps variants at standard. The transform is idempotent: applying it twice
// yields the same result as once.
func ApplyResponsive(r Result, target layout.Breakpoint) Result {
	if target != layout.BreakpointMobile {
		return r
	}

	kept := make([]catalog.ModuleConfig, 0, len(r.Modules))
	freed := make(map[string]bool)
	warnings := r.Warnings
	for _, m := range r.Modules {
		if m.Priority >= priorityFallback {
			if m.SlotID != "" {
				freed[m.SlotID] = true
			}
			warnings = append(warnings, fmt.Sprintf("module %s dropped for mobile target", m.Type))
			continue
		}
		m.Variant = capMobileVariant(m.Variant)
		kept = append(kept, m)
	}

	if len(kept) == len(r.Modules) && len(warnings) == len(r.Warnings) {
		r.Modules = kept
		return r
	}

	filled := make([]string, 0, len(r.FilledSlots))
	available := append([]string(nil), r.AvailableSlots...)
	for _, slotID := range r.FilledSlots {
		if freed[slotID] {
			available = append(available, slotID)
			continue
		}
		filled = append(filled, slotID)
	}

	return Result{
		Modules:        kept,
		TotalModules:   len(kept),
		FilledSlots:    filled,
		AvailableSlots: available,
		Warnings:       warnings,
	}
}

// capMobileVariant keeps rich variants off small screens. Modules that offer
// expanded or detailed variants also declare standard in the seed catalogs.
func capMobileVariant(variant string) string {
	switch variant {
	case catalog.VariantExpanded, catalog.VariantDetailed:
		return catalog.VariantStandard
	}
	return variant
}
