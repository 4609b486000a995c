package catalog

import (
	"fmt"
	"sync"

	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
)

// Entry owns one registered module: its normalized definition, the opaque
// renderer handle the presentation surface supplied, and the prebuilt default
// slot config. Entries are immutable after registration.
type Entry struct {
	Definition ModuleDefinition

	// Renderer is a capability token for the presentation surface. The
	// engine stores it and hands it back; it never inspects or calls it.
	Renderer any

	defaultConfig ModuleConfig
	seq           int
}

// DefaultConfig returns a copy of the entry's default slot config template.
func (e *Entry) DefaultConfig() ModuleConfig {
	cfg := e.defaultConfig
	if e.defaultConfig.Settings != nil {
		cfg.Settings = make(map[string]any, len(e.defaultConfig.Settings))
		for k, v := range e.defaultConfig.Settings {
			cfg.Settings[k] = v
		}
	}
	if e.defaultConfig.Chrome.Actions != nil {
		cfg.Chrome.Actions = append([]string(nil), e.defaultConfig.Chrome.Actions...)
	}
	return cfg
}

// Registry manages registered module definitions.
type Registry interface {
	Register(moduleType string, renderer any, def Definition) error
	Get(moduleType string) (*Entry, bool)
	GetAll() []*Entry
	GetByCategory(category Category) []*Entry
	GetByVariant(variant string) []*Entry
	GetByRequirements(flags map[string]bool) []*Entry
	SearchByTags(tags []string, matchAll bool) []*Entry
	Has(moduleType string) bool
	Unregister(moduleType string) error
	Clear()
	ValidateConfig(moduleType string, candidate *ModuleConfig) ValidationResult
	Stats() Stats
}

// DefaultRegistry is the default implementation of Registry. Reads may run
// concurrently; registration is an administrative operation done during
// startup or test setup.
type DefaultRegistry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
	nextSeq int
}

// NewRegistry creates an empty module registry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		entries: make(map[string]*Entry),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry instance. Tests and multi-tenant
// hosts should construct their own via NewRegistry.
func Default() *DefaultRegistry {
	return defaultRegistry
}

// Register adds a module under the given type. The definition is normalized:
// missing variants default to ["standard"], the default variant to the first
// variant, and tags to an empty list.
func (r *DefaultRegistry) Register(moduleType string, renderer any, def Definition) error {
	if moduleType == "" {
		return engineErrors.NewInvalidDefinition(moduleType, "module type must not be empty")
	}
	if !def.Category.Valid() {
		return engineErrors.NewInvalidDefinition(moduleType,
			fmt.Sprintf("unknown category %q for module %s", def.Category, moduleType))
	}

	normalized, err := normalizeDefinition(moduleType, def)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[moduleType]; exists {
		return engineErrors.NewDuplicateModule(moduleType)
	}

	entry := &Entry{
		Definition:    normalized,
		Renderer:      renderer,
		defaultConfig: buildDefaultConfig(normalized),
		seq:           r.nextSeq,
	}
	r.nextSeq++
	r.entries[moduleType] = entry
	r.order = append(r.order, moduleType)
	return nil
}

func normalizeDefinition(moduleType string, def Definition) (ModuleDefinition, error) {
	normalized := ModuleDefinition{Type: moduleType, Definition: def}

	if len(normalized.Variants) == 0 {
		normalized.Variants = []string{VariantStandard}
	} else {
		normalized.Variants = append([]string(nil), normalized.Variants...)
	}
	if normalized.DefaultVariant == "" {
		normalized.DefaultVariant = normalized.Variants[0]
	}
	if !normalized.SupportsVariant(normalized.DefaultVariant) {
		return ModuleDefinition{}, engineErrors.NewInvalidDefinition(moduleType,
			fmt.Sprintf("default variant %q is not in variants for module %s", normalized.DefaultVariant, moduleType))
	}
	if normalized.Tags == nil {
		normalized.Tags = []string{}
	} else {
		normalized.Tags = append([]string(nil), normalized.Tags...)
	}
	if normalized.Requires != nil {
		requires := make(map[string]bool, len(normalized.Requires))
		for k, v := range normalized.Requires {
			requires[k] = v
		}
		normalized.Requires = requires
	}
	if normalized.DefaultSettings != nil {
		settings := make(map[string]any, len(normalized.DefaultSettings))
		for k, v := range normalized.DefaultSettings {
			settings[k] = v
		}
		normalized.DefaultSettings = settings
	}
	return normalized, nil
}

// buildDefaultConfig derives the slot config template a composed instance of
// this module starts from.
func buildDefaultConfig(def ModuleDefinition) ModuleConfig {
	settings := make(map[string]any, len(def.DefaultSettings))
	for k, v := range def.DefaultSettings {
		settings[k] = v
	}
	return ModuleConfig{
		Type:     def.Type,
		Variant:  def.DefaultVariant,
		Enabled:  true,
		Settings: settings,
		Chrome: Chrome{
			Title:   def.DisplayName,
			Icon:    def.Icon,
			Actions: []string{"collapse", "settings"},
		},
	}
}

// Get retrieves an entry by module type.
func (r *DefaultRegistry) Get(moduleType string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[moduleType]
	return entry, ok
}

// GetAll returns every entry in registration order.
func (r *DefaultRegistry) GetAll() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(*Entry) bool { return true })
}

// GetByCategory returns entries in the given category, in registration order.
func (r *DefaultRegistry) GetByCategory(category Category) []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(e *Entry) bool { return e.Definition.Category == category })
}

// GetByVariant returns entries supporting the given variant.
func (r *DefaultRegistry) GetByVariant(variant string) []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(e *Entry) bool { return e.Definition.SupportsVariant(variant) })
}

// GetByRequirements returns entries whose requires map has at least one flag
// that is true in the given flag set. OR semantics: one match is enough.
func (r *DefaultRegistry) GetByRequirements(flags map[string]bool) []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(e *Entry) bool {
		for flag, required := range e.Definition.Requires {
			if required && flags[flag] {
				return true
			}
		}
		return false
	})
}

// SearchByTags returns entries matching the tag set. With matchAll false a
// single shared tag qualifies; with matchAll true every tag must be present.
func (r *DefaultRegistry) SearchByTags(tags []string, matchAll bool) []*Entry {
	if len(tags) == 0 {
		return []*Entry{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(e *Entry) bool {
		tagSet := make(map[string]bool, len(e.Definition.Tags))
		for _, tag := range e.Definition.Tags {
			tagSet[tag] = true
		}
		if matchAll {
			for _, tag := range tags {
				if !tagSet[tag] {
					return false
				}
			}
			return true
		}
		for _, tag := range tags {
			if tagSet[tag] {
				return true
			}
		}
		return false
	})
}

// collect walks entries in registration order. Callers hold the read lock.
func (r *DefaultRegistry) collect(match func(*Entry) bool) []*Entry {
	result := make([]*Entry, 0, len(r.order))
	for _, moduleType := range r.order {
		entry := r.entries[moduleType]
		if match(entry) {
			result = append(result, entry)
		}
	}
	return result
}

// Has reports whether the module type is registered.
func (r *DefaultRegistry) Has(moduleType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[moduleType]
	return ok
}

// Unregister removes a module from the registry.
func (r *DefaultRegistry) Unregister(moduleType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[moduleType]; !exists {
		return engineErrors.NewModuleNotRegistered(moduleType)
	}
	delete(r.entries, moduleType)
	for i, t := range r.order {
		if t == moduleType {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes every registered module. Exposed for test isolation.
func (r *DefaultRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]*Entry)
	r.order = nil
	r.nextSeq = 0
}

// ValidateConfig checks a candidate module config against the registered
// definition. An unregistered module or an unsupported variant fails it.
func (r *DefaultRegistry) ValidateConfig(moduleType string, candidate *ModuleConfig) ValidationResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[moduleType]
	if !ok {
		return ValidationResult{
			Valid:  false,
			Errors: []string{fmt.Sprintf("module not registered: %s", moduleType)},
		}
	}

	var errs []string
	if candidate != nil && candidate.Variant != "" && !entry.Definition.SupportsVariant(candidate.Variant) {
		errs = append(errs, fmt.Sprintf("variant %q is not supported by module %s", candidate.Variant, moduleType))
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// Stats returns registry counts for observability.
func (r *DefaultRegistry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		TotalModules: len(r.order),
		ByCategory:   make(map[Category]int),
		Types:        append([]string(nil), r.order...),
	}
	for _, moduleType := range r.order {
		stats.ByCategory[r.entries[moduleType].Definition.Category]++
	}
	return stats
}
