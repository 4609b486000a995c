package layout

import (
	"fmt"
	"sync"

	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
)

// Catalog stores layout templates keyed by type. Registering the same type
// again replaces the previous template.
type Catalog struct {
	mu        sync.RWMutex
	templates map[Type]Template
	order     []Type
}

// NewCatalog creates an empty layout catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		templates: make(map[Type]Template),
	}
}

var defaultCatalog = NewCatalog()

// Default returns the process-wide layout catalog.
func Default() *Catalog {
	return defaultCatalog
}

// RegisterLayout adds or replaces a layout template.
func (c *Catalog) RegisterLayout(template Template) error {
	if template.Type == "" {
		return engineErrors.NewInvalidLayout("", "layout type is required")
	}
	if !template.Type.Valid() {
		return engineErrors.NewInvalidLayout(string(template.Type),
			fmt.Sprintf("unknown layout type: %s", template.Type))
	}
	seen := make(map[string]struct{}, len(template.Slots))
	for _, slot := range template.Slots {
		if slot.ID == "" {
			return engineErrors.NewInvalidLayout(string(template.Type), "slot id is required")
		}
		if _, dup := seen[slot.ID]; dup {
			return engineErrors.NewInvalidLayout(string(template.Type),
				fmt.Sprintf("duplicate slot id: %s", slot.ID))
		}
		seen[slot.ID] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.templates[template.Type]; !exists {
		c.order = append(c.order, template.Type)
	}
	c.templates[template.Type] = template
	return nil
}

// GetLayout returns the template registered under the type.
func (c *Catalog) GetLayout(layoutType Type) (Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	template, ok := c.templates[layoutType]
	return template, ok
}

// GetAllLayouts returns every registered template in registration order.
func (c *Catalog) GetAllLayouts() []Template {
	c.mu.RLock()
	defer c.mu.RUnlock()

	templates := make([]Template, 0, len(c.order))
	for _, layoutType := range c.order {
		templates = append(templates, c.templates[layoutType])
	}
	return templates
}

// Has reports whether a template is registered under the type.
func (c *Catalog) Has(layoutType Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.templates[layoutType]
	return ok
}

// Len returns the number of registered templates.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.templates)
}

// Clear removes every registered template.
func (c *Catalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.templates = make(map[Type]Template)
	c.order = nil
}
