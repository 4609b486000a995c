// Package layout defines layout templates, their catalog, and the heuristic
// selector that picks a template for a session.
package layout

import (
	"github.com/recaphq/recap-server/internal/domain/catalog"
)

// Type is the closed set of layout template types.
type Type string

const (
	TypeDefault              Type = "default"
	TypeDeepWorkDev          Type = "deep_work_dev"
	TypeLearningSession      Type = "learning_session"
	TypeCollaborativeMeeting Type = "collaborative_meeting"
	TypeResearchReview       Type = "research_review"
	TypeCreativeWorkshop     Type = "creative_workshop"
	TypePresentation         Type = "presentation"
)

// String returns the string representation of the layout type.
func (t Type) String() string {
	return string(t)
}

// Valid reports whether the layout type is one of the closed set.
func (t Type) Valid() bool {
	switch t {
	case TypeDefault, TypeDeepWorkDev, TypeLearningSession, TypeCollaborativeMeeting,
		TypeResearchReview, TypeCreativeWorkshop, TypePresentation:
		return true
	}
	return false
}

// Breakpoint names a responsive target.
type Breakpoint string

const (
	BreakpointDesktop Breakpoint = "desktop"
	BreakpointTablet  Breakpoint = "tablet"
	BreakpointMobile  Breakpoint = "mobile"
)

// Placement positions a slot on the grid for one breakpoint.
type Placement struct {
	Column  int `json:"column"`
	Row     int `json:"row"`
	ColSpan int `json:"colSpan"`
	RowSpan int `json:"rowSpan"`
}

// Slot is a named placement region. A slot holds at most one module. Slot
// order within a template is fill priority: earlier slots are filled first.
type Slot struct {
	ID         string                   `json:"id"`
	Placements map[Breakpoint]Placement `json:"placements,omitempty"`

	// Accepts restricts fallback filling to the given categories. Empty
	// accepts any module.
	Accepts []catalog.Category `json:"accepts,omitempty"`
}

// AcceptsCategory reports whether the slot admits modules of the category.
func (s Slot) AcceptsCategory(category catalog.Category) bool {
	if len(s.Accepts) == 0 {
		return true
	}
	for _, c := range s.Accepts {
		if c == category {
			return true
		}
	}
	return false
}

// GridConfig describes the base grid a template lays its slots on.
type GridConfig struct {
	Columns int `json:"columns"`
	Gap     int `json:"gap"`
}

// Template is one layout: an ordered set of slots on a grid plus the modules
// recommended for it.
type Template struct {
	Type               Type       `json:"layoutType"`
	DisplayName        string     `json:"displayName,omitempty"`
	Description        string     `json:"description,omitempty"`
	Slots              []Slot     `json:"slots"`
	Grid               GridConfig `json:"gridConfig"`
	RecommendedModules []string   `json:"recommendedModules,omitempty"`
}

// Slot returns the slot with the given id.
func (t *Template) Slot(id string) (Slot, bool) {
	for _, slot := range t.Slots {
		if slot.ID == id {
			return slot, true
		}
	}
	return Slot{}, false
}

// HasSlot reports whether the template declares the slot id.
func (t *Template) HasSlot(id string) bool {
	_, ok := t.Slot(id)
	return ok
}

// SlotIDs returns the slot ids in fill-priority order.
func (t *Template) SlotIDs() []string {
	ids := make([]string, 0, len(t.Slots))
	for _, slot := range t.Slots {
		ids = append(ids, slot.ID)
	}
	return ids
}
