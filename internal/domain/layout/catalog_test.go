package layout_test

import (
	"testing"

	"github.com/recaphq/recap-server/internal/domain/catalog"
	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
	"github.com/recaphq/recap-server/internal/domain/layout"
)

func twoColumnTemplate(layoutType layout.Type) layout.Template {
	return layout.Template{
		Type:        layoutType,
		DisplayName: "Two Column",
		Slots: []layout.Slot{
			{ID: "main-left", Placements: map[layout.Breakpoint]layout.Placement{
				layout.BreakpointDesktop: {Column: 1, Row: 1, ColSpan: 8, RowSpan: 4},
			}},
			{ID: "side-right", Placements: map[layout.Breakpoint]layout.Placement{
				layout.BreakpointDesktop: {Column: 9, Row: 1, ColSpan: 4, RowSpan: 4},
			}},
		},
		Grid:               layout.GridConfig{Columns: 12, Gap: 16},
		RecommendedModules: []string{"session-timeline"},
	}
}

func TestCatalog_RegisterAndGet(t *testing.T) {
	c := layout.NewCatalog()

	if err := c.RegisterLayout(twoColumnTemplate(layout.TypeDefault)); err != nil {
		t.Fatalf("RegisterLayout() error = %v", err)
	}

	got, ok := c.GetLayout(layout.TypeDefault)
	if !ok {
		t.Fatal("GetLayout() ok = false, want true")
	}
	if got.DisplayName != "Two Column" {
		t.Errorf("GetLayout() displayName = %q, want %q", got.DisplayName, "Two Column")
	}
	if len(got.Slots) != 2 {
		t.Errorf("GetLayout() slots = %d, want 2", len(got.Slots))
	}
}

func TestCatalog_GetMissing(t *testing.T) {
	c := layout.NewCatalog()

	if _, ok := c.GetLayout(layout.TypePresentation); ok {
		t.Error("GetLayout() ok = true for an empty catalog, want false")
	}
}

func TestCatalog_ReRegisterReplaces(t *testing.T) {
	c := layout.NewCatalog()

	first := twoColumnTemplate(layout.TypeDefault)
	if err := c.RegisterLayout(first); err != nil {
		t.Fatalf("RegisterLayout() error = %v", err)
	}

	second := twoColumnTemplate(layout.TypeDefault)
	second.DisplayName = "Revised Two Column"
	if err := c.RegisterLayout(second); err != nil {
		t.Fatalf("RegisterLayout() second error = %v", err)
	}

	got, _ := c.GetLayout(layout.TypeDefault)
	if got.DisplayName != "Revised Two Column" {
		t.Errorf("GetLayout() displayName = %q, want the replacement", got.DisplayName)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCatalog_GetAllPreservesOrder(t *testing.T) {
	c := layout.NewCatalog()

	order := []layout.Type{layout.TypeDefault, layout.TypeDeepWorkDev, layout.TypeLearningSession}
	for _, layoutType := range order {
		if err := c.RegisterLayout(twoColumnTemplate(layoutType)); err != nil {
			t.Fatalf("RegisterLayout(%s) error = %v", layoutType, err)
		}
	}

	all := c.GetAllLayouts()
	if len(all) != len(order) {
		t.Fatalf("GetAllLayouts() = %d templates, want %d", len(all), len(order))
	}
	for i, want := range order {
		if all[i].Type != want {
			t.Errorf("GetAllLayouts()[%d] = %v, want %v", i, all[i].Type, want)
		}
	}
}

func TestCatalog_RejectsInvalidTemplates(t *testing.T) {
	tests := []struct {
		name     string
		template layout.Template
	}{
		{
			name:     "empty type",
			template: layout.Template{},
		},
		{
			name:     "unknown type",
			template: layout.Template{Type: "split_brain"},
		},
		{
			name: "empty slot id",
			template: layout.Template{
				Type:  layout.TypeDefault,
				Slots: []layout.Slot{{ID: ""}},
			},
		},
		{
			name: "duplicate slot id",
			template: layout.Template{
				Type:  layout.TypeDefault,
				Slots: []layout.Slot{{ID: "main-left"}, {ID: "main-left"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := layout.NewCatalog()

			err := c.RegisterLayout(tt.template)
			if err == nil {
				t.Fatal("RegisterLayout() error = nil, want invalid definition error")
			}
			if code := engineErrors.CodeOf(err); code != engineErrors.ErrCodeInvalidDefinition {
				t.Errorf("CodeOf() = %q, want %q", code, engineErrors.ErrCodeInvalidDefinition)
			}
			if c.Len() != 0 {
				t.Errorf("Len() = %d after rejected registration, want 0", c.Len())
			}
		})
	}
}

func TestCatalog_Clear(t *testing.T) {
	c := layout.NewCatalog()

	if err := c.RegisterLayout(twoColumnTemplate(layout.TypeDefault)); err != nil {
		t.Fatalf("RegisterLayout() error = %v", err)
	}
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear(), want 0", c.Len())
	}
	if got := c.GetAllLayouts(); len(got) != 0 {
		t.Errorf("GetAllLayouts() = %d templates after Clear(), want 0", len(got))
	}
}

func TestTemplate_SlotLookup(t *testing.T) {
	template := twoColumnTemplate(layout.TypeDefault)

	if !template.HasSlot("main-left") {
		t.Error("HasSlot(main-left) = false, want true")
	}
	if template.HasSlot("footer") {
		t.Error("HasSlot(footer) = true, want false")
	}

	ids := template.SlotIDs()
	want := []string{"main-left", "side-right"}
	if len(ids) != len(want) {
		t.Fatalf("SlotIDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("SlotIDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestSlot_AcceptsCategory(t *testing.T) {
	open := layout.Slot{ID: "any-slot"}
	restricted := layout.Slot{ID: "media-slot", Accepts: []catalog.Category{catalog.CategoryMedia}}

	if !open.AcceptsCategory(catalog.CategoryContent) {
		t.Error("open slot AcceptsCategory(content) = false, want true")
	}
	if !restricted.AcceptsCategory(catalog.CategoryMedia) {
		t.Error("restricted slot AcceptsCategory(media) = false, want true")
	}
	if restricted.AcceptsCategory(catalog.CategoryAnalytics) {
		t.Error("restricted slot AcceptsCategory(analytics) = true, want false")
	}
}
