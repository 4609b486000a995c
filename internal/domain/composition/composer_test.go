package composition_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/recaphq/recap-server/internal/domain/catalog"
	"github.com/recaphq/recap-server/internal/domain/composition"
	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
	"github.com/recaphq/recap-server/internal/domain/layout"
	"github.com/recaphq/recap-server/internal/domain/session"
)

func newTestComposer(t *testing.T) *composition.Composer {
	t.Helper()

	registry := catalog.NewRegistry()
	register := func(moduleType string, def catalog.Definition) {
		t.Helper()
		if err := registry.Register(moduleType, nil, def); err != nil {
			t.Fatalf("Register(%s) error = %v", moduleType, err)
		}
	}

	register("session-timeline", catalog.Definition{
		DisplayName:    "Session Timeline",
		Category:       catalog.CategoryTimeline,
		Variants:       []string{catalog.VariantCompact, catalog.VariantStandard, catalog.VariantExpanded},
		DefaultVariant: catalog.VariantStandard,
	})
	register("notes-panel", catalog.Definition{
		DisplayName:    "Notes Panel",
		Category:       catalog.CategoryContent,
		Variants:       []string{catalog.VariantMinimal, catalog.VariantStandard, catalog.VariantDetailed},
		DefaultVariant: catalog.VariantStandard,
		Requires:       map[string]bool{session.FlagHasNotes: true},
	})
	register("task-board", catalog.Definition{
		DisplayName: "Task Board",
		Category:    catalog.CategoryContent,
		Requires:    map[string]bool{session.FlagHasTasks: true},
	})
	register("media-player", catalog.Definition{
		DisplayName:    "Media Player",
		Category:       catalog.CategoryMedia,
		Variants:       []string{catalog.VariantStandard, catalog.VariantExpanded},
		DefaultVariant: catalog.VariantStandard,
		Requires:       map[string]bool{session.FlagHasVideo: true, session.FlagHasAudio: true},
	})
	register("code-activity", catalog.Definition{
		DisplayName: "Code Activity",
		Category:    catalog.CategoryAnalytics,
		Requires:    map[string]bool{session.FlagHasCode: true},
	})

	layouts := layout.NewCatalog()
	template := layout.Template{
		Type: layout.TypeDeepWorkDev,
		Slots: []layout.Slot{
			{ID: "main-left"},
			{ID: "side-top"},
			{ID: "side-bottom", Accepts: []catalog.Category{catalog.CategoryContent}},
		},
		Grid:               layout.GridConfig{Columns: 12, Gap: 16},
		RecommendedModules: []string{"code-activity", "session-timeline"},
	}
	if err := layouts.RegisterLayout(template); err != nil {
		t.Fatalf("RegisterLayout() error = %v", err)
	}

	return composition.NewComposer(registry, layouts)
}

func codeAndNotes() session.Characteristics {
	return session.Characteristics{
		HasCodeChanges:   true,
		CodeChangeCount:  12,
		HasNotes:         true,
		NoteCount:        2,
		ParticipantCount: 1,
	}
}

func moduleTypes(result composition.Result) []string {
	types := make([]string, 0, len(result.Modules))
	for _, m := range result.Modules {
		types = append(types, m.Type)
	}
	return types
}

func hasWarning(result composition.Result, substr string) bool {
	for _, w := range result.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestCompose_RanksRecommendedBeforeMatched(t *testing.T) {
	c := newTestComposer(t)

	result, err := c.Compose(layout.TypeDeepWorkDev, codeAndNotes(), composition.Options{})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := []string{"code-activity", "session-timeline", "notes-panel"}
	if got := moduleTypes(result); !reflect.DeepEqual(got, want) {
		t.Fatalf("Compose() modules = %v, want %v", got, want)
	}
	if result.TotalModules != 3 {
		t.Errorf("TotalModules = %d, want 3", result.TotalModules)
	}
	wantSlots := []string{"main-left", "side-top", "side-bottom"}
	if !reflect.DeepEqual(result.FilledSlots, wantSlots) {
		t.Errorf("FilledSlots = %v, want %v", result.FilledSlots, wantSlots)
	}
	if len(result.AvailableSlots) != 0 {
		t.Errorf("AvailableSlots = %v, want none", result.AvailableSlots)
	}
	if result.Modules[0].ID != "code-activity-main-left" {
		t.Errorf("modules[0].ID = %q, want %q", result.Modules[0].ID, "code-activity-main-left")
	}
}

func TestCompose_ModuleConfigDefaults(t *testing.T) {
	c := newTestComposer(t)

	result, err := c.Compose(layout.TypeDeepWorkDev, codeAndNotes(), composition.Options{})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for _, m := range result.Modules {
		if !m.Enabled {
			t.Errorf("module %s enabled = false, want true", m.Type)
		}
		if m.Variant == "" {
			t.Errorf("module %s variant is empty", m.Type)
		}
		if m.Chrome.Title == "" {
			t.Errorf("module %s chrome title is empty", m.Type)
		}
	}
}

func TestCompose_MaxModulesClamp(t *testing.T) {
	c := newTestComposer(t)

	result, err := c.Compose(layout.TypeDeepWorkDev, codeAndNotes(), composition.Options{MaxModules: 2})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if result.TotalModules != 2 {
		t.Fatalf("TotalModules = %d, want 2", result.TotalModules)
	}
	if !hasWarning(result, "slot side-bottom left unfilled") {
		t.Errorf("warnings = %v, want unfilled slot warning", result.Warnings)
	}
	if !reflect.DeepEqual(result.AvailableSlots, []string{"side-bottom"}) {
		t.Errorf("AvailableSlots = %v, want [side-bottom]", result.AvailableSlots)
	}
}

func TestCompose_ExcludedModules(t *testing.T) {
	c := newTestComposer(t)

	result, err := c.Compose(layout.TypeDeepWorkDev, codeAndNotes(), composition.Options{
		ExcludedModules: []string{"code-activity"},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for _, m := range result.Modules {
		if m.Type == "code-activity" {
			t.Fatal("excluded module code-activity was placed")
		}
	}
}

func TestCompose_RequiredForceInclude(t *testing.T) {
	c := newTestComposer(t)

	result, err := c.Compose(layout.TypeDeepWorkDev, codeAndNotes(), composition.Options{
		RequiredModules: []string{"media-player"},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := []string{"media-player", "code-activity", "notes-panel"}
	if got := moduleTypes(result); !reflect.DeepEqual(got, want) {
		t.Fatalf("Compose() modules = %v, want %v", got, want)
	}
	if result.Modules[0].Priority != 1 {
		t.Errorf("required module priority = %d, want 1", result.Modules[0].Priority)
	}
	// side-bottom only accepts content, so the timeline module is passed over
	// and the notes panel lands there.
	if result.Modules[2].SlotID != "side-bottom" {
		t.Errorf("notes-panel slot = %q, want side-bottom", result.Modules[2].SlotID)
	}
}

func TestCompose_RequiredUnregisteredWarns(t *testing.T) {
	c := newTestComposer(t)

	result, err := c.Compose(layout.TypeDeepWorkDev, codeAndNotes(), composition.Options{
		RequiredModules: []string{"mystery-module"},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if !hasWarning(result, "required module mystery-module not registered") {
		t.Errorf("warnings = %v, want unregistered required module warning", result.Warnings)
	}
	for _, m := range result.Modules {
		if m.Type == "mystery-module" {
			t.Fatal("unregistered module was placed")
		}
	}
}

func TestCompose_RequiredWinsOverExcluded(t *testing.T) {
	c := newTestComposer(t)

	result, err := c.Compose(layout.TypeDeepWorkDev, codeAndNotes(), composition.Options{
		ExcludedModules: []string{"code-activity"},
		RequiredModules: []string{"code-activity"},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if got := moduleTypes(result); len(got) == 0 || got[0] != "code-activity" {
		t.Errorf("Compose() modules = %v, want code-activity placed first", got)
	}
}

func TestCompose_PreferredVariant(t *testing.T) {
	c := newTestComposer(t)

	result, err := c.Compose(layout.TypeDeepWorkDev, codeAndNotes(), composition.Options{
		PreferredVariant: catalog.VariantExpanded,
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	variants := make(map[string]string, len(result.Modules))
	for _, m := range result.Modules {
		variants[m.Type] = m.Variant
	}
	if variants["session-timeline"] != catalog.VariantExpanded {
		t.Errorf("session-timeline variant = %q, want expanded", variants["session-timeline"])
	}
	// code-activity only declares the default variant set.
	if variants["code-activity"] != catalog.VariantStandard {
		t.Errorf("code-activity variant = %q, want standard fallback", variants["code-activity"])
	}
	if variants["notes-panel"] != catalog.VariantStandard {
		t.Errorf("notes-panel variant = %q, want standard fallback", variants["notes-panel"])
	}
}

func TestCompose_FillEmptySlots(t *testing.T) {
	c := newTestComposer(t)

	empty := session.Characteristics{ParticipantCount: 1}
	result, err := c.Compose(layout.TypeDeepWorkDev, empty, composition.Options{FillEmptySlots: true})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if result.TotalModules != 3 {
		t.Fatalf("TotalModules = %d, want 3 (every slot filled)", result.TotalModules)
	}
	fallbacks := 0
	for _, m := range result.Modules {
		if m.Priority == 4 {
			fallbacks++
		}
	}
	if fallbacks == 0 {
		t.Error("no fallback-tier modules placed, want at least one")
	}
	if !hasWarning(result, "filled with fallback module") {
		t.Errorf("warnings = %v, want fallback substitution warning", result.Warnings)
	}
	if hasWarning(result, "left unfilled") {
		t.Errorf("warnings = %v, want no unfilled slot warning", result.Warnings)
	}
}

func TestCompose_UnfilledSlotsWarn(t *testing.T) {
	c := newTestComposer(t)

	empty := session.Characteristics{ParticipantCount: 1}
	result, err := c.Compose(layout.TypeDeepWorkDev, empty, composition.Options{})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	// Only the two recommended modules qualify without capability matches.
	if result.TotalModules != 2 {
		t.Fatalf("TotalModules = %d, want 2", result.TotalModules)
	}
	if !hasWarning(result, "slot side-bottom left unfilled") {
		t.Errorf("warnings = %v, want unfilled warning for side-bottom", result.Warnings)
	}
}

func TestCompose_UnknownLayout(t *testing.T) {
	c := newTestComposer(t)

	_, err := c.Compose(layout.TypePresentation, codeAndNotes(), composition.Options{})
	if err == nil {
		t.Fatal("Compose() error = nil, want layout not registered")
	}
	if !engineErrors.IsNotRegistered(err) {
		t.Errorf("IsNotRegistered(%v) = false, want true", err)
	}
}

func TestCompose_Deterministic(t *testing.T) {
	c := newTestComposer(t)

	opts := composition.Options{FillEmptySlots: true, PreferredVariant: catalog.VariantExpanded}
	first, err := c.Compose(layout.TypeDeepWorkDev, codeAndNotes(), opts)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	second, err := c.Compose(layout.TypeDeepWorkDev, codeAndNotes(), opts)
	if err != nil {
		t.Fatalf("Compose() second error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Compose() not deterministic:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}
