package catalog_test

import (
	"testing"

	"github.com/recaphq/recap-server/internal/domain/catalog"
	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
)

func newTestRegistry(t *testing.T) *catalog.DefaultRegistry {
	t.Helper()
	r := catalog.NewRegistry()

	modules := []struct {
		moduleType string
		def        catalog.Definition
	}{
		{"notes-panel", catalog.Definition{
			DisplayName: "Notes",
			Category:    catalog.CategoryContent,
			Variants:    []string{"compact", "standard", "expanded"},
			Requires:    map[string]bool{"hasNotes": true},
			Tags:        []string{"notes", "text"},
		}},
		{"task-board", catalog.Definition{
			DisplayName: "Tasks",
			Category:    catalog.CategoryContent,
			Requires:    map[string]bool{"hasTasks": true},
			Tags:        []string{"tasks", "text"},
		}},
		{"media-player", catalog.Definition{
			DisplayName: "Media Player",
			Category:    catalog.CategoryMedia,
			Variants:    []string{"standard", "expanded"},
			Requires:    map[string]bool{"hasVideo": true, "hasAudio": true},
			Tags:        []string{"media", "playback"},
		}},
		{"session-stats", catalog.Definition{
			DisplayName: "Session Stats",
			Category:    catalog.CategoryAnalytics,
			Tags:        []string{"metrics"},
		}},
	}

	for _, m := range modules {
		if err := r.Register(m.moduleType, nil, m.def); err != nil {
			t.Fatalf("Register(%s) error = %v", m.moduleType, err)
		}
	}
	return r
}

func types(entries []*catalog.Entry) []string {
	result := make([]string, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Definition.Type)
	}
	return result
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRegister_FillsDefaults(t *testing.T) {
	r := catalog.NewRegistry()
	if err := r.Register("session-timeline", nil, catalog.Definition{
		DisplayName: "Timeline",
		Category:    catalog.CategoryTimeline,
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	entry, ok := r.Get("session-timeline")
	if !ok {
		t.Fatal("Get() should find the registered module")
	}
	def := entry.Definition
	if !equalStrings(def.Variants, []string{"standard"}) {
		t.Errorf("Variants = %v, want [standard]", def.Variants)
	}
	if def.DefaultVariant != "standard" {
		t.Errorf("DefaultVariant = %v, want standard", def.DefaultVariant)
	}
	if def.Tags == nil || len(def.Tags) != 0 {
		t.Errorf("Tags = %v, want empty non-nil", def.Tags)
	}

	cfg := entry.DefaultConfig()
	if cfg.Type != "session-timeline" || cfg.Variant != "standard" || !cfg.Enabled {
		t.Errorf("DefaultConfig() = %+v, want enabled standard session-timeline", cfg)
	}
	if cfg.Chrome.Title != "Timeline" {
		t.Errorf("DefaultConfig().Chrome.Title = %v, want Timeline", cfg.Chrome.Title)
	}
}

func TestRegister_DefaultVariantFromVariants(t *testing.T) {
	r := catalog.NewRegistry()
	if err := r.Register("screenshot-gallery", nil, catalog.Definition{
		DisplayName: "Screenshots",
		Category:    catalog.CategoryMedia,
		Variants:    []string{"grid", "filmstrip"},
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	entry, _ := r.Get("screenshot-gallery")
	if entry.Definition.DefaultVariant != "grid" {
		t.Errorf("DefaultVariant = %v, want grid", entry.Definition.DefaultVariant)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	r := catalog.NewRegistry()
	def := catalog.Definition{DisplayName: "Notes", Category: catalog.CategoryContent}
	if err := r.Register("notes-panel", nil, def); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	err := r.Register("notes-panel", nil, catalog.Definition{
		DisplayName: "Other Notes",
		Category:    catalog.CategoryContent,
	})
	if !engineErrors.IsDuplicateModule(err) {
		t.Fatalf("second Register() error = %v, want duplicate module", err)
	}

	// The original entry is untouched.
	entry, _ := r.Get("notes-panel")
	if entry.Definition.DisplayName != "Notes" {
		t.Errorf("DisplayName after duplicate = %v, want Notes", entry.Definition.DisplayName)
	}
}

func TestRegister_InvalidDefinition(t *testing.T) {
	tests := []struct {
		name       string
		moduleType string
		def        catalog.Definition
	}{
		{"empty type", "", catalog.Definition{DisplayName: "X", Category: catalog.CategoryContent}},
		{"unknown category", "x", catalog.Definition{DisplayName: "X", Category: "sidebar"}},
		{"default variant outside variants", "x", catalog.Definition{
			DisplayName:    "X",
			Category:       catalog.CategoryContent,
			Variants:       []string{"compact"},
			DefaultVariant: "expanded",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := catalog.NewRegistry()
			err := r.Register(tt.moduleType, nil, tt.def)
			if engineErrors.CodeOf(err) != engineErrors.ErrCodeInvalidDefinition {
				t.Errorf("Register() error = %v, want invalid definition", err)
			}
		})
	}
}

func TestGetAll_RegistrationOrder(t *testing.T) {
	r := newTestRegistry(t)

	want := []string{"notes-panel", "task-board", "media-player", "session-stats"}
	if got := types(r.GetAll()); !equalStrings(got, want) {
		t.Errorf("GetAll() order = %v, want %v", got, want)
	}
}

func TestGetByCategory(t *testing.T) {
	r := newTestRegistry(t)

	got := types(r.GetByCategory(catalog.CategoryContent))
	if !equalStrings(got, []string{"notes-panel", "task-board"}) {
		t.Errorf("GetByCategory(content) = %v", got)
	}
	if len(r.GetByCategory(catalog.CategoryNavigation)) != 0 {
		t.Error("GetByCategory(navigation) should be empty")
	}
}

func TestGetByVariant(t *testing.T) {
	r := newTestRegistry(t)

	got := types(r.GetByVariant("expanded"))
	if !equalStrings(got, []string{"notes-panel", "media-player"}) {
		t.Errorf("GetByVariant(expanded) = %v", got)
	}
}

func TestGetByRequirements_ORSemantics(t *testing.T) {
	r := newTestRegistry(t)

	// Only hasAudio is on; media-player requires hasVideo OR hasAudio.
	got := types(r.GetByRequirements(map[string]bool{"hasAudio": true}))
	if !equalStrings(got, []string{"media-player"}) {
		t.Errorf("GetByRequirements(hasAudio) = %v, want [media-player]", got)
	}

	// Multiple flags gather every module with any match.
	got = types(r.GetByRequirements(map[string]bool{"hasNotes": true, "hasTasks": true}))
	if !equalStrings(got, []string{"notes-panel", "task-board"}) {
		t.Errorf("GetByRequirements(notes+tasks) = %v", got)
	}

	// A false flag does not match.
	if got := r.GetByRequirements(map[string]bool{"hasNotes": false}); len(got) != 0 {
		t.Errorf("GetByRequirements(hasNotes:false) = %v, want empty", types(got))
	}

	// Modules without requirements never match.
	if got := r.GetByRequirements(map[string]bool{"hasVideo": true, "hasNotes": true, "hasTasks": true}); len(got) != 3 {
		t.Errorf("session-stats should not match requirements, got %v", types(got))
	}
}

func TestSearchByTags(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name     string
		tags     []string
		matchAll bool
		want     []string
	}{
		{"single tag", []string{"media"}, false, []string{"media-player"}},
		{"or across tags", []string{"notes", "metrics"}, false, []string{"notes-panel", "session-stats"}},
		{"and requires every tag", []string{"notes", "text"}, true, []string{"notes-panel"}},
		{"and with missing tag", []string{"text", "media"}, true, nil},
		{"no tags", nil, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := types(r.SearchByTags(tt.tags, tt.matchAll))
			if !equalStrings(got, tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
				t.Errorf("SearchByTags(%v, %v) = %v, want %v", tt.tags, tt.matchAll, got, tt.want)
			}
		})
	}
}

func TestUnregister(t *testing.T) {
	r := newTestRegistry(t)

	if err := r.Unregister("task-board"); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}
	if r.Has("task-board") {
		t.Error("Has() should be false after Unregister")
	}
	want := []string{"notes-panel", "media-player", "session-stats"}
	if got := types(r.GetAll()); !equalStrings(got, want) {
		t.Errorf("GetAll() after Unregister = %v, want %v", got, want)
	}

	err := r.Unregister("task-board")
	if !engineErrors.IsNotRegistered(err) {
		t.Errorf("second Unregister() error = %v, want not registered", err)
	}
}

func TestClear(t *testing.T) {
	r := newTestRegistry(t)
	r.Clear()

	if len(r.GetAll()) != 0 {
		t.Error("GetAll() should be empty after Clear")
	}
	if r.Has("notes-panel") {
		t.Error("Has() should be false after Clear")
	}
}

func TestValidateConfig(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name       string
		moduleType string
		candidate  *catalog.ModuleConfig
		wantValid  bool
	}{
		{"registered with supported variant", "notes-panel", &catalog.ModuleConfig{Variant: "compact"}, true},
		{"registered with empty variant", "notes-panel", &catalog.ModuleConfig{}, true},
		{"registered with nil candidate", "notes-panel", nil, true},
		{"unsupported variant", "notes-panel", &catalog.ModuleConfig{Variant: "gigantic"}, false},
		{"unregistered module", "whiteboard", &catalog.ModuleConfig{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.ValidateConfig(tt.moduleType, tt.candidate)
			if result.Valid != tt.wantValid {
				t.Errorf("ValidateConfig() valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if !result.Valid && len(result.Errors) == 0 {
				t.Error("invalid result should carry at least one error")
			}
		})
	}
}

func TestStats(t *testing.T) {
	r := newTestRegistry(t)

	stats := r.Stats()
	if stats.TotalModules != 4 {
		t.Errorf("TotalModules = %d, want 4", stats.TotalModules)
	}
	if stats.ByCategory[catalog.CategoryContent] != 2 {
		t.Errorf("ByCategory[content] = %d, want 2", stats.ByCategory[catalog.CategoryContent])
	}
	if stats.ByCategory[catalog.CategoryMedia] != 1 {
		t.Errorf("ByCategory[media] = %d, want 1", stats.ByCategory[catalog.CategoryMedia])
	}
	if !equalStrings(stats.Types, []string{"notes-panel", "task-board", "media-player", "session-stats"}) {
		t.Errorf("Types = %v", stats.Types)
	}
}
