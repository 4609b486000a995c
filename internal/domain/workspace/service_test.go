package workspace

import (
	"context"
	"testing"

	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
	"github.com/recaphq/recap-server/internal/domain/layout"
	"github.com/recaphq/recap-server/internal/domain/session"
)

func newTestService(t *testing.T, cacheSize, defaultMaxModules int) *Service {
	t.Helper()
	s, err := NewService(newTestGenerator(t), cacheSize, defaultMaxModules)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return s
}

func TestService_CachesSuccessfulResults(t *testing.T) {
	s := newTestService(t, 8, 6)
	ctx := context.Background()
	data := session.Data{Screenshots: codingScreenshots(15)}

	first := s.GenerateConfiguration(ctx, data, GenerateOptions{})
	second := s.GenerateConfiguration(ctx, data, GenerateOptions{})

	if !first.Success || !second.Success {
		t.Fatalf("GenerateConfiguration() success = %v/%v, want true", first.Success, second.Success)
	}
	if first.Config.ID != second.Config.ID {
		t.Errorf("config ids differ across identical requests: %q vs %q", first.Config.ID, second.Config.ID)
	}
	if s.cache.Len() != 1 {
		t.Errorf("cache.Len() = %d, want 1", s.cache.Len())
	}

	// Different options form a different cache entry.
	s.GenerateConfiguration(ctx, data, GenerateOptions{ThemeMode: "dark"})
	if s.cache.Len() != 2 {
		t.Errorf("cache.Len() = %d, want 2 after a differing request", s.cache.Len())
	}
}

func TestService_FailuresAreNotCached(t *testing.T) {
	s := newTestService(t, 8, 6)

	result := s.GenerateConfiguration(context.Background(), session.Data{}, GenerateOptions{LayoutType: "split_brain"})

	if result.Success {
		t.Fatal("GenerateConfiguration() success = true, want false")
	}
	if s.cache.Len() != 0 {
		t.Errorf("cache.Len() = %d, want failures to stay uncached", s.cache.Len())
	}
}

func TestService_CacheDisabled(t *testing.T) {
	s := newTestService(t, 0, 6)

	if s.cache != nil {
		t.Fatal("cache != nil, want caching disabled for size 0")
	}
	result := s.GenerateConfiguration(context.Background(), session.Data{}, GenerateOptions{})
	if !result.Success {
		t.Errorf("GenerateConfiguration() success = false, error = %q", result.Error)
	}
}

func TestService_AppliesDefaultMaxModules(t *testing.T) {
	s := newTestService(t, 0, 1)

	data := session.Data{Screenshots: codingScreenshots(15), ExtractedNoteIDs: []string{"n1"}}
	result := s.GenerateConfiguration(context.Background(), data, GenerateOptions{})

	if !result.Success {
		t.Fatalf("GenerateConfiguration() success = false, error = %q", result.Error)
	}
	if result.ModuleComposition.TotalModules > 1 {
		t.Errorf("TotalModules = %d, want the default cap of 1 applied", result.ModuleComposition.TotalModules)
	}
}

func TestService_SelectLayout(t *testing.T) {
	s := newTestService(t, 0, 6)
	ctx := context.Background()

	selection, err := s.SelectLayout(ctx, session.Data{Screenshots: codingScreenshots(15)}, "")
	if err != nil {
		t.Fatalf("SelectLayout() error = %v", err)
	}
	if selection.LayoutType != layout.TypeDeepWorkDev {
		t.Errorf("SelectLayout() = %v, want deep_work_dev", selection.LayoutType)
	}

	selection, err = s.SelectLayout(ctx, session.Data{}, "presentation")
	if err != nil {
		t.Fatalf("SelectLayout() override error = %v", err)
	}
	if selection.LayoutType != layout.TypePresentation || selection.Confidence != 1.0 {
		t.Errorf("SelectLayout() override = %v/%v, want presentation at 1.0", selection.LayoutType, selection.Confidence)
	}

	if _, err := s.SelectLayout(ctx, session.Data{}, "split_brain"); err == nil {
		t.Error("SelectLayout() error = nil, want unknown layout type rejected")
	}
}

func TestService_AnalyzeSession(t *testing.T) {
	s := newTestService(t, 0, 6)
	ctx := context.Background()

	characteristics, err := s.AnalyzeSession(ctx, session.Data{Screenshots: codingScreenshots(3)})
	if err != nil {
		t.Fatalf("AnalyzeSession() error = %v", err)
	}
	if characteristics.ScreenshotCount != 3 {
		t.Errorf("ScreenshotCount = %d, want 3", characteristics.ScreenshotCount)
	}

	negative := -5
	bad := session.Data{Duration: &negative}
	if _, err := s.AnalyzeSession(ctx, bad); err == nil {
		t.Error("AnalyzeSession() error = nil, want invalid session rejected")
	} else if engineErrors.CodeOf(err) != engineErrors.ErrCodeInvalidSessionData {
		t.Errorf("CodeOf() = %q, want %q", engineErrors.CodeOf(err), engineErrors.ErrCodeInvalidSessionData)
	}
}
