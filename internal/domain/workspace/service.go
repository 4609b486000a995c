package workspace

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.opentelemetry.io/otel/attribute"

	"github.com/recaphq/recap-server/internal/domain/layout"
	"github.com/recaphq/recap-server/internal/domain/session"
	"github.com/recaphq/recap-server/internal/infrastructure/logger"
	"github.com/recaphq/recap-server/internal/infrastructure/metrics"
	"github.com/recaphq/recap-server/internal/infrastructure/observability"
	"github.com/rs/zerolog"
)

const tracerName = "workspace-api"

// Service fronts the generator for the transport layers, adding caching,
// logging, and telemetry. Generation is deterministic, so successful results
// are cached by input hash.
type Service struct {
	generator         *Generator
	cache             *lru.Cache
	logger            zerolog.Logger
	defaultMaxModules int
}

// NewService creates a workspace service. cacheSize zero disables caching.
func NewService(generator *Generator, cacheSize, defaultMaxModules int) (*Service, error) {
	var cache *lru.Cache
	if cacheSize > 0 {
		c, err := lru.New(cacheSize)
		if err != nil {
			return nil, err
		}
		cache = c
	}
	return &Service{
		generator:         generator,
		cache:             cache,
		logger:            logger.GetLogger().With().Str("component", "workspace_service").Logger(),
		defaultMaxModules: defaultMaxModules,
	}, nil
}

// GenerateConfiguration produces a configuration for the session, serving
// repeated identical requests from cache.
func (s *Service) GenerateConfiguration(ctx context.Context, data session.Data, opts GenerateOptions) GenerationResult {
	ctx, span := observability.StartSpan(ctx, tracerName, "workspace.generate_configuration")
	defer span.End()

	if opts.MaxModules <= 0 {
		opts.MaxModules = s.defaultMaxModules
	}

	key := cacheKey(data, opts)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			metrics.RecordCacheLookup(true)
			observability.AddSpanAttributes(ctx, attribute.Bool("workspace.cache_hit", true))
			s.logger.Debug().Str("cache_key", key).Msg("configuration served from cache")
			return cached.(GenerationResult)
		}
		metrics.RecordCacheLookup(false)
	}

	start := time.Now()
	result := s.generator.Generate(data, opts)

	status := "success"
	if !result.Success {
		status = "failure"
		observability.AddSpanEvent(ctx, "generation_fallback", attribute.String("workspace.error", result.Error))
		s.logger.Warn().
			Str("error", result.Error).
			Msg("configuration generation fell back to the default layout")
	}
	metrics.RecordConfigGeneration(string(result.LayoutSelection.LayoutType), status, time.Since(start))
	observability.AddSpanAttributes(ctx,
		attribute.String("workspace.layout_type", string(result.LayoutSelection.LayoutType)),
		attribute.Float64("workspace.confidence", result.LayoutSelection.Confidence),
		attribute.Int("workspace.module_count", result.ModuleComposition.TotalModules),
	)

	if s.cache != nil && result.Success {
		s.cache.Add(key, result)
	}

	s.logger.Info().
		Str("layout_type", string(result.LayoutSelection.LayoutType)).
		Float64("confidence", result.LayoutSelection.Confidence).
		Int("modules", result.ModuleComposition.TotalModules).
		Bool("success", result.Success).
		Msg("configuration generated")

	return result
}

// AnalyzeSession validates the session and returns its characteristics.
func (s *Service) AnalyzeSession(ctx context.Context, data session.Data) (session.Characteristics, error) {
	ctx, span := observability.StartSpan(ctx, tracerName, "workspace.analyze_session")
	defer span.End()

	if err := data.Validate(); err != nil {
		observability.RecordError(ctx, err)
		return session.Characteristics{}, err
	}
	characteristics := session.Analyze(data)
	observability.AddSpanAttributes(ctx,
		attribute.String("workspace.content_type", characteristics.PrimaryContentType.String()),
		attribute.String("workspace.intensity", characteristics.Intensity.String()),
	)
	return characteristics, nil
}

// SelectLayout validates the session and returns the layout selection without
// composing modules. A non-empty override must name a known layout type.
func (s *Service) SelectLayout(ctx context.Context, data session.Data, override string) (layout.Selection, error) {
	ctx, span := observability.StartSpan(ctx, tracerName, "workspace.select_layout")
	defer span.End()

	if err := data.Validate(); err != nil {
		observability.RecordError(ctx, err)
		return layout.Selection{}, err
	}
	overrideType := layout.Type(override)
	if override != "" && !overrideType.Valid() {
		err := invalidLayoutType(override)
		observability.RecordError(ctx, err)
		return layout.Selection{}, err
	}

	characteristics := session.Analyze(data)
	selection := s.generator.SelectionFor(characteristics, overrideType)
	observability.AddSpanAttributes(ctx,
		attribute.String("workspace.layout_type", string(selection.LayoutType)),
		attribute.Float64("workspace.confidence", selection.Confidence),
	)
	return selection, nil
}

// cacheKey hashes the generation inputs. Identical session data and options
// always map to the same key.
func cacheKey(data session.Data, opts GenerateOptions) string {
	sum := sha256.Sum256(generationSeed(data, opts))
	return hex.EncodeToString(sum[:])
}
