package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/cataloglens/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// ParseServiceConfig holds configuration for the parse service
type ParseServiceConfig struct {
	CacheTTL       time.Duration
	MatchThreshold float64
}

// ParseService orchestrates a parse request: cache lookup, model
// extraction, normalization against the schema, and image enrichment.
// The schema and compiled prompt are fixed at construction and shared
// read-only across concurrent requests.
type ParseService struct {
	cache        domain.CacheRepository
	model        domain.ModelClient
	images       domain.ImageSearcher
	normalizer   *Normalizer
	schema       *domain.Schema
	systemPrompt string
	cacheTTL     time.Duration
}

// NewParseService creates a parse service with dependencies. images may be
// nil, in which case image enrichment is skipped.
func NewParseService(
	cache domain.CacheRepository,
	model domain.ModelClient,
	images domain.ImageSearcher,
	schema *domain.Schema,
	config ParseServiceConfig,
) *ParseService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &ParseService{
		cache:        cache,
		model:        model,
		images:       images,
		normalizer:   NewNormalizer(NormalizerConfig{MatchThreshold: config.MatchThreshold}),
		schema:       schema,
		systemPrompt: CompilePrompt(schema),
		cacheTTL:     cacheTTL,
	}
}

// Schema returns the taxonomy document served verbatim to callers
func (s *ParseService) Schema() *domain.Schema {
	return s.schema
}

// SystemPrompt returns the compiled extraction prompt
func (s *ParseService) SystemPrompt() string {
	return s.systemPrompt
}

// Parse extracts a structured, canonicalized product document from a
// free-text description.
// Flow: check cache -> model call -> decode -> normalize -> image -> cache
func (s *ParseService) Parse(ctx context.Context, description string) (domain.ExtractionResult, error) {
	if strings.TrimSpace(description) == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := s.generateCacheKey(description)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	content, err := s.model.Chat(ctx, s.systemPrompt, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	var raw domain.ExtractionResult
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedExtraction, err)
	}

	result := s.normalizer.Normalize(raw, s.schema)
	s.attachImage(ctx, result)

	if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
		log.Printf("[PARSE] cache store failed: %v", err)
	}

	return result, nil
}

// attachImage looks up a product image when the model emitted a product
// name. Lookup failure or an empty result is treated as "no image", never
// as a request error.
func (s *ParseService) attachImage(ctx context.Context, result domain.ExtractionResult) {
	if s.images == nil {
		return
	}
	name, _ := result["product_name"].(string)
	if name == "" {
		return
	}

	url, err := s.images.FirstImageURL(ctx, name)
	if err != nil || url == "" {
		log.Printf("[PARSE] image lookup skipped for %q: %v", name, err)
		return
	}
	result["image_url"] = url
}

// generateCacheKey creates a normalized cache key from the description.
// Format: "parse:{normalized_description}"
func (s *ParseService) generateCacheKey(description string) string {
	normalized := strings.ToLower(description)
	normalized = nonAlphanumericRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return "parse:" + strings.TrimSpace(normalized)
}

// getFromCache retrieves a previously canonicalized result from cache
func (s *ParseService) getFromCache(ctx context.Context, key string) (domain.ExtractionResult, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if m, ok := value.(map[string]interface{}); ok {
		return domain.ExtractionResult(m), nil
	}
	if r, ok := value.(domain.ExtractionResult); ok {
		return r, nil
	}
	return nil, domain.ErrCacheMiss
}
