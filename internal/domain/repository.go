package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ModelClient defines the interface for the extraction model collaborator.
// Chat sends the compiled system prompt plus one user description and
// returns the raw response content (expected to be a JSON document).
type ModelClient interface {
	Chat(ctx context.Context, systemPrompt, userInput string) (string, error)
}

// ImageSearcher defines the interface for the product image lookup collaborator.
// A failed or empty lookup is never fatal to a parse request.
type ImageSearcher interface {
	FirstImageURL(ctx context.Context, query string) (string, error)
}
