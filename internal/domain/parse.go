package domain

// ParseRequest is the inbound payload for a parse call: one free-text
// product description per request.
type ParseRequest struct {
	Description string `json:"description" binding:"required"`
}

// ExtractionResult is the structured document returned by the model for a
// single description, keyed by schema property name. Values are strings,
// lists of strings, or nil. The same shape is used after normalization;
// the normalizer never mutates its input and returns a fresh map.
type ExtractionResult map[string]any
