package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSchemaNotFound is returned when the schema file is missing at startup
	ErrSchemaNotFound = errors.New("schema file not found")

	// ErrExtractionFailed is returned when the model call fails
	ErrExtractionFailed = errors.New("model extraction failed")

	// ErrMalformedExtraction is returned when the model response is not a valid JSON document
	ErrMalformedExtraction = errors.New("model returned malformed extraction")

	// ErrImageUnavailable is returned when no image can be found for a product
	ErrImageUnavailable = errors.New("no image available")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
