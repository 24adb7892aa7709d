package search

import (
	"errors"
	"fmt"
)

var (
	// ErrKeywordSearcherRequired is returned when a keyword searcher is not provided.
	ErrKeywordSearcherRequired = errors.New("keyword searcher required")

	// ErrChunkFetcherRequired is returned when a chunk fetcher is not provided.
	ErrChunkFetcherRequired = errors.New("chunk fetcher required")

	// ErrInvalidMode is returned for a search mode other than keyword, semantic or hybrid.
	ErrInvalidMode = errors.New("invalid search mode")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
