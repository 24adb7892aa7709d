// Package mcp exposes the documentation index as a Model Context Protocol server.
// Assistants use it to search the docs and to read chunks, sections and sources.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")
	// ErrMissingChunkReader is returned when the chunk reader is not provided.
	ErrMissingChunkReader = errors.New("mcp: chunk reader is required")
	// ErrMissingSourceReader is returned when the source reader is not provided.
	ErrMissingSourceReader = errors.New("mcp: source reader is required")
)
