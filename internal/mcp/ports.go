package mcp

import (
	"context"

	"docs-mcp/internal/search"
	"docs-mcp/internal/storage"
)

// Searcher runs documentation queries.
type Searcher interface {
	SearchDocs(ctx context.Context, req search.Request) ([]search.Result, error)
	SemanticAvailable(ctx context.Context) bool
}

// ChunkReader reads stored chunks.
type ChunkReader interface {
	GetByID(ctx context.Context, id string) (*storage.ChunkRecord, error)
	GetContext(ctx context.Context, id string, before, after int) (*storage.ContextResult, error)
	GetSource(ctx context.Context, path string, offset, limit int) (*storage.SourcePage, error)
	ListSections(ctx context.Context, path string) ([]storage.SectionSummary, error)
	GetByTitle(ctx context.Context, path, title string) ([]storage.ChunkRecord, error)
	SearchSymbols(ctx context.Context, prefix string, limit int) ([]storage.SymbolMatch, error)
	SearchTitles(ctx context.Context, query string, limit int) ([]storage.SymbolMatch, error)
}

// SourceReader lists indexed sources.
type SourceReader interface {
	ListSources(ctx context.Context) ([]storage.SourceSummary, error)
	SearchSources(ctx context.Context, pattern string, limit int) ([]storage.SourceSummary, error)
	ListModules(ctx context.Context) ([]storage.ModuleSummary, error)
	Stats(ctx context.Context) (*storage.Stats, error)
}

// Ports aggregates everything the MCP server reads from.
type Ports struct {
	// Search runs search_docs queries.
	Search Searcher

	// Chunks serves chunk, context, section and symbol lookups.
	Chunks ChunkReader

	// Sources serves source listings and statistics.
	Sources SourceReader

	// DatabaseName is reported by get_stats.
	DatabaseName string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Chunks == nil {
		return ErrMissingChunkReader
	}
	if p.Sources == nil {
		return ErrMissingSourceReader
	}
	return nil
}
