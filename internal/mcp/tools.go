package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"docs-mcp/internal/search"
	"docs-mcp/internal/storage"
)

// Default result limits of the listing tools.
const (
	defaultSourceLimit = 50
	defaultSymbolLimit = 50
	defaultTitleLimit  = 20
	defaultContextSize = 1
)

// ChunkView is a chunk as returned by the tools.
type ChunkView struct {
	ChunkID    string `json:"chunk_id"`
	Source     string `json:"source"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	ChunkIndex int    `json:"chunk_index"`
}

func chunkView(rec storage.ChunkRecord) ChunkView {
	return ChunkView{
		ChunkID:    rec.ID,
		Source:     rec.Source,
		Title:      rec.Title,
		Content:    rec.Content,
		ChunkIndex: rec.ChunkIndex,
	}
}

func chunkViews(recs []storage.ChunkRecord) []ChunkView {
	views := make([]ChunkView, len(recs))
	for i, rec := range recs {
		views[i] = chunkView(rec)
	}
	return views
}

// SearchDocsInput is the input schema for search_docs.
type SearchDocsInput struct {
	Query  string `json:"query" jsonschema:"the search query"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 10)"`
	Mode   string `json:"mode,omitempty" jsonschema:"keyword, semantic or hybrid (default hybrid)"`
	Source string `json:"source,omitempty" jsonschema:"only return results whose source path contains this text"`
}

// SearchDocsOutput is the output schema for search_docs.
type SearchDocsOutput struct {
	Results []search.Result `json:"results"`
	Count   int             `json:"count"`
}

// ChunkIDInput identifies a chunk.
type ChunkIDInput struct {
	ChunkID string `json:"chunk_id" jsonschema:"the chunk identifier, <source>:<index>"`
}

// GetChunkOutput is the output schema for get_chunk.
type GetChunkOutput struct {
	Found bool       `json:"found"`
	Chunk *ChunkView `json:"chunk,omitempty"`
	Error string     `json:"error,omitempty"`
}

// GetContextInput is the input schema for get_context.
type GetContextInput struct {
	ChunkID string `json:"chunk_id" jsonschema:"the chunk identifier"`
	Before  *int   `json:"before,omitempty" jsonschema:"number of preceding chunks (default 1)"`
	After   *int   `json:"after,omitempty" jsonschema:"number of following chunks (default 1)"`
}

// GetContextOutput is the output schema for get_context.
type GetContextOutput struct {
	Found   bool        `json:"found"`
	Target  *ChunkView  `json:"target,omitempty"`
	Context []ChunkView `json:"context"`
	Error   string      `json:"error,omitempty"`
}

// GetSourceInput is the input schema for get_source.
type GetSourceInput struct {
	Path   string `json:"path" jsonschema:"source path relative to the docs root"`
	Offset int    `json:"offset,omitempty" jsonschema:"index of the first chunk to return"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of chunks (default all)"`
}

// GetSourceOutput is the output schema for get_source.
type GetSourceOutput struct {
	Found  bool        `json:"found"`
	Path   string      `json:"path"`
	Chunks []ChunkView `json:"chunks"`
	Total  int         `json:"total"`
	Offset int         `json:"offset"`
	Error  string      `json:"error,omitempty"`
}

// SourceView is one indexed source.
type SourceView struct {
	Path       string `json:"path"`
	Title      string `json:"title,omitempty"`
	ChunkCount int    `json:"chunk_count"`
}

// ListSourcesInput takes no arguments.
type ListSourcesInput struct{}

// SourcesOutput is the output schema for list_sources and search_sources.
type SourcesOutput struct {
	Sources []SourceView `json:"sources"`
	Count   int          `json:"count"`
}

// SearchSourcesInput is the input schema for search_sources.
type SearchSourcesInput struct {
	Pattern string `json:"pattern" jsonschema:"text contained in the source path"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of sources (default 50)"`
}

// ModuleView groups the sources under one top-level directory.
type ModuleView struct {
	Module     string `json:"module"`
	FileCount  int    `json:"file_count"`
	ChunkCount int    `json:"chunk_count"`
}

// ListModulesInput takes no arguments.
type ListModulesInput struct{}

// ListModulesOutput is the output schema for list_modules.
type ListModulesOutput struct {
	Modules []ModuleView `json:"modules"`
	Count   int          `json:"count"`
}

// PathInput identifies a source.
type PathInput struct {
	Path string `json:"path" jsonschema:"source path relative to the docs root"`
}

// SectionView is one section of a source.
type SectionView struct {
	Title      string `json:"title"`
	ChunkID    string `json:"chunk_id"`
	ChunkIndex int    `json:"chunk_index"`
}

// ListSectionsOutput is the output schema for list_sections.
type ListSectionsOutput struct {
	Found    bool          `json:"found"`
	Path     string        `json:"path"`
	Sections []SectionView `json:"sections"`
	Error    string        `json:"error,omitempty"`
}

// GetChunkByTitleInput is the input schema for get_chunk_by_title.
type GetChunkByTitleInput struct {
	Path  string `json:"path" jsonschema:"source path relative to the docs root"`
	Title string `json:"title" jsonschema:"exact section title"`
}

// ChunksOutput is the output schema for get_chunk_by_title.
type ChunksOutput struct {
	Found  bool        `json:"found"`
	Chunks []ChunkView `json:"chunks"`
	Error  string      `json:"error,omitempty"`
}

// SearchSymbolsInput is the input schema for search_symbols.
type SearchSymbolsInput struct {
	Prefix string `json:"prefix" jsonschema:"symbol prefix such as an API or function name"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of matches (default 50)"`
}

// SearchTitlesInput is the input schema for search_titles.
type SearchTitlesInput struct {
	Query string `json:"query" jsonschema:"words that must all appear in the section title"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of matches (default 20)"`
}

// MatchView is a chunk found by a symbol or title search.
type MatchView struct {
	ChunkID string  `json:"chunk_id"`
	Source  string  `json:"source"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// MatchesOutput is the output schema for search_symbols and search_titles.
type MatchesOutput struct {
	Matches []MatchView `json:"matches"`
	Count   int         `json:"count"`
}

// GetStatsInput takes no arguments.
type GetStatsInput struct{}

// StatsOutput is the output schema for get_stats.
type StatsOutput struct {
	Database           string `json:"database"`
	Sources            int    `json:"sources"`
	Chunks             int    `json:"chunks"`
	Modules            int    `json:"modules"`
	Characters         int64  `json:"characters"`
	HasVectors         bool   `json:"has_vectors"`
	Vectors            int    `json:"vectors"`
	EmbeddingDimension int    `json:"embedding_dimension"`
	SemanticAvailable  bool   `json:"semantic_available"`
	LastIndexedAt      string `json:"last_indexed_at,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_docs",
		Description: "Search documentation using keyword and/or semantic search",
	}, s.handleSearchDocs)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_chunk",
		Description: "Retrieve a specific documentation chunk by ID",
	}, s.handleGetChunk)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_context",
		Description: "Retrieve a chunk together with its neighbouring chunks from the same source",
	}, s.handleGetContext)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_source",
		Description: "Read the chunks of one source file in order, optionally paginated",
	}, s.handleGetSource)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sources",
		Description: "List all indexed documentation sources",
	}, s.handleListSources)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_sources",
		Description: "Find indexed sources whose path contains a pattern",
	}, s.handleSearchSources)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_modules",
		Description: "List the top-level documentation directories with file and chunk counts",
	}, s.handleListModules)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sections",
		Description: "List the section titles of a source in document order",
	}, s.handleListSections)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_chunk_by_title",
		Description: "Retrieve the chunks of a source section by its exact title",
	}, s.handleGetChunkByTitle)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_symbols",
		Description: "Find chunks mentioning an API or function symbol by prefix",
	}, s.handleSearchSymbols)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_titles",
		Description: "Find sections whose title contains every query word",
	}, s.handleSearchTitles)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_stats",
		Description: "Report the size and capabilities of the documentation index",
	}, s.handleGetStats)
}

func (s *Server) handleSearchDocs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchDocsInput,
) (*mcp.CallToolResult, SearchDocsOutput, error) {
	results, err := s.ports.Search.SearchDocs(ctx, search.Request{
		Query:        input.Query,
		Limit:        input.Limit,
		Mode:         search.Mode(input.Mode),
		SourceFilter: input.Source,
	})
	if err != nil {
		return nil, SearchDocsOutput{}, err
	}
	if results == nil {
		results = []search.Result{}
	}
	return nil, SearchDocsOutput{Results: results, Count: len(results)}, nil
}

func (s *Server) handleGetChunk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChunkIDInput,
) (*mcp.CallToolResult, GetChunkOutput, error) {
	rec, err := s.ports.Chunks.GetByID(ctx, input.ChunkID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, GetChunkOutput{Error: "Chunk not found: " + input.ChunkID}, nil
	}
	if err != nil {
		return nil, GetChunkOutput{}, err
	}
	view := chunkView(*rec)
	return nil, GetChunkOutput{Found: true, Chunk: &view}, nil
}

func (s *Server) handleGetContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetContextInput,
) (*mcp.CallToolResult, GetContextOutput, error) {
	before, after := defaultContextSize, defaultContextSize
	if input.Before != nil {
		before = *input.Before
	}
	if input.After != nil {
		after = *input.After
	}

	result, err := s.ports.Chunks.GetContext(ctx, input.ChunkID, before, after)
	if err != nil {
		return nil, GetContextOutput{}, err
	}
	if result.Target == nil {
		return nil, GetContextOutput{Context: []ChunkView{}, Error: result.Error}, nil
	}

	target := chunkView(*result.Target)
	return nil, GetContextOutput{
		Found:   true,
		Target:  &target,
		Context: chunkViews(result.Context),
	}, nil
}

func (s *Server) handleGetSource(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetSourceInput,
) (*mcp.CallToolResult, GetSourceOutput, error) {
	page, err := s.ports.Chunks.GetSource(ctx, input.Path, input.Offset, input.Limit)
	if err != nil {
		return nil, GetSourceOutput{}, err
	}
	return nil, GetSourceOutput{
		Found:  page.Error == "",
		Path:   input.Path,
		Chunks: chunkViews(page.Chunks),
		Total:  page.Total,
		Offset: page.Offset,
		Error:  page.Error,
	}, nil
}

func sourcesOutput(summaries []storage.SourceSummary) SourcesOutput {
	views := make([]SourceView, len(summaries))
	for i, s := range summaries {
		views[i] = SourceView{Path: s.Path, Title: s.Title, ChunkCount: s.ChunkCount}
	}
	return SourcesOutput{Sources: views, Count: len(views)}
}

func (s *Server) handleListSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListSourcesInput,
) (*mcp.CallToolResult, SourcesOutput, error) {
	summaries, err := s.ports.Sources.ListSources(ctx)
	if err != nil {
		return nil, SourcesOutput{}, err
	}
	return nil, sourcesOutput(summaries), nil
}

func (s *Server) handleSearchSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchSourcesInput,
) (*mcp.CallToolResult, SourcesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSourceLimit
	}
	summaries, err := s.ports.Sources.SearchSources(ctx, input.Pattern, limit)
	if err != nil {
		return nil, SourcesOutput{}, err
	}
	return nil, sourcesOutput(summaries), nil
}

func (s *Server) handleListModules(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListModulesInput,
) (*mcp.CallToolResult, ListModulesOutput, error) {
	modules, err := s.ports.Sources.ListModules(ctx)
	if err != nil {
		return nil, ListModulesOutput{}, err
	}
	views := make([]ModuleView, len(modules))
	for i, m := range modules {
		views[i] = ModuleView{Module: m.Module, FileCount: m.FileCount, ChunkCount: m.ChunkCount}
	}
	return nil, ListModulesOutput{Modules: views, Count: len(views)}, nil
}

func (s *Server) handleListSections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PathInput,
) (*mcp.CallToolResult, ListSectionsOutput, error) {
	sections, err := s.ports.Chunks.ListSections(ctx, input.Path)
	if err != nil {
		return nil, ListSectionsOutput{}, err
	}
	out := ListSectionsOutput{Path: input.Path, Sections: make([]SectionView, len(sections))}
	if len(sections) == 0 {
		out.Error = "Source not found: " + input.Path
		return nil, out, nil
	}
	for i, sec := range sections {
		out.Sections[i] = SectionView{Title: sec.Title, ChunkID: sec.ChunkID, ChunkIndex: sec.ChunkIndex}
	}
	out.Found = true
	return nil, out, nil
}

func (s *Server) handleGetChunkByTitle(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetChunkByTitleInput,
) (*mcp.CallToolResult, ChunksOutput, error) {
	chunks, err := s.ports.Chunks.GetByTitle(ctx, input.Path, input.Title)
	if err != nil {
		return nil, ChunksOutput{}, err
	}
	if len(chunks) == 0 {
		return nil, ChunksOutput{
			Chunks: []ChunkView{},
			Error:  fmt.Sprintf("No section titled %q in %s", input.Title, input.Path),
		}, nil
	}
	return nil, ChunksOutput{Found: true, Chunks: chunkViews(chunks)}, nil
}

func matchesOutput(matches []storage.SymbolMatch) MatchesOutput {
	views := make([]MatchView, len(matches))
	for i, m := range matches {
		views[i] = MatchView{
			ChunkID: m.ChunkID,
			Source:  m.Source,
			Title:   m.Title,
			Content: m.Content,
			Score:   m.Score,
		}
	}
	return MatchesOutput{Matches: views, Count: len(views)}
}

// handleSearchSymbols reports query errors from the full-text index as an
// empty result so that odd prefixes never fail the call.
func (s *Server) handleSearchSymbols(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchSymbolsInput,
) (*mcp.CallToolResult, MatchesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSymbolLimit
	}
	matches, err := s.ports.Chunks.SearchSymbols(ctx, input.Prefix, limit)
	if err != nil {
		s.logger.WarnContext(ctx, "symbol search failed", "prefix", input.Prefix, "error", err)
		matches = nil
	}
	return nil, matchesOutput(matches), nil
}

func (s *Server) handleSearchTitles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchTitlesInput,
) (*mcp.CallToolResult, MatchesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultTitleLimit
	}
	matches, err := s.ports.Chunks.SearchTitles(ctx, input.Query, limit)
	if err != nil {
		s.logger.WarnContext(ctx, "title search failed", "query", input.Query, "error", err)
		matches = nil
	}
	return nil, matchesOutput(matches), nil
}

func (s *Server) handleGetStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetStatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Sources.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	out := StatsOutput{
		Database:           s.ports.DatabaseName,
		Sources:            stats.Sources,
		Chunks:             stats.Chunks,
		Modules:            stats.Modules,
		Characters:         stats.Characters,
		HasVectors:         stats.HasVectors,
		Vectors:            stats.Vectors,
		EmbeddingDimension: stats.EmbeddingDimension,
		SemanticAvailable:  s.ports.Search.SemanticAvailable(ctx),
	}
	if stats.LastIndexedAt != nil {
		out.LastIndexedAt = stats.LastIndexedAt.UTC().Format(time.RFC3339)
	}
	return nil, out, nil
}
