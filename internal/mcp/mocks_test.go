package mcp

import (
	"context"

	"docs-mcp/internal/search"
	"docs-mcp/internal/storage"
)

// mockSearcher is a mock implementation of Searcher.
type mockSearcher struct {
	results  []search.Result
	err      error
	semantic bool
	lastReq  search.Request
}

func (m *mockSearcher) SearchDocs(_ context.Context, req search.Request) ([]search.Result, error) {
	m.lastReq = req
	return m.results, m.err
}

func (m *mockSearcher) SemanticAvailable(_ context.Context) bool {
	return m.semantic
}

// mockChunkReader is a mock implementation of ChunkReader.
type mockChunkReader struct {
	chunks   map[string]*storage.ChunkRecord
	context  *storage.ContextResult
	page     *storage.SourcePage
	sections []storage.SectionSummary
	titled   []storage.ChunkRecord
	matches  []storage.SymbolMatch
	err      error

	lastBefore, lastAfter int
	lastOffset, lastLimit int
}

func (m *mockChunkReader) GetByID(_ context.Context, id string) (*storage.ChunkRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.chunks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return rec, nil
}

func (m *mockChunkReader) GetContext(_ context.Context, _ string, before, after int) (*storage.ContextResult, error) {
	m.lastBefore, m.lastAfter = before, after
	return m.context, m.err
}

func (m *mockChunkReader) GetSource(_ context.Context, _ string, offset, limit int) (*storage.SourcePage, error) {
	m.lastOffset, m.lastLimit = offset, limit
	return m.page, m.err
}

func (m *mockChunkReader) ListSections(_ context.Context, _ string) ([]storage.SectionSummary, error) {
	return m.sections, m.err
}

func (m *mockChunkReader) GetByTitle(_ context.Context, _, _ string) ([]storage.ChunkRecord, error) {
	return m.titled, m.err
}

func (m *mockChunkReader) SearchSymbols(_ context.Context, _ string, limit int) ([]storage.SymbolMatch, error) {
	m.lastLimit = limit
	return m.matches, m.err
}

func (m *mockChunkReader) SearchTitles(_ context.Context, _ string, limit int) ([]storage.SymbolMatch, error) {
	m.lastLimit = limit
	return m.matches, m.err
}

// mockSourceReader is a mock implementation of SourceReader.
type mockSourceReader struct {
	sources   []storage.SourceSummary
	modules   []storage.ModuleSummary
	stats     *storage.Stats
	err       error
	lastLimit int
}

func (m *mockSourceReader) ListSources(_ context.Context) ([]storage.SourceSummary, error) {
	return m.sources, m.err
}

func (m *mockSourceReader) SearchSources(_ context.Context, _ string, limit int) ([]storage.SourceSummary, error) {
	m.lastLimit = limit
	return m.sources, m.err
}

func (m *mockSourceReader) ListModules(_ context.Context) ([]storage.ModuleSummary, error) {
	return m.modules, m.err
}

func (m *mockSourceReader) Stats(_ context.Context) (*storage.Stats, error) {
	return m.stats, m.err
}
