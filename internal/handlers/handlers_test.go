package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"docs-mcp/internal/indexer"
	"docs-mcp/internal/search"
	"docs-mcp/internal/storage"
	storage_mocks "docs-mcp/internal/storage/mocks"
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

// mockReindexer is a mock implementation of Reindexer that runs synchronously.
type mockReindexer struct {
	err      error
	started  bool
	lastRoot string
}

func (m *mockReindexer) Start(_ context.Context, root string, done func(*indexer.RunStats, error)) error {
	if m.err != nil {
		return m.err
	}
	m.started = true
	m.lastRoot = root
	done(&indexer.RunStats{Processed: 1}, nil)
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return v
}

func TestSearchHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		url            string
		searcher       *mockSearcher
		expectedStatus int
		checkRequest   func(*testing.T, search.Request)
	}{
		{
			name:   "hybrid by default",
			method: http.MethodGet,
			url:    "/api/v1/search?q=heat+flux",
			searcher: &mockSearcher{results: []search.Result{
				{ChunkID: "heat.md:0", Source: "heat.md", Score: 0.03},
			}},
			expectedStatus: http.StatusOK,
			checkRequest: func(t *testing.T, req search.Request) {
				if req.Query != "heat flux" || req.Mode != search.ModeHybrid || req.Limit != search.DefaultLimit {
					t.Errorf("request = %+v", req)
				}
			},
		},
		{
			name:           "explicit parameters",
			method:         http.MethodGet,
			url:            "/api/v1/search?q=mesh&limit=3&mode=keyword&source=physics",
			searcher:       &mockSearcher{},
			expectedStatus: http.StatusOK,
			checkRequest: func(t *testing.T, req search.Request) {
				if req.Limit != 3 || req.Mode != search.ModeKeyword || req.SourceFilter != "physics" {
					t.Errorf("request = %+v", req)
				}
			},
		},
		{
			name:           "missing query",
			method:         http.MethodGet,
			url:            "/api/v1/search",
			searcher:       &mockSearcher{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid limit",
			method:         http.MethodGet,
			url:            "/api/v1/search?q=x&limit=ten",
			searcher:       &mockSearcher{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "invalid mode",
			method: http.MethodGet,
			url:    "/api/v1/search?q=x&mode=fuzzy",
			searcher: &mockSearcher{err: &search.ValidationError{
				Field: "mode", Message: "invalid mode", Err: search.ErrInvalidMode,
			}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "search failure",
			method:         http.MethodGet,
			url:            "/api/v1/search?q=x",
			searcher:       &mockSearcher{err: errors.New("database is locked")},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "wrong method",
			method:         http.MethodPost,
			url:            "/api/v1/search?q=x",
			searcher:       &mockSearcher{},
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSearchHandler(tt.searcher)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.url, nil))

			if rec.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.expectedStatus, rec.Body.String())
			}
			if tt.checkRequest != nil {
				tt.checkRequest(t, tt.searcher.lastReq)
			}
			if rec.Code == http.StatusOK {
				resp := decode[SearchResponse](t, rec)
				if resp.Results == nil || resp.Count != len(tt.searcher.results) {
					t.Errorf("response = %+v", resp)
				}
			}
		})
	}
}

var heatChunk = storage.ChunkRecord{
	ID:         "physics/heat.md:1",
	Source:     "physics/heat.md",
	Title:      "Boundary Conditions",
	Content:    "Thermal insulation.",
	ChunkIndex: 1,
}

func TestDocsHandler_Chunk(t *testing.T) {
	ctrl := gomock.NewController(t)
	chunks := storage_mocks.NewMockChunkStore(ctrl)
	sources := storage_mocks.NewMockSourceStore(ctrl)
	handler := NewDocsHandler(chunks, sources)

	chunks.EXPECT().GetByID(gomock.Any(), heatChunk.ID).Return(&heatChunk, nil)
	chunks.EXPECT().GetByID(gomock.Any(), "missing.md:0").Return(nil, storage.ErrNotFound)

	tests := []struct {
		name           string
		url            string
		expectedStatus int
	}{
		{name: "found", url: "/api/v1/chunk?id=physics/heat.md:1", expectedStatus: http.StatusOK},
		{name: "not found", url: "/api/v1/chunk?id=missing.md:0", expectedStatus: http.StatusNotFound},
		{name: "missing id", url: "/api/v1/chunk", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.Chunk(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if rec.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.expectedStatus)
			}
			if rec.Code == http.StatusOK {
				got := decode[ChunkResponse](t, rec)
				if got.ChunkID != heatChunk.ID || got.Title != heatChunk.Title {
					t.Errorf("chunk = %+v", got)
				}
			}
		})
	}
}

func TestDocsHandler_Context(t *testing.T) {
	ctrl := gomock.NewController(t)
	chunks := storage_mocks.NewMockChunkStore(ctrl)
	handler := NewDocsHandler(chunks, storage_mocks.NewMockSourceStore(ctrl))

	neighbour := storage.ChunkRecord{ID: "physics/heat.md:2", Source: "physics/heat.md", ChunkIndex: 2}
	chunks.EXPECT().GetContext(gomock.Any(), heatChunk.ID, 0, 2).Return(&storage.ContextResult{
		Target:  &heatChunk,
		Context: []storage.ChunkRecord{neighbour},
	}, nil)
	chunks.EXPECT().GetContext(gomock.Any(), "gone.md:0", 1, 1).Return(&storage.ContextResult{
		Context: []storage.ChunkRecord{},
		Error:   "Chunk not found: gone.md:0",
	}, nil)

	rec := httptest.NewRecorder()
	handler.Context(rec, httptest.NewRequest(http.MethodGet, "/api/v1/context?id=physics/heat.md:1&before=0&after=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decode[ContextResponse](t, rec)
	if got.Target.ChunkID != heatChunk.ID || len(got.Context) != 1 {
		t.Errorf("context = %+v", got)
	}

	rec = httptest.NewRecorder()
	handler.Context(rec, httptest.NewRequest(http.MethodGet, "/api/v1/context?id=gone.md:0", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp := decode[ErrorResponse](t, rec); resp.Error != "Chunk not found: gone.md:0" {
		t.Errorf("error = %q", resp.Error)
	}

	rec = httptest.NewRecorder()
	handler.Context(rec, httptest.NewRequest(http.MethodGet, "/api/v1/context?id=x&before=one", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDocsHandler_Sources(t *testing.T) {
	ctrl := gomock.NewController(t)
	sources := storage_mocks.NewMockSourceStore(ctrl)
	handler := NewDocsHandler(storage_mocks.NewMockChunkStore(ctrl), sources)

	all := []storage.SourceSummary{{Path: "a.md", ChunkCount: 2}, {Path: "physics/heat.md", Title: "Heat", ChunkCount: 7}}
	sources.EXPECT().ListSources(gomock.Any()).Return(all, nil)
	sources.EXPECT().SearchSources(gomock.Any(), "physics", 50).Return(all[1:], nil)

	rec := httptest.NewRecorder()
	handler.Sources(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sources", nil))
	if got := decode[SourcesResponse](t, rec); got.Count != 2 {
		t.Errorf("list count = %d, want 2", got.Count)
	}

	rec = httptest.NewRecorder()
	handler.Sources(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sources?pattern=physics", nil))
	got := decode[SourcesResponse](t, rec)
	if got.Count != 1 || got.Sources[0].Title != "Heat" {
		t.Errorf("search = %+v", got)
	}
}

func TestDocsHandler_Source(t *testing.T) {
	ctrl := gomock.NewController(t)
	chunks := storage_mocks.NewMockChunkStore(ctrl)
	handler := NewDocsHandler(chunks, storage_mocks.NewMockSourceStore(ctrl))

	chunks.EXPECT().GetSource(gomock.Any(), "physics/heat.md", 1, 1).Return(&storage.SourcePage{
		Chunks: []storage.ChunkRecord{heatChunk}, Total: 4, Offset: 1,
	}, nil)
	chunks.EXPECT().GetSource(gomock.Any(), "nope.md", 0, 0).Return(&storage.SourcePage{
		Chunks: []storage.ChunkRecord{}, Error: "Source not found: nope.md",
	}, nil)

	rec := httptest.NewRecorder()
	handler.Source(rec, httptest.NewRequest(http.MethodGet, "/api/v1/source?path=physics/heat.md&offset=1&limit=1", nil))
	got := decode[SourceResponse](t, rec)
	if rec.Code != http.StatusOK || got.Total != 4 || len(got.Chunks) != 1 {
		t.Errorf("source = %d %+v", rec.Code, got)
	}

	rec = httptest.NewRecorder()
	handler.Source(rec, httptest.NewRequest(http.MethodGet, "/api/v1/source?path=nope.md", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDocsHandler_SectionsModulesStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	chunks := storage_mocks.NewMockChunkStore(ctrl)
	sources := storage_mocks.NewMockSourceStore(ctrl)
	handler := NewDocsHandler(chunks, sources)

	chunks.EXPECT().ListSections(gomock.Any(), "a.md").Return([]storage.SectionSummary{
		{Title: "Intro", ChunkID: "a.md:0"},
	}, nil)
	chunks.EXPECT().ListSections(gomock.Any(), "nope.md").Return(nil, nil)
	sources.EXPECT().ListModules(gomock.Any()).Return([]storage.ModuleSummary{{Module: "physics", FileCount: 3, ChunkCount: 9}}, nil)
	sources.EXPECT().Stats(gomock.Any()).Return(&storage.Stats{Sources: 3, Chunks: 9, EmbeddingDimension: 384}, nil)

	rec := httptest.NewRecorder()
	handler.Sections(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sections?path=a.md", nil))
	if got := decode[SectionsResponse](t, rec); len(got.Sections) != 1 || got.Sections[0].Title != "Intro" {
		t.Errorf("sections = %+v", got)
	}

	rec = httptest.NewRecorder()
	handler.Sections(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sections?path=nope.md", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Modules(rec, httptest.NewRequest(http.MethodGet, "/api/v1/modules", nil))
	if got := decode[ModulesResponse](t, rec); got.Count != 1 || got.Modules[0].FileCount != 3 {
		t.Errorf("modules = %+v", got)
	}

	rec = httptest.NewRecorder()
	handler.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	if got := decode[StatsResponse](t, rec); got.Chunks != 9 || got.EmbeddingDimension != 384 {
		t.Errorf("stats = %+v", got)
	}
}

func TestDocsHandler_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sources := storage_mocks.NewMockSourceStore(ctrl)
	handler := NewDocsHandler(storage_mocks.NewMockChunkStore(ctrl), sources)

	sources.EXPECT().ListModules(gomock.Any()).Return(nil, errors.New("disk I/O error"))

	rec := httptest.NewRecorder()
	handler.Modules(rec, httptest.NewRequest(http.MethodGet, "/api/v1/modules", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp := decode[ErrorResponse](t, rec); resp.Error != "Failed to list modules" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		listErr        error
		semantic       bool
		expectedStatus int
		expectedHealth string
	}{
		{name: "healthy", semantic: true, expectedStatus: http.StatusOK, expectedHealth: "healthy"},
		{name: "keyword only", semantic: false, expectedStatus: http.StatusOK, expectedHealth: "degraded"},
		{name: "database down", listErr: errors.New("unable to open database file"), semantic: true, expectedStatus: http.StatusServiceUnavailable, expectedHealth: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sources := storage_mocks.NewMockSourceStore(ctrl)
			sources.EXPECT().ListPaths(gomock.Any()).Return(nil, tt.listErr)

			handler := NewHealthHandler(sources, &mockSearcher{semantic: tt.semantic})
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if rec.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.expectedStatus)
			}
			if got := decode[HealthResponse](t, rec); got.Status != tt.expectedHealth {
				t.Errorf("health = %q, want %q", got.Status, tt.expectedHealth)
			}
		})
	}
}

func TestIndexHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		root           string
		startErr       error
		expectedStatus int
	}{
		{name: "accepted", method: http.MethodPost, root: "/docs", expectedStatus: http.StatusAccepted},
		{name: "already running", method: http.MethodPost, root: "/docs", startErr: indexer.ErrIndexInProgress, expectedStatus: http.StatusConflict},
		{name: "start failure", method: http.MethodPost, root: "/docs", startErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
		{name: "no root", method: http.MethodPost, expectedStatus: http.StatusServiceUnavailable},
		{name: "wrong method", method: http.MethodGet, root: "/docs", expectedStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reindexer := &mockReindexer{err: tt.startErr}
			handler := NewIndexHandler(reindexer, tt.root)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, "/api/v1/index", nil))

			if rec.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusAccepted && (!reindexer.started || reindexer.lastRoot != "/docs") {
				t.Errorf("reindexer = %+v, want started on /docs", reindexer)
			}
		})
	}
}
