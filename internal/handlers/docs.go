package handlers

import (
	"net/http"
	"time"

	"docs-mcp/internal/storage"
)

const defaultSourceSearchLimit = 50

// DocsHandler serves read access to chunks, sources and index statistics.
type DocsHandler struct {
	chunks  storage.ChunkStore
	sources storage.SourceStore
}

// NewDocsHandler creates a new DocsHandler.
func NewDocsHandler(chunks storage.ChunkStore, sources storage.SourceStore) *DocsHandler {
	return &DocsHandler{chunks: chunks, sources: sources}
}

// ContextResponse is a chunk with its neighbours.
type ContextResponse struct {
	Target  ChunkResponse   `json:"target"`
	Context []ChunkResponse `json:"context"`
}

// SourceResponse is a page of one source's chunks.
type SourceResponse struct {
	Path   string          `json:"path"`
	Chunks []ChunkResponse `json:"chunks"`
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
}

// SourceSummaryResponse is one indexed source.
type SourceSummaryResponse struct {
	Path       string `json:"path"`
	Title      string `json:"title,omitempty"`
	ChunkCount int    `json:"chunk_count"`
}

// SourcesResponse lists sources.
type SourcesResponse struct {
	Sources []SourceSummaryResponse `json:"sources"`
	Count   int                     `json:"count"`
}

// SectionResponse is one section of a source.
type SectionResponse struct {
	Title      string `json:"title"`
	ChunkID    string `json:"chunk_id"`
	ChunkIndex int    `json:"chunk_index"`
}

// SectionsResponse lists the sections of a source.
type SectionsResponse struct {
	Path     string            `json:"path"`
	Sections []SectionResponse `json:"sections"`
}

// ModuleResponse groups the sources of one top-level directory.
type ModuleResponse struct {
	Module     string `json:"module"`
	FileCount  int    `json:"file_count"`
	ChunkCount int    `json:"chunk_count"`
}

// ModulesResponse lists modules.
type ModulesResponse struct {
	Modules []ModuleResponse `json:"modules"`
	Count   int              `json:"count"`
}

// StatsResponse summarizes the index.
type StatsResponse struct {
	Sources            int        `json:"sources"`
	Chunks             int        `json:"chunks"`
	Modules            int        `json:"modules"`
	Characters         int64      `json:"characters"`
	HasVectors         bool       `json:"has_vectors"`
	Vectors            int        `json:"vectors"`
	EmbeddingDimension int        `json:"embedding_dimension"`
	LastIndexedAt      *time.Time `json:"last_indexed_at,omitempty"`
}

// Chunk handles GET /api/v1/chunk?id=.
func (h *DocsHandler) Chunk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := requireParam(r, "id")
	if err != nil {
		handleError(ctx, w, err, "Failed to get chunk")
		return
	}

	rec, err := h.chunks.GetByID(ctx, id)
	if err != nil {
		handleError(ctx, w, err, "Failed to get chunk")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toChunkResponse(*rec))
}

// Context handles GET /api/v1/context?id=&before=&after=.
func (h *DocsHandler) Context(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := requireParam(r, "id")
	if err != nil {
		handleError(ctx, w, err, "Failed to get context")
		return
	}
	before, err := intParam(r, "before", 1)
	if err != nil {
		handleError(ctx, w, err, "Failed to get context")
		return
	}
	after, err := intParam(r, "after", 1)
	if err != nil {
		handleError(ctx, w, err, "Failed to get context")
		return
	}

	result, err := h.chunks.GetContext(ctx, id, before, after)
	if err != nil {
		handleError(ctx, w, err, "Failed to get context")
		return
	}
	if result.Target == nil {
		writeError(ctx, w, http.StatusNotFound, result.Error)
		return
	}

	writeJSON(ctx, w, http.StatusOK, ContextResponse{
		Target:  toChunkResponse(*result.Target),
		Context: toChunkResponses(result.Context),
	})
}

// Sources handles GET /api/v1/sources, or searches paths with ?pattern=.
func (h *DocsHandler) Sources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		summaries []storage.SourceSummary
		err       error
	)
	if pattern := r.URL.Query().Get("pattern"); pattern != "" {
		limit, perr := intParam(r, "limit", defaultSourceSearchLimit)
		if perr != nil {
			handleError(ctx, w, perr, "Failed to list sources")
			return
		}
		summaries, err = h.sources.SearchSources(ctx, pattern, limit)
	} else {
		summaries, err = h.sources.ListSources(ctx)
	}
	if err != nil {
		handleError(ctx, w, err, "Failed to list sources")
		return
	}

	out := make([]SourceSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = SourceSummaryResponse{Path: s.Path, Title: s.Title, ChunkCount: s.ChunkCount}
	}
	writeJSON(ctx, w, http.StatusOK, SourcesResponse{Sources: out, Count: len(out)})
}

// Source handles GET /api/v1/source?path=&offset=&limit=.
func (h *DocsHandler) Source(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	path, err := requireParam(r, "path")
	if err != nil {
		handleError(ctx, w, err, "Failed to get source")
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		handleError(ctx, w, err, "Failed to get source")
		return
	}
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		handleError(ctx, w, err, "Failed to get source")
		return
	}

	page, err := h.chunks.GetSource(ctx, path, offset, limit)
	if err != nil {
		handleError(ctx, w, err, "Failed to get source")
		return
	}
	if page.Error != "" {
		writeError(ctx, w, http.StatusNotFound, page.Error)
		return
	}

	writeJSON(ctx, w, http.StatusOK, SourceResponse{
		Path:   path,
		Chunks: toChunkResponses(page.Chunks),
		Total:  page.Total,
		Offset: page.Offset,
	})
}

// Sections handles GET /api/v1/sections?path=.
func (h *DocsHandler) Sections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	path, err := requireParam(r, "path")
	if err != nil {
		handleError(ctx, w, err, "Failed to list sections")
		return
	}

	sections, err := h.chunks.ListSections(ctx, path)
	if err != nil {
		handleError(ctx, w, err, "Failed to list sections")
		return
	}
	if len(sections) == 0 {
		writeError(ctx, w, http.StatusNotFound, "Source not found: "+path)
		return
	}

	out := make([]SectionResponse, len(sections))
	for i, s := range sections {
		out[i] = SectionResponse{Title: s.Title, ChunkID: s.ChunkID, ChunkIndex: s.ChunkIndex}
	}
	writeJSON(ctx, w, http.StatusOK, SectionsResponse{Path: path, Sections: out})
}

// Modules handles GET /api/v1/modules.
func (h *DocsHandler) Modules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	modules, err := h.sources.ListModules(ctx)
	if err != nil {
		handleError(ctx, w, err, "Failed to list modules")
		return
	}

	out := make([]ModuleResponse, len(modules))
	for i, m := range modules {
		out[i] = ModuleResponse{Module: m.Module, FileCount: m.FileCount, ChunkCount: m.ChunkCount}
	}
	writeJSON(ctx, w, http.StatusOK, ModulesResponse{Modules: out, Count: len(out)})
}

// Stats handles GET /api/v1/stats.
func (h *DocsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.sources.Stats(ctx)
	if err != nil {
		handleError(ctx, w, err, "Failed to get stats")
		return
	}

	writeJSON(ctx, w, http.StatusOK, StatsResponse{
		Sources:            stats.Sources,
		Chunks:             stats.Chunks,
		Modules:            stats.Modules,
		Characters:         stats.Characters,
		HasVectors:         stats.HasVectors,
		Vectors:            stats.Vectors,
		EmbeddingDimension: stats.EmbeddingDimension,
		LastIndexedAt:      stats.LastIndexedAt,
	})
}
