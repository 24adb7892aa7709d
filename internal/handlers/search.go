package handlers

import (
	"context"
	"net/http"

	"docs-mcp/internal/contextutil"
	"docs-mcp/internal/search"
)

// Searcher runs documentation queries.
type Searcher interface {
	SearchDocs(ctx context.Context, req search.Request) ([]search.Result, error)
	SemanticAvailable(ctx context.Context) bool
}

// SearchHandler handles HTTP requests for documentation search.
type SearchHandler struct {
	searcher Searcher
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searcher Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// SearchResponse represents the response from the search endpoint.
type SearchResponse struct {
	Query   string          `json:"query"`
	Mode    string          `json:"mode"`
	Results []search.Result `json:"results"`
	Count   int             `json:"count"`
}

// ServeHTTP searches the documentation with keyword, semantic or hybrid retrieval.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query, err := requireParam(r, "q")
	if err != nil {
		handleError(ctx, w, err, "Failed to search")
		return
	}
	limit, err := intParam(r, "limit", search.DefaultLimit)
	if err != nil {
		handleError(ctx, w, err, "Failed to search")
		return
	}

	mode := search.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = search.ModeHybrid
	}

	results, err := h.searcher.SearchDocs(ctx, search.Request{
		Query:        query,
		Limit:        limit,
		Mode:         mode,
		SourceFilter: r.URL.Query().Get("source"),
	})
	if err != nil {
		handleError(ctx, w, err, "Failed to search")
		return
	}
	if results == nil {
		results = []search.Result{}
	}

	logger.InfoContext(ctx, "search completed", "mode", mode, "results", len(results))
	writeJSON(ctx, w, http.StatusOK, SearchResponse{
		Query:   query,
		Mode:    string(mode),
		Results: results,
		Count:   len(results),
	})
}
