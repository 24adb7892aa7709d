package handlers

import (
	"context"
	"errors"
	"net/http"

	"docs-mcp/internal/contextutil"
	"docs-mcp/internal/indexer"
)

// Reindexer starts background indexing runs.
type Reindexer interface {
	Start(ctx context.Context, root string, done func(*indexer.RunStats, error)) error
}

// IndexHandler handles HTTP requests for triggering re-indexing.
type IndexHandler struct {
	reindexer Reindexer
	root      string
}

// NewIndexHandler creates a new IndexHandler re-indexing the tree at root.
func NewIndexHandler(reindexer Reindexer, root string) *IndexHandler {
	return &IndexHandler{reindexer: reindexer, root: root}
}

// IndexResponse represents the response from the index endpoint.
type IndexResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ServeHTTP handles HTTP requests for triggering re-indexing.
//
// The run continues after the response is written. A run that is already
// active yields 409 Conflict.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if h.root == "" {
		writeError(ctx, w, http.StatusServiceUnavailable, "No docs directory configured for re-indexing")
		return
	}

	logger.InfoContext(ctx, "re-indexing triggered via API", "root", h.root)

	// Keep the request logger but outlive the request.
	runCtx := context.WithoutCancel(ctx)
	err := h.reindexer.Start(runCtx, h.root, func(stats *indexer.RunStats, err error) {
		if err != nil {
			logger.ErrorContext(runCtx, "re-indexing completed with errors", "error", err)
			return
		}
		logger.InfoContext(runCtx, "re-indexing completed successfully",
			"processed", stats.Processed, "skipped", stats.Skipped)
	})
	if errors.Is(err, indexer.ErrIndexInProgress) {
		writeError(ctx, w, http.StatusConflict, "Indexing already in progress")
		return
	}
	if err != nil {
		handleError(ctx, w, err, "Failed to start indexing")
		return
	}

	writeJSON(ctx, w, http.StatusAccepted, IndexResponse{
		Message: "Indexing started. Check server logs for progress.",
		Status:  "accepted",
	})
}
