package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"docs-mcp/internal/contextutil"
	"docs-mcp/internal/search"
	"docs-mcp/internal/storage"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v with the given status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(ctx context.Context, w http.ResponseWriter, statusCode int, message string) {
	writeJSON(ctx, w, statusCode, ErrorResponse{Error: message})
}

// handleError maps validation errors to 400, missing records to 404 and
// everything else to 500.
func handleError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *search.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(ctx, "validation error", "field", validationErr.Field, "error", err)
		writeError(ctx, w, http.StatusBadRequest, validationErr.Error())
		return
	}

	if errors.Is(err, storage.ErrNotFound) {
		writeError(ctx, w, http.StatusNotFound, "Resource not found")
		return
	}

	logger.ErrorContext(ctx, defaultMsg, "error", err)
	writeError(ctx, w, http.StatusInternalServerError, defaultMsg)
}

// requireParam returns the named query parameter or a ValidationError when it is blank.
func requireParam(r *http.Request, name string) (string, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return "", &search.ValidationError{Field: name, Message: "is required"}
	}
	return value, nil
}

// intParam parses an optional integer query parameter.
func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &search.ValidationError{Field: name, Message: "must be an integer", Err: err}
	}
	return n, nil
}

// ChunkResponse is one chunk.
type ChunkResponse struct {
	ChunkID    string `json:"chunk_id"`
	Source     string `json:"source"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	ChunkIndex int    `json:"chunk_index"`
}

func toChunkResponse(rec storage.ChunkRecord) ChunkResponse {
	return ChunkResponse{
		ChunkID:    rec.ID,
		Source:     rec.Source,
		Title:      rec.Title,
		Content:    rec.Content,
		ChunkIndex: rec.ChunkIndex,
	}
}

func toChunkResponses(recs []storage.ChunkRecord) []ChunkResponse {
	out := make([]ChunkResponse, len(recs))
	for i, rec := range recs {
		out[i] = toChunkResponse(rec)
	}
	return out
}
