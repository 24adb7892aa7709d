package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"docs-mcp/internal/contextutil"
)

// PathLister lists indexed source paths.
type PathLister interface {
	ListPaths(ctx context.Context) ([]string, error)
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	sources            PathLister
	searcher           Searcher
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(sources PathLister, searcher Searcher) *HealthHandler {
	return &HealthHandler{
		sources:            sources,
		searcher:           searcher,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string            `json:"status"` // healthy, degraded or unhealthy
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Issues    []string          `json:"issues,omitempty"`
}

// ServeHTTP reports 200 when the database answers, with status "degraded" when
// only keyword search is available, and 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	status := "healthy"
	httpStatus := http.StatusOK

	if h.checkDatabase(checkCtx, logger) {
		checks["database"] = "ok"
	} else {
		checks["database"] = "error"
		issues = append(issues, "database_unavailable")
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	if h.searcher.SemanticAvailable(checkCtx) {
		checks["semantic_search"] = "ok"
	} else {
		checks["semantic_search"] = "unavailable"
		issues = append(issues, "semantic_search_unavailable")
		if status == "healthy" {
			status = "degraded"
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	}
	writeJSON(ctx, w, httpStatus, response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context, logger *slog.Logger) bool {
	if _, err := h.sources.ListPaths(ctx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		return false
	}
	return true
}
