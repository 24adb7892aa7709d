package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docs-mcp/internal/handlers"
	"docs-mcp/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Search    handlers.Searcher
	Chunks    storage.ChunkStore
	Sources   storage.SourceStore
	Reindexer handlers.Reindexer
	// DocsRoot is the tree re-indexed by POST /api/v1/index. Empty disables it.
	DocsRoot string
	Logger   *slog.Logger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(RequestLogger)
	r.Use(CORS)

	docs := handlers.NewDocsHandler(deps.Chunks, deps.Sources)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Sources, deps.Search))

		r.Route("/v1", func(r chi.Router) {
			r.Method(http.MethodGet, "/search", handlers.NewSearchHandler(deps.Search))
			r.Get("/chunk", docs.Chunk)
			r.Get("/context", docs.Context)
			r.Get("/sources", docs.Sources)
			r.Get("/source", docs.Source)
			r.Get("/sections", docs.Sections)
			r.Get("/modules", docs.Modules)
			r.Get("/stats", docs.Stats)
			if deps.Reindexer != nil {
				r.Method(http.MethodPost, "/index", handlers.NewIndexHandler(deps.Reindexer, deps.DocsRoot))
			}
		})
	})

	return r
}
