package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"docs-mcp/internal/contextutil"
	"docs-mcp/internal/ranking"
)

// Engine answers documentation queries by combining a keyword signal with an
// optional semantic signal.
type Engine struct {
	keyword  KeywordSearcher
	fetcher  ChunkFetcher
	vectors  VectorSearcher
	embedder Embedder
	fusionK  int
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithSemantic enables the semantic signal. Either argument may be nil, in
// which case semantic retrieval stays unavailable.
func WithSemantic(embedder Embedder, vectors VectorSearcher) Option {
	return func(e *Engine) error {
		e.embedder = embedder
		e.vectors = vectors
		return nil
	}
}

// WithFusionK sets the Reciprocal Rank Fusion constant.
// Default is ranking.DefaultK.
func WithFusionK(k int) Option {
	return func(e *Engine) error {
		if k < 0 {
			return fmt.Errorf("fusion k must be non-negative, got %d", k)
		}
		e.fusionK = k
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new search engine.
func NewEngine(keyword KeywordSearcher, fetcher ChunkFetcher, opts ...Option) (*Engine, error) {
	if keyword == nil {
		return nil, ErrKeywordSearcherRequired
	}
	if fetcher == nil {
		return nil, ErrChunkFetcherRequired
	}

	e := &Engine{
		keyword: keyword,
		fetcher: fetcher,
		fusionK: ranking.DefaultK,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// SemanticAvailable reports whether queries can use the semantic signal.
func (e *Engine) SemanticAvailable(ctx context.Context) bool {
	return e.embedder != nil && e.vectors != nil && e.vectors.HasVectors(ctx)
}

// SearchDocs runs the signals selected by req.Mode and returns hydrated results.
//
// A single non-empty signal is returned as is, with its own scores. Two
// non-empty signals are merged with Reciprocal Rank Fusion. Signal failures
// are logged and treated as empty lists. An unknown mode fails before any
// signal runs.
func (e *Engine) SearchDocs(ctx context.Context, req Request) ([]Result, error) {
	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	logger := contextutil.LoggerOr(ctx, e.logger)

	var keywordHits, semanticHits []ranking.Ranked
	var wg sync.WaitGroup

	if mode.usesKeyword() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			keywordHits = e.keywordSignal(ctx, logger, req.Query, limit)
		}()
	}
	if mode.usesSemantic() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			semanticHits = e.semanticSignal(ctx, logger, req.Query, limit)
		}()
	}
	wg.Wait()

	var lists [][]ranking.Ranked
	for _, hits := range [][]ranking.Ranked{keywordHits, semanticHits} {
		if len(hits) > 0 {
			lists = append(lists, hits)
		}
	}

	var combined []ranking.Ranked
	switch len(lists) {
	case 0:
		return []Result{}, nil
	case 1:
		combined = truncate(lists[0], limit)
	default:
		combined = truncate(ranking.Fuse(lists, e.fusionK), limit)
	}

	records, err := e.fetcher.FetchChunks(ctx, ranking.IDs(combined))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chunks: %w", err)
	}

	results := make([]Result, 0, len(combined))
	for _, hit := range combined {
		rec, ok := records[hit.ID]
		if !ok || rec == nil {
			continue
		}
		if req.SourceFilter != "" && !strings.Contains(rec.Source, req.SourceFilter) {
			continue
		}
		results = append(results, Result{
			ChunkID:    rec.ID,
			Source:     rec.Source,
			Title:      rec.Title,
			Content:    rec.Content,
			ChunkIndex: rec.ChunkIndex,
			Score:      hit.Score,
		})
	}

	logger.DebugContext(ctx, "search completed",
		"mode", mode,
		"keyword_hits", len(keywordHits),
		"semantic_hits", len(semanticHits),
		"results", len(results),
	)

	return results, nil
}

func (e *Engine) keywordSignal(ctx context.Context, logger *slog.Logger, query string, limit int) []ranking.Ranked {
	hits, err := e.keyword.KeywordSearch(ctx, query, limit)
	if err != nil {
		logger.WarnContext(ctx, "keyword search failed", "error", err)
		return nil
	}
	return hits
}

func (e *Engine) semanticSignal(ctx context.Context, logger *slog.Logger, query string, limit int) []ranking.Ranked {
	if e.embedder == nil || e.vectors == nil {
		return nil
	}
	if !e.vectors.HasVectors(ctx) {
		logger.DebugContext(ctx, "vector index unavailable, skipping semantic search")
		return nil
	}

	embedding, err := e.embedder.Embed(ctx, query)
	if err != nil {
		logger.WarnContext(ctx, "query embedding failed", "error", err)
		return nil
	}

	neighbors, err := e.vectors.NearestChunks(ctx, embedding, limit)
	if err != nil {
		logger.WarnContext(ctx, "vector search failed", "error", err)
		return nil
	}
	return ranking.FromNeighbors(neighbors)
}

func truncate(ranked []ranking.Ranked, limit int) []ranking.Ranked {
	if len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
