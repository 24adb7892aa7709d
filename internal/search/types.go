package search

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_signals.go -package=mocks docs-mcp/internal/search KeywordSearcher,VectorSearcher,ChunkFetcher,Embedder

import (
	"context"

	"docs-mcp/internal/ranking"
	"docs-mcp/internal/storage"
)

// DefaultLimit is the number of results returned when a request does not set one.
const DefaultLimit = 10

// Request is a documentation query.
type Request struct {
	Query string
	// Limit caps the result count; <= 0 means DefaultLimit.
	Limit int
	// Mode defaults to ModeHybrid when empty.
	Mode Mode
	// SourceFilter keeps only results whose source path contains it.
	SourceFilter string
}

// Result is one hydrated search hit.
type Result struct {
	ChunkID    string  `json:"chunk_id"`
	Source     string  `json:"source"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
}

// KeywordSearcher ranks chunks by lexical relevance.
type KeywordSearcher interface {
	KeywordSearch(ctx context.Context, query string, limit int) ([]ranking.Ranked, error)
}

// VectorSearcher finds the chunks nearest to an embedding.
type VectorSearcher interface {
	// HasVectors reports whether a vector index is available.
	HasVectors(ctx context.Context) bool
	NearestChunks(ctx context.Context, embedding []float32, limit int) ([]ranking.Neighbor, error)
}

// ChunkFetcher resolves chunk ids into records.
type ChunkFetcher interface {
	FetchChunks(ctx context.Context, ids []string) (map[string]*storage.ChunkRecord, error)
}

// Embedder turns query text into an embedding.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
