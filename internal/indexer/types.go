package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_indexer.go -package=mocks docs-mcp/internal/indexer Embedder,VectorSink

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrIndexInProgress is returned when a run is requested while another is active.
	ErrIndexInProgress = errors.New("indexing already in progress")

	// ErrStoreRequired is returned when a source store is not provided.
	ErrStoreRequired = errors.New("source store required")

	// ErrChunkerRequired is returned when a chunker is not provided.
	ErrChunkerRequired = errors.New("chunker required")
)

// Embedder generates chunk embeddings.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// VectorSink stores chunk vectors outside the SQLite database.
type VectorSink interface {
	UpsertChunks(ctx context.Context, source string, chunkIDs []string, vectors [][]float32) error
	DeleteChunks(ctx context.Context, chunkIDs []string) error
}

// Progress is a snapshot of a running index pass.
type Progress struct {
	Completed int // Files handled so far, skipped or not
	Total     int
	Processed int
	Skipped   int
	Failed    int
	Elapsed   time.Duration
	// ETA is negative until at least one file has been processed.
	ETA  time.Duration
	Done bool
}

// Percent returns the completed share of the run in [0, 100].
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return float64(p.Completed) / float64(p.Total) * 100
}

// RunStats summarizes a finished index pass.
type RunStats struct {
	Found     int           `json:"found"`
	Processed int           `json:"processed"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Chunks    int           `json:"chunks"`
	Pruned    int           `json:"pruned"`
	Duration  time.Duration `json:"duration"`
}
