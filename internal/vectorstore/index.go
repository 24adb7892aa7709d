package vectorstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"docs-mcp/internal/contextutil"
	"docs-mcp/internal/ranking"
)

const (
	payloadChunkID = "chunk_id"
	payloadSource  = "source"
)

// PointID returns the deterministic point id stored for a chunk.
// Qdrant only accepts UUIDs or integers as ids.
func PointID(chunkID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(chunkID)).String()
}

// Index maps chunk ids onto a collection of a VectorStore.
type Index struct {
	store      VectorStore
	collection string
	logger     *slog.Logger
}

// NewIndex creates an index over collection.
func NewIndex(store VectorStore, collection string, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{store: store, collection: collection, logger: logger}
}

// HasVectors reports whether the collection exists.
func (i *Index) HasVectors(ctx context.Context) bool {
	exists, err := i.store.CollectionExists(ctx, i.collection)
	if err != nil {
		contextutil.LoggerOr(ctx, i.logger).WarnContext(ctx, "failed to check vector collection", "collection", i.collection, "error", err)
		return false
	}
	return exists
}

// NearestChunks returns up to limit chunk ids closest to embedding. Cosine
// similarity s is reported as the distance 1-s.
func (i *Index) NearestChunks(ctx context.Context, embedding []float32, limit int) ([]ranking.Neighbor, error) {
	if limit <= 0 {
		return nil, nil
	}

	results, err := i.store.Search(ctx, i.collection, embedding, limit)
	if err != nil {
		return nil, err
	}

	neighbors := make([]ranking.Neighbor, 0, len(results))
	for _, r := range results {
		id, ok := r.Meta[payloadChunkID].(string)
		if !ok || id == "" {
			continue
		}
		neighbors = append(neighbors, ranking.Neighbor{ID: id, Distance: 1 - float64(r.Score)})
	}
	return neighbors, nil
}

// UpsertChunks stores one vector per chunk id of source.
func (i *Index) UpsertChunks(ctx context.Context, source string, chunkIDs []string, vectors [][]float32) error {
	if len(chunkIDs) != len(vectors) {
		return fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunkIDs))
	}

	points := make([]Point, len(chunkIDs))
	for n, id := range chunkIDs {
		points[n] = Point{
			ID:  PointID(id),
			Vec: vectors[n],
			Meta: map[string]any{
				payloadChunkID: id,
				payloadSource:  source,
			},
		}
	}
	return i.store.Upsert(ctx, i.collection, points)
}

// DeleteChunks removes the vectors of the given chunk ids.
func (i *Index) DeleteChunks(ctx context.Context, chunkIDs []string) error {
	ids := make([]string, len(chunkIDs))
	for n, id := range chunkIDs {
		ids[n] = PointID(id)
	}
	return i.store.Delete(ctx, i.collection, ids)
}
