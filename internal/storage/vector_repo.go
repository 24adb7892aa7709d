package storage

import (
	"context"
	"database/sql"
	"fmt"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"

	"docs-mcp/internal/ranking"
)

// VectorRepo runs nearest-neighbour queries against the chunks_vec table.
type VectorRepo struct {
	db *sql.DB
}

// NewVectorRepo creates a new VectorRepo.
func NewVectorRepo(db *sql.DB) *VectorRepo {
	return &VectorRepo{db: db}
}

// HasVectors reports whether the database has a vector table.
// Schema inspection errors count as unavailable.
func (r *VectorRepo) HasVectors(ctx context.Context) bool {
	ok, err := hasTable(ctx, r.db, "chunks_vec")
	return err == nil && ok
}

// NearestChunks returns up to limit chunk ids closest to embedding, nearest first.
func (r *VectorRepo) NearestChunks(ctx context.Context, embedding []float32, limit int) ([]ranking.Neighbor, error) {
	if limit <= 0 {
		return nil, nil
	}

	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize query embedding: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, distance FROM chunks_vec WHERE embedding MATCH ? AND k = ? ORDER BY distance",
		blob, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query nearest chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var neighbors []ranking.Neighbor
	for rows.Next() {
		var n ranking.Neighbor
		if err := rows.Scan(&n.ID, &n.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan neighbor: %w", err)
		}
		neighbors = append(neighbors, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return neighbors, nil
}
