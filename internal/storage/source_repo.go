package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_source_store.go -package=mocks docs-mcp/internal/storage SourceStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrNoVectorTable is returned when embeddings are written to a database
	// that was migrated without an embedding dimension.
	ErrNoVectorTable = errors.New("vector table not initialized")
)

// SourceUpdate is the full replacement content of one source.
// Embeddings is either nil or aligned with Chunks.
type SourceUpdate struct {
	Path       string
	Hash       string
	Title      string
	Chunks     []ChunkRecord
	Embeddings [][]float32
}

// SourceStore defines the write and listing operations over indexed sources.
type SourceStore interface {
	// GetHash returns the recorded content hash of a source. Returns ErrNotFound if not indexed.
	GetHash(ctx context.Context, path string) (string, error)
	// ReplaceSource atomically swaps the chunks, vectors and hash of a source.
	// It returns the ids of the chunks that were removed.
	ReplaceSource(ctx context.Context, update SourceUpdate) ([]string, error)
	// DeleteSource removes a source with its chunks and vectors, returning the removed chunk ids.
	DeleteSource(ctx context.Context, path string) ([]string, error)
	// ListPaths returns every recorded source path, sorted.
	ListPaths(ctx context.Context) ([]string, error)
	// ListChunkIDs returns the chunk ids of a source ordered by chunk index.
	ListChunkIDs(ctx context.Context, path string) ([]string, error)
	// ListSources returns every source with its chunk count, sorted by path.
	ListSources(ctx context.Context) ([]SourceSummary, error)
	// SearchSources returns sources whose path contains pattern.
	SearchSources(ctx context.Context, pattern string, limit int) ([]SourceSummary, error)
	// ListModules groups sources by their first path segment.
	ListModules(ctx context.Context) ([]ModuleSummary, error)
	// Stats summarizes the index.
	Stats(ctx context.Context) (*Stats, error)
}

// SourceRepo provides methods for source operations.
// It implements the SourceStore interface.
type SourceRepo struct {
	db *sql.DB
}

// NewSourceRepo creates a new SourceRepo.
func NewSourceRepo(db *sql.DB) *SourceRepo {
	return &SourceRepo{db: db}
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func hasTable(ctx context.Context, q queryer, name string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		name,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	return n > 0, nil
}

func listStrings(ctx context.Context, q queryer, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return values, nil
}

// GetHash returns the recorded content hash of a source.
// Returns ErrNotFound if the source was never indexed.
func (r *SourceRepo) GetHash(ctx context.Context, path string) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx, "SELECT hash FROM sources WHERE path = ?", path).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query source hash: %w", err)
	}
	return hash, nil
}

// ReplaceSource deletes the previous chunks and vectors of update.Path, inserts
// the new ones and records the new hash in a single transaction. Nothing is
// written when any step fails.
func (r *SourceRepo) ReplaceSource(ctx context.Context, update SourceUpdate) ([]string, error) {
	if update.Embeddings != nil && len(update.Embeddings) != len(update.Chunks) {
		return nil, fmt.Errorf("got %d embeddings for %d chunks", len(update.Embeddings), len(update.Chunks))
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	hasVec, err := hasTable(ctx, tx, "chunks_vec")
	if err != nil {
		return nil, err
	}
	if update.Embeddings != nil && !hasVec {
		return nil, ErrNoVectorTable
	}

	removed, err := deleteChunks(ctx, tx, update.Path, hasVec)
	if err != nil {
		return nil, err
	}

	for _, c := range update.Chunks {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO chunks (id, source, title, content, chunk_index) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.Source, c.Title, c.Content, c.ChunkIndex,
		); err != nil {
			return nil, fmt.Errorf("failed to insert chunk %s: %w", c.ID, err)
		}
	}

	for i, embedding := range update.Embeddings {
		blob, err := sqlite_vec.SerializeFloat32(embedding)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize embedding: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO chunks_vec (id, embedding) VALUES (?, ?)",
			update.Chunks[i].ID, blob,
		); err != nil {
			return nil, fmt.Errorf("failed to insert embedding for %s: %w", update.Chunks[i].ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sources (path, hash, title, indexed_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (path) DO UPDATE SET
		 hash = excluded.hash, title = excluded.title, indexed_at = CURRENT_TIMESTAMP`,
		update.Path, update.Hash, update.Title,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert source: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit source: %w", err)
	}

	return removed, nil
}

// DeleteSource removes a source, its chunks and its vectors.
// It returns the ids of the removed chunks.
func (r *SourceRepo) DeleteSource(ctx context.Context, path string) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	hasVec, err := hasTable(ctx, tx, "chunks_vec")
	if err != nil {
		return nil, err
	}

	removed, err := deleteChunks(ctx, tx, path, hasVec)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sources WHERE path = ?", path); err != nil {
		return nil, fmt.Errorf("failed to delete source: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit source deletion: %w", err)
	}

	return removed, nil
}

func deleteChunks(ctx context.Context, tx *sql.Tx, path string, hasVec bool) ([]string, error) {
	ids, err := listStrings(ctx, tx, "SELECT id FROM chunks WHERE source = ? ORDER BY chunk_index", path)
	if err != nil {
		return nil, err
	}

	if hasVec {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, "DELETE FROM chunks_vec WHERE id = ?", id); err != nil {
				return nil, fmt.Errorf("failed to delete embedding %s: %w", id, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE source = ?", path); err != nil {
		return nil, fmt.Errorf("failed to delete chunks: %w", err)
	}

	return ids, nil
}

// ListPaths returns every recorded source path, sorted.
func (r *SourceRepo) ListPaths(ctx context.Context) ([]string, error) {
	return listStrings(ctx, r.db, "SELECT path FROM sources ORDER BY path")
}

// ListChunkIDs returns the chunk ids of a source ordered by chunk index.
// Returns an empty slice if no chunks exist (not an error).
func (r *SourceRepo) ListChunkIDs(ctx context.Context, path string) ([]string, error) {
	return listStrings(ctx, r.db, "SELECT id FROM chunks WHERE source = ? ORDER BY chunk_index", path)
}

func (r *SourceRepo) querySummaries(ctx context.Context, query string, args ...any) ([]SourceSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sources []SourceSummary
	for rows.Next() {
		var s SourceSummary
		if err := rows.Scan(&s.Path, &s.Title, &s.ChunkCount); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sources, nil
}

// ListSources returns every source that has chunks, sorted by path.
func (r *SourceRepo) ListSources(ctx context.Context) ([]SourceSummary, error) {
	return r.querySummaries(ctx,
		`SELECT c.source, COALESCE(s.title, ''), COUNT(*)
		 FROM chunks c LEFT JOIN sources s ON s.path = c.source
		 GROUP BY c.source ORDER BY c.source`,
	)
}

// SearchSources returns up to limit sources whose path contains pattern.
// A blank pattern returns no results.
func (r *SourceRepo) SearchSources(ctx context.Context, pattern string, limit int) ([]SourceSummary, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, nil
	}
	return r.querySummaries(ctx,
		`SELECT c.source, COALESCE(s.title, ''), COUNT(*)
		 FROM chunks c LEFT JOIN sources s ON s.path = c.source
		 WHERE c.source LIKE ? GROUP BY c.source ORDER BY c.source LIMIT ?`,
		"%"+pattern+"%", limit,
	)
}

// ListModules groups chunks by the first segment of their source path.
// Sources at the root form a module of their own.
func (r *SourceRepo) ListModules(ctx context.Context) ([]ModuleSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT
			CASE WHEN INSTR(source, '\') > 0 THEN SUBSTR(source, 1, INSTR(source, '\') - 1)
			     WHEN INSTR(source, '/') > 0 THEN SUBSTR(source, 1, INSTR(source, '/') - 1)
			     ELSE source END AS module,
			COUNT(DISTINCT source) AS file_count,
			COUNT(*) AS chunk_count
		 FROM chunks GROUP BY module ORDER BY module`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var modules []ModuleSummary
	for rows.Next() {
		var m ModuleSummary
		if err := rows.Scan(&m.Module, &m.FileCount, &m.ChunkCount); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return modules, nil
}

// Stats summarizes the contents of the index.
func (r *SourceRepo) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	var lastIndexed sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM sources),
			(SELECT COUNT(*) FROM chunks),
			(SELECT COALESCE(SUM(LENGTH(content)), 0) FROM chunks),
			(SELECT MAX(indexed_at) FROM sources)`,
	).Scan(&stats.Sources, &stats.Chunks, &stats.Characters, &lastIndexed)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}

	modules, err := r.ListModules(ctx)
	if err != nil {
		return nil, err
	}
	stats.Modules = len(modules)

	if lastIndexed.Valid {
		if t, err := parseTimestamp(lastIndexed.String); err == nil {
			stats.LastIndexedAt = &t
		}
	}

	stats.HasVectors, err = hasTable(ctx, r.db, "chunks_vec")
	if err != nil {
		return nil, err
	}
	if stats.HasVectors {
		if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks_vec").Scan(&stats.Vectors); err != nil {
			return nil, fmt.Errorf("failed to count vectors: %w", err)
		}
		if stats.EmbeddingDimension, err = EmbeddingDimension(r.db); err != nil {
			return nil, err
		}
	}

	return &stats, nil
}

// parseTimestamp parses SQLite DATETIME text in either of the formats the
// driver produces.
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
