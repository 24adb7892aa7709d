package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks docs-mcp/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"docs-mcp/internal/ranking"
)

const chunkColumns = "id, source, COALESCE(title, ''), content, chunk_index"

// ChunkStore defines the read operations over stored chunks.
type ChunkStore interface {
	// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*ChunkRecord, error)
	// FetchChunks returns the chunks for ids keyed by id. Unknown ids are absent.
	FetchChunks(ctx context.Context, ids []string) (map[string]*ChunkRecord, error)
	// GetContext returns a chunk with up to before/after neighbours from its source.
	GetContext(ctx context.Context, id string, before, after int) (*ContextResult, error)
	// GetSource returns the chunks of a source in order. limit <= 0 means no limit.
	GetSource(ctx context.Context, path string, offset, limit int) (*SourcePage, error)
	// ListSections returns the distinct section titles of a source in document order.
	ListSections(ctx context.Context, path string) ([]SectionSummary, error)
	// GetByTitle returns every chunk of a source carrying the given title.
	GetByTitle(ctx context.Context, path, title string) ([]ChunkRecord, error)
	// KeywordSearch ranks chunks by BM25 over title and content.
	KeywordSearch(ctx context.Context, query string, limit int) ([]ranking.Ranked, error)
	// SearchSymbols finds chunks containing a token that starts with prefix.
	SearchSymbols(ctx context.Context, prefix string, limit int) ([]SymbolMatch, error)
	// SearchTitles finds chunks whose section title matches every query token.
	SearchTitles(ctx context.Context, query string, limit int) ([]SymbolMatch, error)
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChunk(row rowScanner) (ChunkRecord, error) {
	var c ChunkRecord
	err := row.Scan(&c.ID, &c.Source, &c.Title, &c.Content, &c.ChunkIndex)
	return c, err
}

func (r *ChunkRepo) queryChunks(ctx context.Context, query string, args ...any) ([]ChunkRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chunks []ChunkRecord
	for rows.Next() {
		c, err := scanChunk(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chunks, nil
}

// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
func (r *ChunkRepo) GetByID(ctx context.Context, id string) (*ChunkRecord, error) {
	c, err := scanChunk(r.db.QueryRowContext(ctx,
		"SELECT "+chunkColumns+" FROM chunks WHERE id = ?",
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk: %w", err)
	}

	return &c, nil
}

// FetchChunks returns the chunks for ids keyed by id. Ids that do not resolve
// are simply absent from the map.
func (r *ChunkRepo) FetchChunks(ctx context.Context, ids []string) (map[string]*ChunkRecord, error) {
	found := make(map[string]*ChunkRecord, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	chunks, err := r.queryChunks(ctx,
		"SELECT "+chunkColumns+" FROM chunks WHERE id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, err
	}

	for i := range chunks {
		found[chunks[i].ID] = &chunks[i]
	}
	return found, nil
}

// GetContext returns the chunk with up to before preceding and after following
// chunks of the same source.
func (r *ChunkRepo) GetContext(ctx context.Context, id string, before, after int) (*ContextResult, error) {
	target, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return &ContextResult{Context: []ChunkRecord{}, Error: "Chunk not found: " + id}, nil
	}
	if err != nil {
		return nil, err
	}

	before = max(before, 0)
	after = max(after, 0)

	chunks, err := r.queryChunks(ctx,
		"SELECT "+chunkColumns+" FROM chunks WHERE source = ? AND chunk_index BETWEEN ? AND ? ORDER BY chunk_index",
		target.Source, max(0, target.ChunkIndex-before), target.ChunkIndex+after,
	)
	if err != nil {
		return nil, err
	}

	result := &ContextResult{Target: target, Context: []ChunkRecord{}}
	for _, c := range chunks {
		if c.ID == id {
			continue
		}
		result.Context = append(result.Context, c)
	}
	return result, nil
}

// GetSource returns a page of a source's chunks ordered by chunk index.
// limit <= 0 returns every chunk from offset on.
func (r *ChunkRepo) GetSource(ctx context.Context, path string, offset, limit int) (*SourcePage, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks WHERE source = ?", path).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count source chunks: %w", err)
	}
	if total == 0 {
		return &SourcePage{Chunks: []ChunkRecord{}, Error: "Source not found: " + path}, nil
	}

	offset = max(offset, 0)
	if limit <= 0 {
		limit = -1
	}

	chunks, err := r.queryChunks(ctx,
		"SELECT "+chunkColumns+" FROM chunks WHERE source = ? ORDER BY chunk_index LIMIT ? OFFSET ?",
		path, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	if chunks == nil {
		chunks = []ChunkRecord{}
	}

	return &SourcePage{Chunks: chunks, Total: total, Offset: offset}, nil
}

// ListSections returns each distinct title of a source with its first chunk,
// in order of first appearance.
func (r *ChunkRepo) ListSections(ctx context.Context, path string) ([]SectionSummary, error) {
	// SQLite takes the bare id column from the row holding MIN(chunk_index).
	rows, err := r.db.QueryContext(ctx,
		`SELECT COALESCE(title, ''), id, MIN(chunk_index) AS first_index
		 FROM chunks WHERE source = ? GROUP BY title ORDER BY first_index`,
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sections []SectionSummary
	for rows.Next() {
		var s SectionSummary
		if err := rows.Scan(&s.Title, &s.ChunkID, &s.ChunkIndex); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sections, nil
}

// GetByTitle returns every chunk of a source whose title equals title.
func (r *ChunkRepo) GetByTitle(ctx context.Context, path, title string) ([]ChunkRecord, error) {
	return r.queryChunks(ctx,
		"SELECT "+chunkColumns+" FROM chunks WHERE source = ? AND COALESCE(title, '') = ? ORDER BY chunk_index",
		path, title,
	)
}

// KeywordSearch returns up to limit chunks ranked by -bm25 with the title
// column weighted 1 and content 10. A blank query returns no results.
func (r *ChunkRepo) KeywordSearch(ctx context.Context, query string, limit int) ([]ranking.Ranked, error) {
	match := SanitizeFTSQuery(query)
	if match == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, -bm25(chunks_fts, 1, 10) AS score
		 FROM chunks_fts JOIN chunks c ON chunks_fts.rowid = c.rowid
		 WHERE chunks_fts MATCH ? ORDER BY score DESC LIMIT ?`,
		match, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run keyword search: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ranked []ranking.Ranked
	for rows.Next() {
		var item ranking.Ranked
		if err := rows.Scan(&item.ID, &item.Score); err != nil {
			return nil, fmt.Errorf("failed to scan keyword hit: %w", err)
		}
		ranked = append(ranked, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ranked, nil
}

// SearchSymbols finds chunks containing a token that starts with prefix,
// such as an API name. A blank prefix returns no results.
func (r *ChunkRepo) SearchSymbols(ctx context.Context, prefix string, limit int) ([]SymbolMatch, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, nil
	}
	return r.searchMatches(ctx, prefixQuery(prefix), "-bm25(chunks_fts, 1, 10)", limit)
}

// SearchTitles finds chunks whose title contains every token of query,
// weighting title matches over content.
func (r *ChunkRepo) SearchTitles(ctx context.Context, query string, limit int) ([]SymbolMatch, error) {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	filters := make([]string, len(tokens))
	for i, token := range tokens {
		filters[i] = "title : " + quote(token)
	}
	return r.searchMatches(ctx, strings.Join(filters, " AND "), "-bm25(chunks_fts, 10, 1)", limit)
}

func (r *ChunkRepo) searchMatches(ctx context.Context, match, scoreExpr string, limit int) ([]SymbolMatch, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.source, COALESCE(c.title, ''), c.content, `+scoreExpr+` AS score
		 FROM chunks_fts JOIN chunks c ON chunks_fts.rowid = c.rowid
		 WHERE chunks_fts MATCH ? ORDER BY score DESC LIMIT ?`,
		match, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run match query: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var matches []SymbolMatch
	for rows.Next() {
		var m SymbolMatch
		if err := rows.Scan(&m.ChunkID, &m.Source, &m.Title, &m.Content, &m.Score); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return matches, nil
}
