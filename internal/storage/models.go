package storage

import "time"

// ChunkRecord is a stored chunk of a source document.
type ChunkRecord struct {
	ID         string // "<source>:<chunk_index>"
	Source     string // path relative to the indexing root, forward slashes
	Title      string // nearest preceding heading, empty when none
	Content    string
	ChunkIndex int // sequential across the whole source, starts at 0
}

// SourceRecord tracks one indexed file for incremental updates.
type SourceRecord struct {
	Path      string
	Hash      string // SHA256 hex of the file content
	Title     string // document title
	IndexedAt time.Time
}

// SourceSummary is a source path with the number of chunks it produced.
type SourceSummary struct {
	Path       string
	Title      string
	ChunkCount int
}

// ModuleSummary groups sources by their first path segment.
type ModuleSummary struct {
	Module     string
	FileCount  int
	ChunkCount int
}

// SectionSummary is one distinct section title within a source.
type SectionSummary struct {
	Title      string
	ChunkID    string // first chunk of the section
	ChunkIndex int
}

// ContextResult is a chunk together with its neighbours from the same source.
// Error is set and Target is nil when the chunk does not exist.
type ContextResult struct {
	Target  *ChunkRecord
	Context []ChunkRecord
	Error   string
}

// SourcePage is a window of the chunks of one source, in chunk order.
// Error is set when the source has no chunks.
type SourcePage struct {
	Chunks []ChunkRecord
	Total  int
	Offset int
	Error  string
}

// SymbolMatch is a chunk matched by a prefix or title search with its BM25 score.
type SymbolMatch struct {
	ChunkID string
	Source  string
	Title   string
	Content string
	Score   float64
}

// Stats summarizes the contents of the index.
type Stats struct {
	Sources            int
	Chunks             int
	Modules            int
	Characters         int64
	HasVectors         bool
	Vectors            int
	EmbeddingDimension int
	LastIndexedAt      *time.Time
}
