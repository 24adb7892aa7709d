package indexer

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"docs-mcp/internal/chunking"
	"docs-mcp/internal/contextutil"
	"docs-mcp/internal/doctree"
	"docs-mcp/internal/storage"
)

// DefaultBatchSize is the number of chunks sent to the embedder per request.
const DefaultBatchSize = 32

// Pipeline orchestrates the indexing of a markdown tree into the store.
type Pipeline struct {
	store     storage.SourceStore
	chunker   *chunking.Chunker
	embedder  Embedder
	vectors   VectorSink
	pool      *ants.Pool
	batchSize int
	prune     bool
	progress  func(Progress)
	logger    *slog.Logger
	now       func() time.Time

	running sync.Mutex
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithEmbedder enables embedding generation. Without an embedder only the
// keyword index is built.
func WithEmbedder(embedder Embedder) Option {
	return func(p *Pipeline) error {
		p.embedder = embedder
		return nil
	}
}

// WithVectorStore sends embeddings to an external vector store instead of
// the SQLite vector table.
func WithVectorStore(vectors VectorSink) Option {
	return func(p *Pipeline) error {
		p.vectors = vectors
		return nil
	}
}

// WithBatchSize sets the number of chunks per embedding request.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		p.batchSize = size
		return nil
	}
}

// WithWorkers sets the number of concurrent embedding requests.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithWorkers(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return fmt.Errorf("failed to create embedding pool: %w", err)
		}
		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithPrune removes sources that no longer exist on disk at the end of a run.
func WithPrune(prune bool) Option {
	return func(p *Pipeline) error {
		p.prune = prune
		return nil
	}
}

// WithProgress registers a callback receiving periodic progress snapshots.
func WithProgress(fn func(Progress)) Option {
	return func(p *Pipeline) error {
		p.progress = fn
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(store storage.SourceStore, chunker *chunking.Chunker, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if chunker == nil {
		return nil, ErrChunkerRequired
	}

	p := &Pipeline{
		store:     store,
		chunker:   chunker,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
		now:       time.Now,
	}

	poolSize := runtime.NumCPU() / 2
	if err := WithWorkers(poolSize)(p); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// Release stops the embedding worker pool.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

func (p *Pipeline) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerOr(ctx, p.logger)
}

// fileOutcome is the result of indexing one file.
type fileOutcome struct {
	skipped bool
	chunks  int
}

// hashContent returns the hex sha256 of a file's content.
func hashContent(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// indexFile indexes a single file. It checks if the file has changed (via
// hash), chunks it, generates embeddings and replaces the stored source.
// Nothing is written when any step fails.
func (p *Pipeline) indexFile(ctx context.Context, file doctree.ScannedFile) (fileOutcome, error) {
	logger := p.getLogger(ctx)

	content, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return fileOutcome{}, fmt.Errorf("failed to read file %s: %w", file.AbsPath, err)
	}

	hash := hashContent(content)

	existing, err := p.store.GetHash(ctx, file.RelPath)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fileOutcome{}, fmt.Errorf("failed to check existing source: %w", err)
	}
	if err == nil && existing == hash {
		logger.DebugContext(ctx, "skipping unchanged file", "source", file.RelPath)
		return fileOutcome{skipped: true}, nil
	}

	chunks := p.chunker.ChunkDocument(file.RelPath, string(content))
	title := chunking.ExtractTitle(content, path.Base(file.RelPath))

	records := make([]storage.ChunkRecord, len(chunks))
	texts := make([]string, len(chunks))
	ids := make([]string, len(chunks))
	for i, c := range chunks {
		records[i] = storage.ChunkRecord{
			ID:         c.ID,
			Source:     c.Source,
			Title:      c.Title,
			Content:    c.Content,
			ChunkIndex: c.Index,
		}
		texts[i] = c.Content
		ids[i] = c.ID
	}

	var embeddings [][]float32
	if p.embedder != nil && len(texts) > 0 {
		embeddings, err = p.embed(ctx, texts)
		if err != nil {
			return fileOutcome{}, fmt.Errorf("failed to generate embeddings: %w", err)
		}
	}

	update := storage.SourceUpdate{
		Path:   file.RelPath,
		Hash:   hash,
		Title:  title,
		Chunks: records,
	}

	if p.vectors != nil {
		if embeddings != nil {
			if err := p.vectors.UpsertChunks(ctx, file.RelPath, ids, embeddings); err != nil {
				return fileOutcome{}, fmt.Errorf("failed to upsert vectors: %w", err)
			}
		}
	} else {
		update.Embeddings = embeddings
	}

	removed, err := p.store.ReplaceSource(ctx, update)
	if err != nil {
		return fileOutcome{}, fmt.Errorf("failed to store source: %w", err)
	}

	if p.vectors != nil {
		if stale := staleIDs(removed, ids); len(stale) > 0 {
			if err := p.vectors.DeleteChunks(ctx, stale); err != nil {
				logger.WarnContext(ctx, "failed to delete stale vectors", "source", file.RelPath, "count", len(stale), "error", err)
			}
		}
	}

	if len(chunks) == 0 {
		logger.WarnContext(ctx, "no chunks generated", "source", file.RelPath)
	}
	logger.DebugContext(ctx, "indexed file", "source", file.RelPath, "chunks", len(chunks), "title", title)
	return fileOutcome{chunks: len(chunks)}, nil
}

// staleIDs returns the removed ids that were not written again.
func staleIDs(removed, current []string) []string {
	keep := make(map[string]struct{}, len(current))
	for _, id := range current {
		keep[id] = struct{}{}
	}
	var stale []string
	for _, id := range removed {
		if _, ok := keep[id]; !ok {
			stale = append(stale, id)
		}
	}
	return stale
}

// embed embeds texts in batches across the worker pool, preserving order.
func (p *Pipeline) embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	for start := 0; start < len(texts); start += p.batchSize {
		end := min(start+p.batchSize, len(texts))

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			vecs, err := p.embedder.EmbedTexts(ctx, texts[start:end])
			if err != nil {
				setErr(err)
				return
			}
			if len(vecs) != end-start {
				setErr(fmt.Errorf("embedding count mismatch: expected %d, got %d", end-start, len(vecs)))
				return
			}
			copy(out[start:end], vecs)
		})
		if err != nil {
			wg.Done()
			setErr(fmt.Errorf("failed to submit embedding batch: %w", err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// Run indexes every markdown file under root. Errors for individual files are
// logged and counted but don't stop the run. Only one run may be active at a
// time; overlapping calls fail with ErrIndexInProgress.
func (p *Pipeline) Run(ctx context.Context, root string) (*RunStats, error) {
	if !p.running.TryLock() {
		return nil, ErrIndexInProgress
	}
	defer p.running.Unlock()

	return p.run(ctx, root)
}

// Start begins a run in the background and returns immediately. done, when
// not nil, receives the outcome. Start fails with ErrIndexInProgress when a
// run is already active.
func (p *Pipeline) Start(ctx context.Context, root string, done func(*RunStats, error)) error {
	if !p.running.TryLock() {
		return ErrIndexInProgress
	}

	go func() {
		defer p.running.Unlock()
		stats, err := p.run(ctx, root)
		if done != nil {
			done(stats, err)
		}
	}()
	return nil
}

func (p *Pipeline) run(ctx context.Context, root string) (*RunStats, error) {
	runID := uuid.NewString()
	logger := p.getLogger(ctx).With("run_id", runID)
	ctx = contextutil.WithLogger(ctx, logger)

	files, err := doctree.Scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents: %w", err)
	}

	logger.InfoContext(ctx, "starting indexing", "root", root, "total_files", len(files))

	tracker := newProgressTracker(len(files), p.now)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return tracker.stats(len(files), 0), err
		}

		outcome, err := p.indexFile(ctx, file)
		switch {
		case err != nil:
			tracker.failed++
			logger.ErrorContext(ctx, "failed to index file", "source", file.RelPath, "error", err)
		case outcome.skipped:
			tracker.skipped++
		default:
			tracker.processed++
			tracker.chunks += outcome.chunks
		}

		if p.progress != nil && tracker.due() {
			p.progress(tracker.snapshot())
		}
	}
	if p.progress != nil && len(files) == 0 {
		p.progress(tracker.snapshot())
	}

	pruned := 0
	if p.prune {
		pruned, err = p.pruneMissing(ctx, files)
		if err != nil {
			return tracker.stats(len(files), pruned), err
		}
	}

	stats := tracker.stats(len(files), pruned)
	logger.InfoContext(ctx, "indexing completed",
		"total_files", stats.Found,
		"processed", stats.Processed,
		"skipped", stats.Skipped,
		"errors", stats.Failed,
		"chunks", stats.Chunks,
		"pruned", stats.Pruned,
		"duration", stats.Duration,
	)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("indexing completed with %d errors", stats.Failed)
	}
	return stats, nil
}

// pruneMissing deletes recorded sources that were not found on disk.
func (p *Pipeline) pruneMissing(ctx context.Context, files []doctree.ScannedFile) (int, error) {
	logger := p.getLogger(ctx)

	onDisk := make(map[string]struct{}, len(files))
	for _, f := range files {
		onDisk[f.RelPath] = struct{}{}
	}

	paths, err := p.store.ListPaths(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list indexed sources: %w", err)
	}

	pruned := 0
	for _, source := range paths {
		if _, ok := onDisk[source]; ok {
			continue
		}
		if err := p.removeSource(ctx, source); err != nil {
			return pruned, err
		}
		pruned++
		logger.InfoContext(ctx, "pruned missing source", "source", source)
	}
	return pruned, nil
}

// removeSource deletes a source with its chunks and vectors.
func (p *Pipeline) removeSource(ctx context.Context, source string) error {
	removed, err := p.store.DeleteSource(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to delete source %s: %w", source, err)
	}
	if p.vectors != nil && len(removed) > 0 {
		if err := p.vectors.DeleteChunks(ctx, removed); err != nil {
			p.getLogger(ctx).WarnContext(ctx, "failed to delete vectors", "source", source, "error", err)
		}
	}
	return nil
}
