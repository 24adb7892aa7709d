package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"docs-mcp/internal/config"
	"docs-mcp/internal/indexer"
	"docs-mcp/internal/llm"
	"docs-mcp/internal/search"
	"docs-mcp/internal/storage"
	"docs-mcp/internal/vectorstore"
)

// embedder is what both the indexer and the search engine need from a provider.
type embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// buildEmbedder constructs the configured embedding provider. It returns nil
// when embeddings are disabled.
func buildEmbedder(c config.EmbeddingConfig) (embedder, error) {
	switch c.Provider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderHTTP:
		return llm.NewEmbeddingsClient(c.BaseURL, c.APIKey, c.ModelName, c.Dimension), nil
	case config.ProviderOpenAI:
		return llm.NewOpenAIEmbedder(c.APIKey, c.BaseURL, c.ModelName, c.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", c.Provider)
	}
}

// runtime holds the stores and services opened for one command.
type runtime struct {
	dbPath   string
	db       *sql.DB
	chunks   *storage.ChunkRepo
	sources  *storage.SourceRepo
	embedder embedder
	vectors  search.VectorSearcher
	sink     indexer.VectorSink
	qdrant   *vectorstore.QdrantStore
	engine   *search.Engine
}

// openRuntime opens the database at dbPath and wires the vector backend and
// search engine. With withEmbeddings false only keyword search is available.
// ensureCollection creates the Qdrant collection when it is missing.
func openRuntime(ctx context.Context, c *config.Config, dbPath string, withEmbeddings, ensureCollection bool, logger *slog.Logger) (_ *runtime, err error) {
	rt := &runtime{dbPath: dbPath}
	defer func() {
		if err != nil {
			rt.Close()
		}
	}()

	if withEmbeddings {
		rt.embedder, err = buildEmbedder(c.Embedding)
		if err != nil {
			return nil, err
		}
	}

	rt.db, err = storage.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}

	dim := 0
	if rt.embedder != nil && c.VectorBackend == config.BackendSQLiteVec {
		dim = c.Embedding.Dimension
	}
	if err = storage.Migrate(rt.db, dim); err != nil {
		if errors.Is(err, storage.ErrDimensionMismatch) {
			return nil, fmt.Errorf("%w (rebuild the index or set EMBEDDING_DIMENSION to match)", err)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.DebugContext(ctx, "database initialized", "path", dbPath, "embedding_dimension", dim)

	rt.chunks = storage.NewChunkRepo(rt.db)
	rt.sources = storage.NewSourceRepo(rt.db)

	if rt.embedder != nil {
		switch c.VectorBackend {
		case config.BackendQdrant:
			rt.qdrant, err = vectorstore.NewQdrantStore(c.Qdrant.URL, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
			}
			if ensureCollection {
				if err = rt.qdrant.EnsureCollection(ctx, c.Qdrant.Collection, c.Embedding.Dimension); err != nil {
					return nil, fmt.Errorf("failed to ensure Qdrant collection: %w", err)
				}
				logger.InfoContext(ctx, "qdrant collection ready", "collection", c.Qdrant.Collection, "vector_size", c.Embedding.Dimension)
			}
			index := vectorstore.NewIndex(rt.qdrant, c.Qdrant.Collection, logger)
			rt.vectors = index
			rt.sink = index
		default:
			rt.vectors = storage.NewVectorRepo(rt.db)
		}
	}

	opts := []search.Option{search.WithLogger(logger)}
	if rt.embedder != nil {
		opts = append(opts, search.WithSemantic(rt.embedder, rt.vectors))
	}
	rt.engine, err = search.NewEngine(rt.chunks, rt.chunks, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create search engine: %w", err)
	}

	return rt, nil
}

// newPipeline creates an indexing pipeline over the runtime's stores.
func (rt *runtime) newPipeline(c *config.Config, chunkSize, chunkOverlap int, opts ...indexer.Option) (*indexer.Pipeline, error) {
	chunker, err := newChunker(chunkSize, chunkOverlap)
	if err != nil {
		return nil, err
	}

	all := []indexer.Option{
		indexer.WithBatchSize(c.Embedding.BatchSize),
		indexer.WithWorkers(c.Embedding.Workers),
	}
	if rt.embedder != nil {
		all = append(all, indexer.WithEmbedder(rt.embedder))
	}
	if rt.sink != nil {
		all = append(all, indexer.WithVectorStore(rt.sink))
	}
	all = append(all, opts...)

	return indexer.NewPipeline(rt.sources, chunker, all...)
}

// Close releases the vector client and the database.
func (rt *runtime) Close() {
	if rt.qdrant != nil {
		_ = rt.qdrant.Close()
	}
	if rt.db != nil {
		_ = storage.Close(rt.db)
	}
}
