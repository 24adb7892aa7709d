package indexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/mock/gomock"

	"docs-mcp/internal/chunking"
	indexer_mocks "docs-mcp/internal/indexer/mocks"
	"docs-mcp/internal/storage"
	storage_mocks "docs-mcp/internal/storage/mocks"
)

const threeSections = "# A\n\none\n\n# B\n\ntwo\n\n# C\n\nthree"

func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
}

func newChunker(t *testing.T) *chunking.Chunker {
	t.Helper()
	c, err := chunking.NewChunker(1500, 200)
	if err != nil {
		t.Fatalf("NewChunker() error = %v", err)
	}
	return c
}

func newTestPipeline(t *testing.T, store storage.SourceStore, opts ...Option) *Pipeline {
	t.Helper()
	p, err := NewPipeline(store, newChunker(t), opts...)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	t.Cleanup(p.Release)
	return p
}

// captureUpdates records every ReplaceSource call and returns removed ids from removedFor.
func captureUpdates(store *storage_mocks.MockSourceStore, removedFor map[string][]string) *[]storage.SourceUpdate {
	var (
		mu      sync.Mutex
		updates []storage.SourceUpdate
	)
	store.EXPECT().ReplaceSource(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u storage.SourceUpdate) ([]string, error) {
			mu.Lock()
			defer mu.Unlock()
			updates = append(updates, u)
			return removedFor[u.Path], nil
		}).AnyTimes()
	return &updates
}

func TestNewPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	chunker := newChunker(t)

	tests := []struct {
		name    string
		store   storage.SourceStore
		chunker *chunking.Chunker
		opts    []Option
		wantErr error
	}{
		{name: "valid", store: store, chunker: chunker},
		{name: "missing store", chunker: chunker, wantErr: ErrStoreRequired},
		{name: "missing chunker", store: store, wantErr: ErrChunkerRequired},
		{name: "invalid batch size", store: store, chunker: chunker, opts: []Option{WithBatchSize(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPipeline(tt.store, tt.chunker, tt.opts...)
			if tt.name == "invalid batch size" {
				if err == nil {
					t.Error("NewPipeline() expected error for batch size 0")
				}
				return
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewPipeline() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPipeline() error = %v", err)
			}
			defer p.Release()
			if p.batchSize != DefaultBatchSize {
				t.Errorf("batchSize = %d, want %d", p.batchSize, DefaultBatchSize)
			}
			if p.pool == nil {
				t.Error("pool should be created")
			}
		})
	}
}

func TestPipeline_Run_IndexesNewFiles(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "guide/intro.md", "# Introduction\n\nWelcome to the guide.")
	writeDoc(t, root, "readme.md", "plain text without headings")

	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	store.EXPECT().GetHash(gomock.Any(), gomock.Any()).Return("", storage.ErrNotFound).Times(2)
	updates := captureUpdates(store, nil)

	p := newTestPipeline(t, store)
	stats, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Found != 2 || stats.Processed != 2 || stats.Skipped != 0 || stats.Failed != 0 {
		t.Errorf("Run() stats = %+v", stats)
	}
	if stats.Chunks != 2 {
		t.Errorf("Chunks = %d, want 2", stats.Chunks)
	}

	if len(*updates) != 2 {
		t.Fatalf("ReplaceSource called %d times, want 2", len(*updates))
	}
	intro := (*updates)[0]
	if intro.Path != "guide/intro.md" || intro.Title != "Introduction" {
		t.Errorf("first update = %+v, want guide/intro.md titled Introduction", intro)
	}
	if intro.Hash != hashContent([]byte("# Introduction\n\nWelcome to the guide.")) {
		t.Errorf("Hash = %s, want sha256 of content", intro.Hash)
	}
	if len(intro.Chunks) != 1 || intro.Chunks[0].ID != "guide/intro.md:0" || intro.Chunks[0].Title != "Introduction" {
		t.Errorf("Chunks = %+v", intro.Chunks)
	}
	if intro.Embeddings != nil {
		t.Error("Embeddings should be nil without an embedder")
	}

	readme := (*updates)[1]
	if readme.Title != "Readme" || readme.Chunks[0].Title != "" {
		t.Errorf("readme update = %+v, want filename title and untitled chunk", readme)
	}
}

func TestPipeline_Run_SkipsUnchanged(t *testing.T) {
	root := t.TempDir()
	content := "# Same\n\nunchanged"
	writeDoc(t, root, "same.md", content)

	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	store.EXPECT().GetHash(gomock.Any(), "same.md").Return(hashContent([]byte(content)), nil)

	p := newTestPipeline(t, store)
	stats, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Skipped != 1 || stats.Processed != 0 {
		t.Errorf("Run() stats = %+v, want one skipped file", stats)
	}
}

func TestPipeline_Run_IsolatesFailures(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "bad.md", "# Bad")
	writeDoc(t, root, "good.md", "# Good\n\nfine")

	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	store.EXPECT().GetHash(gomock.Any(), "bad.md").Return("", errors.New("database is locked"))
	store.EXPECT().GetHash(gomock.Any(), "good.md").Return("", storage.ErrNotFound)
	updates := captureUpdates(store, nil)

	p := newTestPipeline(t, store)
	stats, err := p.Run(context.Background(), root)
	if err == nil || !strings.Contains(err.Error(), "indexing completed with 1 errors") {
		t.Fatalf("Run() error = %v, want summary of 1 error", err)
	}
	if stats.Failed != 1 || stats.Processed != 1 {
		t.Errorf("Run() stats = %+v", stats)
	}
	if len(*updates) != 1 || (*updates)[0].Path != "good.md" {
		t.Errorf("updates = %+v, want only good.md", *updates)
	}
}

func TestPipeline_Run_EmbedsInBatches(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "a.md", threeSections)

	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	embedder := indexer_mocks.NewMockEmbedder(ctrl)

	store.EXPECT().GetHash(gomock.Any(), "a.md").Return("", storage.ErrNotFound)
	updates := captureUpdates(store, nil)

	var mu sync.Mutex
	var batches [][]string
	embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, texts []string) ([][]float32, error) {
			mu.Lock()
			batches = append(batches, texts)
			mu.Unlock()
			out := make([][]float32, len(texts))
			for i, text := range texts {
				out[i] = []float32{float32(len(text))}
			}
			return out, nil
		}).Times(2)

	p := newTestPipeline(t, store, WithEmbedder(embedder), WithBatchSize(2), WithWorkers(2))
	if _, err := p.Run(context.Background(), root); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(batches) != 2 {
		t.Fatalf("EmbedTexts called %d times, want 2", len(batches))
	}
	sizes := len(batches[0]) + len(batches[1])
	if sizes != 3 {
		t.Errorf("embedded %d texts, want 3", sizes)
	}

	u := (*updates)[0]
	if len(u.Embeddings) != 3 {
		t.Fatalf("Embeddings = %v, want 3 vectors", u.Embeddings)
	}
	for i, c := range u.Chunks {
		if u.Embeddings[i][0] != float32(len(c.Content)) {
			t.Errorf("embedding %d = %v, not aligned with chunk %q", i, u.Embeddings[i], c.Content)
		}
	}
}

func TestPipeline_Run_EmbeddingFailureFailsFile(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "a.md", threeSections)

	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	embedder := indexer_mocks.NewMockEmbedder(ctrl)

	store.EXPECT().GetHash(gomock.Any(), "a.md").Return("", storage.ErrNotFound)
	embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return(nil, errors.New("model offline")).AnyTimes()

	p := newTestPipeline(t, store, WithEmbedder(embedder))
	stats, err := p.Run(context.Background(), root)
	if err == nil {
		t.Fatal("Run() expected error")
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}
}

func TestPipeline_Run_EmbeddingCountMismatch(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "a.md", threeSections)

	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	embedder := indexer_mocks.NewMockEmbedder(ctrl)

	store.EXPECT().GetHash(gomock.Any(), "a.md").Return("", storage.ErrNotFound)
	embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{{1}}, nil)

	p := newTestPipeline(t, store, WithEmbedder(embedder))
	if stats, err := p.Run(context.Background(), root); err == nil || stats.Failed != 1 {
		t.Errorf("Run() = %+v, %v; want one failed file", stats, err)
	}
}

func TestPipeline_Run_ExternalVectors(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "a.md", threeSections)

	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	embedder := indexer_mocks.NewMockEmbedder(ctrl)
	vectors := indexer_mocks.NewMockVectorSink(ctrl)

	newIDs := []string{"a.md:0", "a.md:1", "a.md:2"}
	vecs := [][]float32{{1}, {2}, {3}}

	store.EXPECT().GetHash(gomock.Any(), "a.md").Return("old", nil)
	embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"one", "two", "three"}).Return(vecs, nil)
	gomock.InOrder(
		vectors.EXPECT().UpsertChunks(gomock.Any(), "a.md", newIDs, vecs).Return(nil),
		store.EXPECT().ReplaceSource(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u storage.SourceUpdate) ([]string, error) {
				if u.Embeddings != nil {
					t.Error("Embeddings should not be written to SQLite with an external vector store")
				}
				return []string{"a.md:0", "a.md:1", "a.md:2", "a.md:3"}, nil
			}),
		vectors.EXPECT().DeleteChunks(gomock.Any(), []string{"a.md:3"}).Return(nil),
	)

	p := newTestPipeline(t, store, WithEmbedder(embedder), WithVectorStore(vectors))
	if _, err := p.Run(context.Background(), root); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestPipeline_Run_VectorUpsertFailureWritesNothing(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "a.md", "# A\n\none")

	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	embedder := indexer_mocks.NewMockEmbedder(ctrl)
	vectors := indexer_mocks.NewMockVectorSink(ctrl)

	store.EXPECT().GetHash(gomock.Any(), "a.md").Return("", storage.ErrNotFound)
	embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{{1}}, nil)
	vectors.EXPECT().UpsertChunks(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("qdrant down"))

	p := newTestPipeline(t, store, WithEmbedder(embedder), WithVectorStore(vectors))
	if stats, err := p.Run(context.Background(), root); err == nil || stats.Failed != 1 {
		t.Errorf("Run() = %+v, %v; want one failed file", stats, err)
	}
}

func TestPipeline_Run_Prune(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "kept.md", "# Kept")

	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	vectors := indexer_mocks.NewMockVectorSink(ctrl)

	store.EXPECT().GetHash(gomock.Any(), "kept.md").Return(hashContent([]byte("# Kept")), nil)
	store.EXPECT().ListPaths(gomock.Any()).Return([]string{"gone.md", "kept.md"}, nil)
	store.EXPECT().DeleteSource(gomock.Any(), "gone.md").Return([]string{"gone.md:0"}, nil)
	vectors.EXPECT().DeleteChunks(gomock.Any(), []string{"gone.md:0"}).Return(nil)

	p := newTestPipeline(t, store, WithPrune(true), WithVectorStore(vectors))
	stats, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Pruned != 1 || stats.Skipped != 1 {
		t.Errorf("Run() stats = %+v, want 1 pruned and 1 skipped", stats)
	}
}

func TestPipeline_Run_EmptyFileRecordsHash(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "empty.md", "   \n")

	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	store.EXPECT().GetHash(gomock.Any(), "empty.md").Return("", storage.ErrNotFound)
	updates := captureUpdates(store, nil)

	p := newTestPipeline(t, store)
	if _, err := p.Run(context.Background(), root); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(*updates) != 1 || len((*updates)[0].Chunks) != 0 || (*updates)[0].Hash == "" {
		t.Errorf("updates = %+v, want one update with no chunks and a hash", *updates)
	}
}

func TestPipeline_Run_InProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)

	p := newTestPipeline(t, store)
	p.running.Lock()
	defer p.running.Unlock()

	if _, err := p.Run(context.Background(), t.TempDir()); !errors.Is(err, ErrIndexInProgress) {
		t.Errorf("Run() error = %v, want ErrIndexInProgress", err)
	}
}

func TestPipeline_Start(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "same.md", "# Same")

	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	store.EXPECT().GetHash(gomock.Any(), "same.md").Return(hashContent([]byte("# Same")), nil)

	p := newTestPipeline(t, store)

	type outcome struct {
		stats *RunStats
		err   error
	}
	done := make(chan outcome, 1)
	if err := p.Start(context.Background(), root, func(stats *RunStats, err error) {
		done <- outcome{stats, err}
	}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	got := <-done
	if got.err != nil || got.stats.Skipped != 1 {
		t.Errorf("Start() outcome = %+v, %v; want one skipped file", got.stats, got.err)
	}
}

func TestPipeline_Start_InProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)

	p := newTestPipeline(t, store)
	p.running.Lock()
	defer p.running.Unlock()

	if err := p.Start(context.Background(), t.TempDir(), nil); !errors.Is(err, ErrIndexInProgress) {
		t.Errorf("Start() error = %v, want ErrIndexInProgress", err)
	}
}

func TestPipeline_Run_ReportsProgress(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "a.md", "# A")
	writeDoc(t, root, "b.md", "# B")

	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)
	store.EXPECT().GetHash(gomock.Any(), gomock.Any()).Return("", storage.ErrNotFound).Times(2)
	captureUpdates(store, nil)

	var reports []Progress
	p := newTestPipeline(t, store, WithProgress(func(pr Progress) {
		reports = append(reports, pr)
	}))
	if _, err := p.Run(context.Background(), root); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(reports) == 0 {
		t.Fatal("no progress reported")
	}
	last := reports[len(reports)-1]
	if !last.Done || last.Completed != 2 || last.Processed != 2 {
		t.Errorf("last progress = %+v, want done with 2 processed", last)
	}
}

func TestPipeline_Run_MissingRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockSourceStore(ctrl)

	p := newTestPipeline(t, store)
	if _, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Run() expected error for missing root")
	}
}

func TestStaleIDs(t *testing.T) {
	got := staleIDs([]string{"a:0", "a:1", "a:2"}, []string{"a:0"})
	if len(got) != 2 || got[0] != "a:1" || got[1] != "a:2" {
		t.Errorf("staleIDs() = %v, want [a:1 a:2]", got)
	}
	if got := staleIDs(nil, []string{"a:0"}); got != nil {
		t.Errorf("staleIDs(nil) = %v, want nil", got)
	}
}
