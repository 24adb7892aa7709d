package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"docs-mcp/internal/chunking"
	"docs-mcp/internal/config"
	"docs-mcp/internal/indexer"
	"docs-mcp/internal/watcher"
)

var (
	indexChunkSize      int
	indexChunkOverlap   int
	indexNoEmbeddings   bool
	indexEmbeddingModel string
	indexPrune          bool
	indexWatch          bool
	indexVerbose        bool
)

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Index a directory of markdown documentation",
	Long: `Scans dir recursively for .md files, splits them into overlapping chunks at
heading, paragraph and sentence boundaries and stores them for keyword and
semantic search. Unchanged files are skipped on later runs.

dir defaults to DOCS_ROOT.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().IntVar(&indexChunkSize, "chunk-size", 0, "maximum chunk size in characters (default from CHUNK_SIZE)")
	indexCmd.Flags().IntVar(&indexChunkOverlap, "chunk-overlap", 0, "characters carried over between chunks (default from CHUNK_OVERLAP)")
	indexCmd.Flags().BoolVar(&indexNoEmbeddings, "no-embeddings", false, "build the keyword index only")
	indexCmd.Flags().StringVar(&indexEmbeddingModel, "embedding-model", "", "embedding model name (default from EMBEDDING_MODEL_NAME)")
	indexCmd.Flags().BoolVar(&indexPrune, "prune", false, "remove indexed sources that no longer exist on disk")
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "keep running and re-index when files change")
	indexCmd.Flags().BoolVarP(&indexVerbose, "verbose", "v", false, "log every indexed file")
	rootCmd.AddCommand(indexCmd)
}

func newChunker(size, overlap int) (*chunking.Chunker, error) {
	chunker, err := chunking.NewChunker(size, overlap)
	if err != nil {
		return nil, fmt.Errorf("invalid chunk settings: %w", err)
	}
	return chunker, nil
}

// indexSettings resolves the docs root and chunk parameters from args, flags and config.
func indexSettings(cmd *cobra.Command, args []string, c *config.Config) (root string, size, overlap int, err error) {
	root = c.DocsRoot
	if len(args) == 1 {
		root = args[0]
	}
	if root == "" {
		return "", 0, 0, errors.New("no docs directory given (pass one or set DOCS_ROOT)")
	}

	size, overlap = c.ChunkSize, c.ChunkOverlap
	if cmd.Flags().Changed("chunk-size") {
		size = indexChunkSize
	}
	if cmd.Flags().Changed("chunk-overlap") {
		overlap = indexChunkOverlap
	}
	return root, size, overlap, nil
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	root, size, overlap, err := indexSettings(cmd, args, cfg)
	if err != nil {
		return err
	}
	if indexEmbeddingModel != "" {
		cfg.Embedding.ModelName = indexEmbeddingModel
	}

	log := logger
	if indexVerbose {
		if log, err = newLogger(cmd.ErrOrStderr(), "debug", cfg.LogFormat); err != nil {
			return err
		}
	}

	dbPath := config.ResolveDBPath(cfg.DBPath)
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	withEmbeddings := !indexNoEmbeddings && cfg.Embedding.Enabled()
	rt, err := openRuntime(ctx, cfg, dbPath, withEmbeddings, true, log)
	if err != nil {
		return err
	}
	defer rt.Close()

	progressOut := cmd.ErrOrStderr()
	pipeline, err := rt.newPipeline(cfg, size, overlap,
		indexer.WithPrune(indexPrune),
		indexer.WithLogger(log),
		indexer.WithProgress(func(p indexer.Progress) {
			printProgress(progressOut, p)
		}),
	)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	cmd.Println(headerStyle.Render("Indexing " + root))
	cmd.Println(mutedStyle.Render(fmt.Sprintf("database %s, chunk size %d, overlap %d, embeddings %v",
		dbPath, size, overlap, withEmbeddings)))

	stats, runErr := pipeline.Run(ctx, root)
	if stats != nil {
		printSummary(cmd.OutOrStdout(), stats)
	}

	if !indexWatch {
		return runErr
	}
	if runErr != nil {
		log.WarnContext(ctx, "initial indexing finished with errors", "error", runErr)
	}

	return watchAndReindex(ctx, cmd.OutOrStdout(), root, pipeline)
}

// watchAndReindex re-runs the pipeline whenever the tree under root changes,
// until ctx is cancelled.
func watchAndReindex(ctx context.Context, out io.Writer, root string, pipeline *indexer.Pipeline) error {
	w, err := watcher.New(root, func(ctx context.Context) {
		stats, err := pipeline.Run(ctx, root)
		if errors.Is(err, indexer.ErrIndexInProgress) {
			return
		}
		if stats != nil {
			printSummary(out, stats)
		}
		if err != nil {
			logger.ErrorContext(ctx, "re-indexing completed with errors", "error", err)
		}
	}, watcher.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	fmt.Fprintln(out, mutedStyle.Render("Watching "+root+" for changes (Ctrl+C to stop)"))
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// formatProgress renders one progress line.
func formatProgress(p indexer.Progress) string {
	eta := "unknown"
	if p.ETA >= 0 {
		eta = p.ETA.Round(time.Second).String()
	}
	return fmt.Sprintf("[%d/%d] %.1f%% processed=%d skipped=%d failed=%d elapsed=%s eta=%s",
		p.Completed, p.Total, p.Percent(), p.Processed, p.Skipped, p.Failed,
		p.Elapsed.Round(time.Second), eta)
}

func printProgress(w io.Writer, p indexer.Progress) {
	fmt.Fprintln(w, mutedStyle.Render(formatProgress(p)))
}

func printSummary(w io.Writer, s *indexer.RunStats) {
	line := fmt.Sprintf("Indexed %d files (%d processed, %d skipped, %d failed), %d chunks, %d pruned in %s",
		s.Found, s.Processed, s.Skipped, s.Failed, s.Chunks, s.Pruned, s.Duration.Round(time.Millisecond))
	if s.Failed > 0 {
		fmt.Fprintln(w, warningStyle.Render(line))
		return
	}
	fmt.Fprintln(w, successStyle.Render(line))
}
