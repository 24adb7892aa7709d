package cli

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"docs-mcp/internal/config"
	"docs-mcp/internal/http"
	"docs-mcp/internal/indexer"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Serve search and document lookups over HTTP.

With --docs the tree is indexed on startup and can be re-indexed through
POST /api/v1/index. --schedule re-indexes it on a cron schedule, for example
"@hourly" or "*/30 * * * *".`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().String("port", "", "HTTP port (default from API_PORT)")
	apiCmd.Flags().String("docs", "", "docs directory to index and re-index (default from DOCS_ROOT)")
	apiCmd.Flags().String("schedule", "", "cron schedule for re-indexing (default from REINDEX_SCHEDULE)")
	rootCmd.AddCommand(apiCmd)
}

// stringFlag returns the flag value when set, otherwise fallback.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
		return v
	}
	return fallback
}

// scheduleReindex registers a cron job running the pipeline over root.
// Runs that overlap an active one are skipped.
func scheduleReindex(ctx context.Context, schedule, root string, pipeline *indexer.Pipeline) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		logger.InfoContext(ctx, "scheduled re-indexing started", "root", root)
		stats, err := pipeline.Run(ctx, root)
		switch {
		case errors.Is(err, indexer.ErrIndexInProgress):
			logger.InfoContext(ctx, "scheduled re-indexing skipped, a run is already active")
		case err != nil:
			logger.ErrorContext(ctx, "scheduled re-indexing completed with errors", "error", err)
		default:
			logger.InfoContext(ctx, "scheduled re-indexing completed", "processed", stats.Processed, "skipped", stats.Skipped)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	return c, nil
}

func runAPI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	port := stringFlag(cmd, "port", cfg.APIPort)
	root := stringFlag(cmd, "docs", cfg.DocsRoot)
	schedule := stringFlag(cmd, "schedule", cfg.ReindexSchedule)

	if schedule != "" && root == "" {
		return errors.New("--schedule requires a docs directory (--docs or DOCS_ROOT)")
	}

	var (
		dbPath string
		err    error
	)
	if root == "" {
		if dbPath, err = existingDB(cfg); err != nil {
			return err
		}
	} else {
		dbPath = config.ResolveDBPath(cfg.DBPath)
	}

	rt, err := openRuntime(ctx, cfg, dbPath, cfg.Embedding.Enabled(), root != "", logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	deps := &http.Deps{
		Search:   rt.engine,
		Chunks:   rt.chunks,
		Sources:  rt.sources,
		DocsRoot: root,
		Logger:   logger,
	}

	if root != "" {
		pipeline, err := rt.newPipeline(cfg, cfg.ChunkSize, cfg.ChunkOverlap, indexer.WithLogger(logger))
		if err != nil {
			return err
		}
		defer pipeline.Release()
		deps.Reindexer = pipeline

		if err := pipeline.Start(ctx, root, func(stats *indexer.RunStats, err error) {
			if err != nil {
				logger.ErrorContext(ctx, "startup indexing completed with errors", "error", err)
				return
			}
			logger.InfoContext(ctx, "startup indexing completed", "processed", stats.Processed, "skipped", stats.Skipped)
		}); err != nil {
			return err
		}
		logger.InfoContext(ctx, "starting background indexing", "root", root)

		if schedule != "" {
			c, err := scheduleReindex(ctx, schedule, root, pipeline)
			if err != nil {
				return err
			}
			c.Start()
			defer c.Stop()
			logger.InfoContext(ctx, "re-indexing scheduled", "schedule", schedule)
		}
	}

	server := &nethttp.Server{
		Addr:              ":" + port,
		Handler:           http.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.InfoContext(ctx, "starting API server", "addr", server.Addr, "database", dbPath)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return fmt.Errorf("API server failed: %w", err)
	}
	return nil
}
