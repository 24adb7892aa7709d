package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docs-mcp/internal/config"
	"docs-mcp/internal/mcp"
	"docs-mcp/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server over an indexed database.

By default the server communicates over stdio using JSON-RPC, for use with
MCP-compatible AI assistants. Use --port to serve streamable HTTP instead.

Examples:
  # Stdio mode (default)
  docs-mcp serve --db comsol.db

  # HTTP mode
  docs-mcp serve --db comsol.db --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "docs": {
        "command": "/path/to/docs-mcp",
        "args": ["serve", "--db", "comsol.db"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveCmd)
}

// existingDB resolves the configured database and fails when it does not exist.
func existingDB(c *config.Config) (string, error) {
	dbPath := config.ResolveDBPath(c.DBPath)
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("database not found: %s (run 'docs-mcp index' first)", dbPath)
		}
		return "", fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	return dbPath, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	dbPath, err := existingDB(cfg)
	if err != nil {
		return err
	}

	rt, err := openRuntime(ctx, cfg, dbPath, cfg.Embedding.Enabled(), false, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	server, err := mcp.NewServer(&mcp.Ports{
		Search:       rt.engine,
		Chunks:       rt.chunks,
		Sources:      rt.sources,
		DatabaseName: storage.DatabaseName(dbPath),
	}, mcp.WithLogger(logger))
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
