// Package cli implements the docs-mcp command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"docs-mcp/internal/config"
)

var (
	configPath string
	dbFlag     string
	logLevel   string
	logFormat  string

	// Populated by loadSettings before any command runs.
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docs-mcp",
	Short: "Index and search markdown documentation",
	Long: `docs-mcp indexes a tree of markdown documentation into a SQLite database
and serves hybrid keyword + semantic search over it, as an MCP server for AI
assistants or as a REST API.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "database path or name in the data directory (default from DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadSettings loads the configuration, applies persistent flag overrides and
// installs the logger. Logs go to stderr because stdout carries MCP traffic.
func loadSettings(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if dbFlag != "" {
		loaded.DBPath = dbFlag
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if logFormat != "" {
		loaded.LogFormat = logFormat
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	l, err := newLogger(cmd.ErrOrStderr(), loaded.LogLevel, loaded.LogFormat)
	if err != nil {
		return err
	}

	cfg = loaded
	logger = l
	slog.SetDefault(logger)
	logger.Debug("logging configured", "level", cfg.LogLevel, "format", cfg.LogFormat)
	return nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := config.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}
