package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docs-mcp/internal/config"
	"docs-mcp/internal/storage"
)

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List databases in the data directory",
	Args:  cobra.NoArgs,
	RunE:  runDatabases,
}

func init() {
	rootCmd.AddCommand(databasesCmd)
}

func runDatabases(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	paths, err := config.ListDatabases()
	if err != nil {
		return fmt.Errorf("failed to list databases: %w", err)
	}
	if len(paths) == 0 {
		fmt.Fprintf(out, "No databases found in %s\n", config.DataDir())
		return nil
	}

	fmt.Fprintln(out, headerStyle.Render("Databases in "+config.DataDir()))
	for _, p := range paths {
		size := ""
		if info, err := os.Stat(p); err == nil {
			size = mutedStyle.Render(fmt.Sprintf("(%.1f MB)", float64(info.Size())/(1024*1024)))
		}
		fmt.Fprintf(out, "  %s %s\n", sourceStyle.Render(storage.DatabaseName(p)), size)
	}
	return nil
}
