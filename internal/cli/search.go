package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"docs-mcp/internal/search"
)

const previewLength = 200

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search an indexed database from the terminal",
	Long: `Run a single search against the database and print the results.

Useful for checking an index before wiring it into an assistant.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntP("limit", "n", search.DefaultLimit, "maximum number of results")
	searchCmd.Flags().String("mode", string(search.ModeHybrid), "search mode: hybrid, semantic or keyword")
	searchCmd.Flags().String("source", "", "only return results whose source path contains this")
	searchCmd.Flags().Bool("json", false, "print results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	limit, _ := cmd.Flags().GetInt("limit")
	modeFlag, _ := cmd.Flags().GetString("mode")
	source, _ := cmd.Flags().GetString("source")
	asJSON, _ := cmd.Flags().GetBool("json")

	mode, err := search.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	dbPath, err := existingDB(cfg)
	if err != nil {
		return err
	}

	withEmbeddings := cfg.Embedding.Enabled() && mode != search.ModeKeyword
	rt, err := openRuntime(ctx, cfg, dbPath, withEmbeddings, false, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	results, err := rt.engine.SearchDocs(ctx, search.Request{
		Query:        args[0],
		Limit:        limit,
		Mode:         mode,
		SourceFilter: source,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeResultsJSON(out, results)
	}
	printResults(out, args[0], results)
	return nil
}

func writeResultsJSON(w io.Writer, results []search.Result) error {
	if results == nil {
		results = []search.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func printResults(w io.Writer, query string, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No results found."))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d results for %q", len(results), query)))
	for n, r := range results {
		fmt.Fprintf(w, "\n%d. %s %s\n", n+1,
			scoreStyle.Render(fmt.Sprintf("[%.4f]", r.Score)),
			sourceStyle.Render(r.Source))
		if r.Title != "" {
			fmt.Fprintf(w, "   %s\n", r.Title)
		}
		fmt.Fprintf(w, "   %s\n", mutedStyle.Render(preview(r.Content, previewLength)))
	}
}

// preview flattens whitespace and truncates s to at most n runes.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
