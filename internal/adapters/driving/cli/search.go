package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

const snippetLength = 160

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents by meaning",
	Long: `Embeds the query and ranks every stored chunk by cosine similarity.
Results come back in descending similarity order.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searcher == nil {
		return errors.New("search service not configured")
	}

	results, err := searcher.Search(context.Background(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	if results == nil {
		results = []domain.SearchResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, result := range results {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, result.Filename, result.Similarity)
		cmd.Printf("      %s\n", snippet(result.Content))
	}
	return nil
}

// snippet collapses whitespace and truncates long chunk text for
// table display.
func snippet(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	if len(content) > snippetLength {
		content = content[:snippetLength] + "..."
	}
	return content
}
