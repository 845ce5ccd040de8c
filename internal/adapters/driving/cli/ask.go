package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question grounded in the indexed documents",
	Long: `Retrieves the most relevant chunks for the question and generates an
answer with the configured LLM, citing the source documents.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if searcher == nil {
		return errors.New("search service not configured")
	}

	answer, err := searcher.Ask(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return errors.New("no LLM configured: set llm.model in config and ensure Ollama is running")
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Response)
	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		seen := make(map[string]bool)
		for _, src := range answer.Sources {
			if seen[src.Filename] {
				continue
			}
			seen[src.Filename] = true
			cmd.Printf("  - %s (%.3f)\n", src.Filename, src.Similarity)
		}
	}
	return nil
}
