// Package cli provides the docdex command line interface. Commands
// hold no business logic; they call the driving ports wired in by the
// composition root via SetServices.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root.
var (
	ingestor        driving.Ingestor
	searcher        driving.Searcher
	documentService driving.DocumentService
	fileSource      driven.FileSource
	configStore     driven.ConfigStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "docdex",
	Short: "Semantic search over a folder of documents",
	Long: `Docdex indexes the PDF, DOC and DOCX files in a watched folder and
makes them searchable by meaning. Documents are chunked, embedded and
stored locally in SQLite; retrieval ranks every chunk by cosine
similarity to the query.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the service implementations. Must be called
// before Execute.
func SetServices(
	ing driving.Ingestor,
	search driving.Searcher,
	docs driving.DocumentService,
	source driven.FileSource,
	config driven.ConfigStore,
) {
	ingestor = ing
	searcher = search
	documentService = docs
	fileSource = source
	configStore = config
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
