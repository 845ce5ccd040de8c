// Command docdex is the entry point for the docdex CLI. It wires the
// concrete adapters into the core services and hands control to the
// cobra command tree.
package main

import (
	"fmt"
	"os"
	"time"

	configfile "github.com/custodia-labs/docdex-cli/internal/adapters/driven/config/file"
	embeddingfallback "github.com/custodia-labs/docdex-cli/internal/adapters/driven/embedding/fallback"
	embeddingollama "github.com/custodia-labs/docdex-cli/internal/adapters/driven/embedding/ollama"
	embeddingopenai "github.com/custodia-labs/docdex-cli/internal/adapters/driven/embedding/openai"
	llmollama "github.com/custodia-labs/docdex-cli/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docdex-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docdex-cli/internal/chunker"
	"github.com/custodia-labs/docdex-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/core/services"
	"github.com/custodia-labs/docdex-cli/internal/extractors"
	"github.com/custodia-labs/docdex-cli/internal/extractors/docx"
	"github.com/custodia-labs/docdex-cli/internal/extractors/msdoc"
	"github.com/custodia-labs/docdex-cli/internal/extractors/pdf"
)

// version is injected at build time via
// -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer store.Close()

	embedder, err := buildEmbedder(configStore)
	if err != nil {
		return err
	}
	defer embedder.Close()

	llm := llmollama.NewLLMService(llmollama.Config{
		BaseURL: configStore.GetString(configfile.KeyEmbeddingBaseURL),
		Model:   configStore.GetString(configfile.KeyLLMModel),
	})
	defer llm.Close()

	registry := extractors.NewRegistry(pdf.New(), docx.New(), msdoc.New())

	textChunker := chunker.New(
		chunker.WithChunkSize(configStore.GetInt(configfile.KeyChunkSize)),
		chunker.WithOverlap(configStore.GetInt(configfile.KeyChunkOverlap)),
	)

	searchService := services.NewSearchService(store, embedder, llm)
	documentService := services.NewDocumentService(store)

	// The folder connector and ingest pipeline only exist once a
	// folder is configured; other commands work without one.
	var source driven.FileSource
	var ingestService *services.IngestService
	if folder := configStore.GetString(configfile.KeyFolderPath); folder != "" {
		connector := filesystem.New(folder)
		defer connector.Close()
		source = connector
		ingestService = services.NewIngestService(source, registry, textChunker, embedder, store)
	}

	cli.SetVersion(version)
	if ingestService != nil {
		cli.SetServices(ingestService, searchService, documentService, source, configStore)
	} else {
		cli.SetServices(nil, searchService, documentService, nil, configStore)
	}

	return cli.Execute()
}

// buildEmbedder selects the embedding backend from config and wraps it
// with the degraded-mode fallback.
func buildEmbedder(configStore driven.ConfigStore) (driven.EmbeddingService, error) {
	var inner driven.EmbeddingService

	switch provider := configStore.GetString(configfile.KeyEmbeddingProvider); provider {
	case "openai":
		svc, err := embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			APIKey: configStore.GetString(configfile.KeyEmbeddingAPIKey),
			Model:  configStore.GetString(configfile.KeyEmbeddingModel),
		})
		if err != nil {
			return nil, fmt.Errorf("configure openai embeddings: %w", err)
		}
		inner = svc
	case "", "ollama":
		inner = embeddingollama.NewEmbeddingService(embeddingollama.Config{
			BaseURL: configStore.GetString(configfile.KeyEmbeddingBaseURL),
			Model:   configStore.GetString(configfile.KeyEmbeddingModel),
			Timeout: 30 * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}

	return embeddingfallback.Wrap(inner), nil
}
