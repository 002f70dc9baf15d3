// Package cli provides the cobra command-line interface for Inkwell.
// Commands share a set of package-level services wired from the config
// store before the first command runs.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackink-studio/inkwell/internal/adapters/driven/config/file"
	"github.com/blackink-studio/inkwell/internal/adapters/driven/embedding/failsoft"
	ollamaembed "github.com/blackink-studio/inkwell/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/blackink-studio/inkwell/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/blackink-studio/inkwell/internal/adapters/driven/llm/ollama"
	openaillm "github.com/blackink-studio/inkwell/internal/adapters/driven/llm/openai"
	"github.com/blackink-studio/inkwell/internal/adapters/driven/memorystore/mem0"
	"github.com/blackink-studio/inkwell/internal/adapters/driven/memorystore/sqlite"
	filesource "github.com/blackink-studio/inkwell/internal/adapters/driven/source/file"
	"github.com/blackink-studio/inkwell/internal/adapters/driven/source/fixture"
	memorystore "github.com/blackink-studio/inkwell/internal/adapters/driven/vectorstore/memory"
	"github.com/blackink-studio/inkwell/internal/adapters/driven/vectorstore/pinecone"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
	"github.com/blackink-studio/inkwell/internal/core/services"
	"github.com/blackink-studio/inkwell/internal/logger"
	"github.com/blackink-studio/inkwell/internal/postprocessors"
)

var version = "0.1.0"

// Shared services, wired by bootstrap before any command runs.
var (
	configStore   driven.ConfigStore
	promptStore   driven.PromptStore
	chatService   *services.ChatOrchestrator
	retrieverSvc  *services.RetrievalService
	ingestService *services.IngestOrchestrator
	docSource     driven.DocumentSource
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Customer assistant for the Black Ink tattoo studio",
	Long: `Inkwell is a retrieval-augmented customer assistant for the
Black Ink tattoo studio. It routes client messages to specialised agents,
answers from an ingested knowledge base, and remembers returning clients.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute wires the services from configuration and runs the root command.
// A wiring failure is reported but does not abort; commands that need the
// missing services explain what is not configured.
func Execute() {
	if err := bootstrap(); err != nil {
		logger.Warn("configuration error: %v", err)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap wires the adapters selected by configuration into the core
// services. Missing provider configuration leaves the corresponding
// service nil; commands report what is missing.
func bootstrap() error {
	var err error
	configStore, err = file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	promptStore, err = file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	return wireServices()
}

// wireServices builds the adapters selected by the config store and
// assembles the core services. The embedder is wrapped fail-soft once and
// shared by retrieval and ingestion, so a provider failure degrades a query
// to keyword ranking instead of failing the turn.
func wireServices() error {
	embedder, err := buildEmbedder()
	if err != nil {
		return err
	}
	llm, err := buildLLM()
	if err != nil {
		return err
	}
	vectors, err := buildVectorStore()
	if err != nil {
		return err
	}
	memStore, err := buildMemoryStore()
	if err != nil {
		return err
	}
	docSource, err = buildSource()
	if err != nil {
		return err
	}

	if embedder != nil && vectors != nil {
		softEmbedder := failsoft.Wrap(embedder)
		retrieverSvc = services.NewRetrievalService(softEmbedder, vectors)

		registry := postprocessors.NewRegistry()
		postprocessors.RegisterDefaults(registry)
		chunkCfg := map[string]any{}
		if size := configStore.GetInt("chunker.chunk_size"); size > 0 {
			chunkCfg["chunk_size"] = size
		}
		if overlap := configStore.GetInt("chunker.overlap"); overlap > 0 {
			chunkCfg["overlap"] = overlap
		}
		chunk, err := registry.Build("chunker", chunkCfg)
		if err != nil {
			return fmt.Errorf("building chunker: %w", err)
		}
		pipeline := postprocessors.NewPipeline(chunk)

		ingestService = services.NewIngestOrchestrator(docSource, pipeline, softEmbedder, vectors)
	}

	if llm != nil {
		memoryService := services.NewClientMemoryService(memStore, llm)
		memoryService.SetPromptStore(promptStore)

		router := services.NewIntentRouter(llm)
		router.SetPromptStore(promptStore)

		if retrieverSvc != nil {
			chatService = services.NewChatOrchestrator(router, retrieverSvc, memoryService, llm)
			chatService.SetPromptStore(promptStore)
		}
	}

	return nil
}

// secret returns the configured value for key, falling back to the
// environment variable when the config file has none.
func secret(key, envVar string) string {
	if v := configStore.GetString(key); v != "" {
		return v
	}
	return os.Getenv(envVar)
}

func buildEmbedder() (driven.EmbeddingService, error) {
	switch provider := configStore.GetString("embedding.provider"); provider {
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  secret("embedding.api_key", "OPENAI_API_KEY"),
			BaseURL: configStore.GetString("embedding.base_url"),
			Model:   configStore.GetString("embedding.model"),
		})
	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: configStore.GetString("embedding.base_url"),
			Model:   configStore.GetString("embedding.model"),
		}), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

func buildLLM() (driven.LLMService, error) {
	switch provider := configStore.GetString("llm.provider"); provider {
	case "openai":
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  secret("llm.api_key", "OPENAI_API_KEY"),
			BaseURL: configStore.GetString("llm.base_url"),
			Model:   configStore.GetString("llm.model"),
		})
	case "ollama":
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: configStore.GetString("llm.base_url"),
			Model:   configStore.GetString("llm.model"),
		}), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}

func buildVectorStore() (driven.VectorStore, error) {
	switch provider := configStore.GetString("vectorstore.provider"); provider {
	case "pinecone":
		return pinecone.NewStore(pinecone.Config{
			APIKey:    secret("vectorstore.api_key", "PINECONE_API_KEY"),
			Host:      configStore.GetString("vectorstore.host"),
			Namespace: configStore.GetString("vectorstore.namespace"),
		})
	case "memory", "":
		// In-process store for local development and tests.
		return memorystore.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown vector store provider %q", provider)
	}
}

func buildMemoryStore() (driven.MemoryStore, error) {
	switch backend := configStore.GetString("memory.backend"); backend {
	case "mem0":
		return mem0.NewStore(mem0.Config{
			APIKey:  secret("memory.api_key", "MEM0_API_KEY"),
			BaseURL: configStore.GetString("memory.base_url"),
		})
	case "sqlite":
		return sqlite.NewStore(configStore.GetString("memory.data_dir"))
	case "":
		// Client memory disabled; chat degrades to anonymous turns.
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown memory backend %q", backend)
	}
}

func buildSource() (driven.DocumentSource, error) {
	switch kind := configStore.GetString("source.type"); kind {
	case "file":
		return filesource.NewSource(configStore.GetString("source.dir"))
	case "fixture", "":
		return fixture.NewSource(), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", kind)
	}
}
