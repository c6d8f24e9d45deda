package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"papergraph/internal/util"
	"papergraph/pkg/ai"
	oai "papergraph/pkg/ai/ollama"
	gai "papergraph/pkg/ai/openai"
	"papergraph/pkg/extract"
	"papergraph/pkg/graph"
	"papergraph/pkg/loader/pdf"
	"papergraph/pkg/logger"
	"papergraph/pkg/logger/console"
	"papergraph/pkg/metadata"
	neo4jstore "papergraph/pkg/store/neo4j"
)

func main() {
	reset := flag.Bool("reset", false, "wipe the graph before ingesting")
	flag.Parse()

	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	datasetDir := util.GetEnvString("DATASET_DIR", "arxiv_dataset")
	pdfDir := filepath.Join(datasetDir, "pdf")
	metadataFile := util.GetEnvString("METADATA_FILE",
		filepath.Join(datasetDir, "arxiv-metadata-oai-snapshot.json"))

	if info, err := os.Stat(pdfDir); err != nil || !info.IsDir() {
		logger.Fatal("[Ingest] PDF directory not found, is the dataset downloaded?", "dir", pdfDir)
	}
	if _, err := os.Stat(metadataFile); err != nil {
		logger.Fatal("[Ingest] Metadata file not found, is the dataset downloaded?", "file", metadataFile)
	}

	// AI client
	adapter := util.GetEnv("AI_ADAPTER")
	var aiClient ai.PaperAIClient

	switch adapter {
	case "ollama":
		client, err := oai.NewPaperOllamaClient(oai.NewPaperOllamaClientParams{
			ExtractionModel: util.GetEnvString("OPENROUTER_MODEL", "mistralai/mixtral-8x7b-instruct"),

			BaseURL: util.GetEnv("OPENROUTER_BASE_URL"),
			ApiKey:  util.GetEnv("OPENROUTER_API_KEY"),
		})
		if err != nil {
			logger.Fatal("Could not create Ollama client", "err", err)
		}
		aiClient = client
	default:
		apiKey := util.GetEnv("OPENROUTER_API_KEY")
		if apiKey == "" {
			logger.Fatal("OPENROUTER_API_KEY environment variable not set")
		}
		aiClient = gai.NewPaperOpenAIClient(gai.NewPaperOpenAIClientParams{
			ExtractionModel: util.GetEnvString("OPENROUTER_MODEL", "mistralai/mixtral-8x7b-instruct"),

			ChatURL: util.GetEnvString("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			ChatKey: apiKey,
		})
	}

	// Graph store
	graphStore, err := neo4jstore.NewGraphStorage(ctx, neo4jstore.NewGraphStorageParams{
		URI:      util.GetEnvString("NEO4J_URI", "bolt://localhost:7687"),
		Username: util.GetEnvString("NEO4J_USERNAME", "neo4j"),
		Password: util.GetEnvString("NEO4J_PASSWORD", "password"),
	})
	if err != nil {
		logger.Fatal("Failed to connect to graph database", "err", err)
	}
	defer graphStore.Close(context.Background())

	if *reset || util.GetEnvBool("GRAPH_RESET", false) {
		logger.Warn("[Ingest] Wiping graph before ingestion")
		if err := graphStore.Reset(ctx); err != nil {
			logger.Fatal("Failed to reset graph", "err", err)
		}
	}
	if err := graphStore.EnsureConstraints(ctx); err != nil {
		logger.Fatal("Failed to create graph constraints", "err", err)
	}

	logger.Info("[Ingest] Loading metadata", "file", metadataFile)
	table, err := metadata.Load(metadataFile)
	if err != nil {
		logger.Fatal("Failed to load metadata", "err", err)
	}
	logger.Info("[Ingest] Metadata loaded", "records", table.Len(), "skipped", table.Skipped())

	pipeline := graph.NewPipeline(graph.PipelineParams{
		Store:    graphStore,
		Texts:    &pdf.Extractor{},
		Facts:    extract.NewClient(aiClient, extract.ClientParams{}),
		Metadata: table,

		PDFDir: pdfDir,
		Limit:  util.GetEnvInt("PROCESSING_LIMIT", 100),
		Pause:  time.Duration(util.GetEnvInt("PAUSE_MS", 100)) * time.Millisecond,
	})

	stats, err := pipeline.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Ingestion run failed", "err", err)
	}

	metrics := aiClient.GetMetrics()
	logger.Info("[Ingest] Model usage",
		"input_tokens", metrics.InputTokens,
		"output_tokens", metrics.OutputTokens,
		"total_tokens", metrics.TotalTokens,
		"duration_ms", metrics.DurationMs,
	)
	logger.Info("[Ingest] Done", "processed", stats.Processed, "skipped", stats.Skipped)
}
