package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/phuslu/log"

	answergemini "pdfrag/internal/answerer/gemini"
	"pdfrag/internal/chunker"
	"pdfrag/internal/config"
	"pdfrag/internal/domain"
	embedgemini "pdfrag/internal/embedding/gemini"
	"pdfrag/internal/embedding/openai"
	"pdfrag/internal/embedding/tfidf"
	extractorpdf "pdfrag/internal/extractor/pdf"
	"pdfrag/internal/service"
	"pdfrag/internal/summarizer"
	"pdfrag/internal/tui"
	"pdfrag/internal/vectorstore"
	"pdfrag/internal/vectorstore/memory"
	"pdfrag/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath     string
		pdfPath     string
		collection  string
		query       string
		topK        int
		interactive bool
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/pdfrag/config.yaml if not provided)")
	flag.StringVar(&pdfPath, "pdf", "", "Path to a PDF file to ingest")
	flag.StringVar(&collection, "collection", "", "Collection name (defaults to the PDF file stem)")
	flag.StringVar(&query, "query", "", "One-shot question to answer")
	flag.IntVar(&topK, "k", 0, "Number of chunks to retrieve (default from config)")
	flag.BoolVar(&interactive, "interactive", false, "Start an interactive chat after ingestion")
	flag.Parse()

	if pdfPath == "" && collection == "" {
		fmt.Println("Usage: pdfrag [--config=config.yaml] --pdf document.pdf [--query \"...\"] [--interactive]")
		fmt.Println("       pdfrag --collection name --query \"...\"")
		os.Exit(1)
	}

	logger := &log.Logger{
		Level:  log.InfoLevel,
		Writer: &log.ConsoleWriter{ColorOutput: true},
	}
	if interactive {
		// Keep the terminal to the TUI.
		logger.Level = log.WarnLevel
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if topK <= 0 {
		topK = cfg.Retrieval.TopK
	}

	// Assemble components
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.NewEmbedder()
	case "gemini":
		gcfg := cfg.Embedder.Gemini
		if gcfg == nil {
			gcfg = &config.GeminiEmbedderConfig{}
		}
		client, err := embedgemini.NewEmbedder(embedgemini.Config{
			APIKeyEnv: gcfg.APIKeyEnv,
			Model:     gcfg.Model,
			Dimension: gcfg.Dimension,
			Timeout:   time.Duration(gcfg.TimeoutSecs) * time.Second,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini embedder init failed")
		}
		emb = client
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			logger.Fatal().Msg("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("openai embedder init failed")
		}
		emb = client
	default:
		logger.Fatal().Str("type", cfg.Embedder.Type).Msg("unknown embedder")
	}

	var ch domain.Chunker
	switch cfg.Chunker.Type {
	case "size", "":
		ch, err = chunker.NewSizeChunker(cfg.Chunker.ChunkSize, *cfg.Chunker.Overlap)
	case "sentence":
		ch, err = chunker.NewSentenceChunker(cfg.Chunker.MaxSentences, cfg.Chunker.MaxChunkSize)
	default:
		logger.Fatal().Str("type", cfg.Chunker.Type).Msg("unknown chunker")
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid chunker configuration")
	}

	var st vectorstore.Storage
	switch cfg.VectorStore.Type {
	case "memory", "":
		st = memory.NewStorage()
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			logger.Fatal().Msg("qdrant config missing")
		}
		st = qdrant.NewStorage(qdrant.Config{
			URL:     cfg.VectorStore.Qdrant.URL,
			APIKey:  cfg.VectorStore.Qdrant.APIKey,
			Timeout: time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		logger.Fatal().Str("type", cfg.VectorStore.Type).Msg("unknown vector store")
	}

	var ans domain.Answerer
	switch cfg.Answerer.Type {
	case "gemini", "":
		gcfg := cfg.Answerer.Gemini
		if gcfg == nil {
			gcfg = &config.GeminiAnswererConfig{}
		}
		ans, err = answergemini.NewAnswerer(answergemini.Config{
			APIKeyEnv:   gcfg.APIKeyEnv,
			Model:       gcfg.Model,
			Temperature: gcfg.Temperature,
			Timeout:     time.Duration(gcfg.TimeoutSecs) * time.Second,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini answerer init failed")
		}
	default:
		logger.Fatal().Str("type", cfg.Answerer.Type).Msg("unknown answerer")
	}

	svc := service.NewRAGService(
		extractorpdf.NewExtractor(),
		ch,
		emb,
		st,
		summarizer.NewFrequencySummarizer(),
		ans,
		cfg.Summarizer.MaxSentences,
		logger,
	)

	summary := ""
	if pdfPath != "" {
		summary, collection, err = svc.IngestFile(pdfPath, collection)
		if err != nil {
			logger.Fatal().Err(err).Str("pdf", pdfPath).Msg("ingest failed")
		}
		logger.Info().Str("collection", collection).Msg("document ingested")
	}

	switch {
	case interactive:
		m := tui.New(svc, collection, summary, topK)
		if _, err := tea.NewProgram(m).Run(); err != nil {
			logger.Fatal().Err(err).Msg("tui failed")
		}
	case query != "":
		answer, err := svc.Answer(query, collection, topK)
		if err != nil {
			logger.Fatal().Err(err).Msg("query failed")
		}
		fmt.Println(answer.Text)
	case pdfPath != "":
		fmt.Printf("PDF processed into collection %q. Ask questions with:\n", collection)
		fmt.Printf("  pdfrag --collection %q --query \"Your question\"\n", collection)
		fmt.Printf("  pdfrag --collection %q --interactive\n", collection)
	}
}
