package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docsearch/internal/chunker"
	"docsearch/internal/config"
	"docsearch/internal/domain"
	"docsearch/internal/embedding/openai"
	"docsearch/internal/embedding/tfidf"
	"docsearch/internal/llm"
	"docsearch/internal/loader"
	"docsearch/internal/service"
	"docsearch/internal/summarizer"
	"docsearch/internal/tui"
	"docsearch/internal/vectorstore/memory"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, ask string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docsearch/config.yaml if not provided)")
	flag.StringVar(&ask, "ask", "", "Ask a single question and print the answer instead of starting the UI")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: docsearch [--config=config.yaml] [--ask=\"question\"] file1.txt [file2.md ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.New()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.New(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	ch, err := chunker.New(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap, cfg.Chunker.MinChunkSize)
	if err != nil {
		log.Fatalf("invalid chunker config: %v", err)
	}

	var completer domain.Completer
	switch cfg.LLM.Type {
	case "":
		// answer assembly disabled
	case "openai":
		if cfg.LLM.OpenAI == nil {
			log.Fatalf("openai llm config missing")
		}
		completer, err = llm.New(llm.Config{
			BaseURL:   cfg.LLM.OpenAI.BaseURL,
			APIKeyEnv: cfg.LLM.OpenAI.APIKeyEnv,
			Model:     cfg.LLM.OpenAI.Model,
		})
		if err != nil {
			log.Fatalf("openai llm init failed: %v", err)
		}
	default:
		log.Fatalf("unknown llm: %s", cfg.LLM.Type)
	}

	svc := service.New(ch, emb, memory.NewStore(), summarizer.New(), completer, cfg.Summary.MaxSentences)

	docs, skipped, err := loader.Load(inputs)
	if err != nil {
		log.Fatalf("failed to load documents: %v", err)
	}
	for _, path := range skipped {
		log.Printf("skipping unsupported file: %s", path)
	}

	ctx := context.Background()
	report, err := svc.Ingest(ctx, docs)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}

	if ask != "" {
		answer, res, err := svc.Answer(ctx, ask, cfg.Retrieval.TopK, cfg.Retrieval.MinScore, nil)
		if err != nil {
			log.Fatalf("answer failed: %v", err)
		}
		switch res.State {
		case service.StateNoData:
			fmt.Println("No documents indexed.")
		case service.StateNoMatches:
			fmt.Println("No relevant passages found.")
		default:
			fmt.Println(answer)
		}
		return
	}

	m := tui.New(svc, report.Summary, cfg.Retrieval.TopK, cfg.Retrieval.MinScore)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
