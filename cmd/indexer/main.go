package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ragbot/internal/chromemdb"
	"ragbot/internal/config"
	"ragbot/internal/embedding"
	"ragbot/internal/helper"
	"ragbot/internal/indexer"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	if err := helper.CreateFolder(cfg.RAG.ChromaDir); err != nil {
		log.Fatal().Err(err).Msg("Error creating index directory")
	}

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	store, err := chromemdb.NewStore(cfg.RAG.ChromaDir, cfg.RAG.Collection, false, embedding.ChromemFunc(embedder))
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating vector database")
	}

	builder := indexer.NewBuilder(cfg, embedder, store)
	stats, err := builder.Build(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Error building index")
	}

	if *verbose {
		helper.PrettyPrint(stats)
	}
	log.Info().
		Int("lines", stats.Lines).
		Int("chunks", stats.Chunks).
		Str("index", stats.IndexDir).
		Msg("Vector index built")
}
