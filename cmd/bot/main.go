package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ragbot/internal/bot"
	"ragbot/internal/chromemdb"
	"ragbot/internal/config"
	"ragbot/internal/embedding"
	"ragbot/internal/history"
	"ragbot/internal/llmservice"
	"ragbot/internal/prompt"
	"ragbot/internal/rag"
	"ragbot/internal/transport/line"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	// refuse to serve against an index built with a different embedding model
	manifest, err := chromemdb.ReadManifest(cfg.RAG.ChromaDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.RAG.ChromaDir).Msg("No index manifest found, run the indexer first")
	}
	if err := manifest.Validate(cfg.EmbedLLM.Model); err != nil {
		log.Fatal().Err(err).Msg("Index is stale")
	}

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	store, err := chromemdb.NewStore(cfg.RAG.ChromaDir, cfg.RAG.Collection, false, embedding.ChromemFunc(embedder))
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening vector database")
	}
	log.Info().Int("chunks", store.Count()).Str("model", manifest.EmbedModel).Msg("Loaded vector index")

	generator, err := llmservice.NewChatGenerator(&cfg.ChatLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing chat LLM")
	}
	log.Info().Str("model", cfg.ChatLLM.Model).Msg("Using chat model")

	retriever := rag.NewRetriever(store, embedder, cfg.RAG.TopK)
	histStore := history.NewStore(cfg.RAG.HistoryFile)
	prompts := prompt.NewBuilder(cfg.Persona.Role, cfg.Persona.Tasks)

	sourceInfo := fmt.Sprintf("Indexed PDF: %s\nEmbeddings: %s\nTop-k: %d",
		manifest.Source, manifest.EmbedModel, cfg.RAG.TopK)
	orchestrator := bot.New(retriever, generator, histStore, prompts, cfg.RAG.MaxTurns, sourceInfo)

	client := line.NewClient(cfg.Line.ChannelAccessToken, cfg.Line.ReplyEndpoint)
	handler := line.NewHandler(cfg.Line.ChannelSecret, orchestrator, client)

	mux := http.NewServeMux()
	mux.Handle("/", handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: mux,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Listening for webhook callbacks")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
