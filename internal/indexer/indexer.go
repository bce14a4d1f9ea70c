// Package indexer runs the offline build: extract lines from the source
// document, window them into chunks, embed each chunk, and persist
// everything into the vector index.
package indexer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"ragbot/internal/chromemdb"
	"ragbot/internal/chunker"
	"ragbot/internal/config"
	"ragbot/internal/extractor"
	"ragbot/internal/models"
	"ragbot/internal/rag"
)

type Builder struct {
	cfg      *config.Config
	embedder rag.Embedder
	store    *chromemdb.Store
}

// Stats summarises one completed index build.
type Stats struct {
	Lines    int    `json:"lines"`
	Chunks   int    `json:"chunks"`
	IndexDir string `json:"index_dir"`
}

func NewBuilder(cfg *config.Config, embedder rag.Embedder, store *chromemdb.Store) *Builder {
	return &Builder{cfg: cfg, embedder: embedder, store: store}
}

// Build replaces the index content with a fresh build from the configured
// source document. Rebuilding from the same document and configuration is
// idempotent in content.
func (b *Builder) Build(ctx context.Context) (*Stats, error) {
	lines, err := extractor.ExtractLines(b.cfg.RAG.SourcePath)
	if err != nil {
		return nil, err
	}
	log.Info().Int("lines", len(lines)).Str("source", b.cfg.RAG.SourcePath).Msg("Extracted lines")

	texts := chunker.ChunkLines(lines, b.cfg.RAG.ChunkSize, b.cfg.RAG.ChunkOverlap)
	log.Info().Int("chunks", len(texts)).Msg("Created chunks")

	source := filepath.Base(b.cfg.RAG.SourcePath)
	chunks := make([]models.Chunk, len(texts))
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := b.embedder.EmbedQuery(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		chunks[i] = models.Chunk{Content: text, Source: source, Sequence: i}
		vectors[i] = vec
	}

	if err := b.store.Reset(); err != nil {
		return nil, err
	}
	if err := b.store.AddChunks(ctx, chunks, vectors); err != nil {
		return nil, err
	}

	manifest := chromemdb.Manifest{
		EmbedModel: b.cfg.EmbedLLM.Model,
		Source:     source,
		Chunks:     len(chunks),
		BuiltAt:    time.Now().UTC(),
	}
	if err := chromemdb.WriteManifest(b.cfg.RAG.ChromaDir, manifest); err != nil {
		return nil, err
	}

	return &Stats{Lines: len(lines), Chunks: len(chunks), IndexDir: b.cfg.RAG.ChromaDir}, nil
}
