// Package rag performs the online retrieval step: embed the question,
// search the vector index, and shape the matches into a context block.
package rag

import (
	"context"
	"fmt"
	"strings"

	"ragbot/internal/chromemdb"
	"ragbot/internal/models"
)

const DefaultTopK = 3

// Embedder turns text into a fixed-dimension vector. It must be the same
// model the index was built with.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Retriever answers top-k nearest-neighbour lookups over the vector index.
type Retriever struct {
	store    *chromemdb.Store
	embedder Embedder
	topK     int
}

func NewRetriever(store *chromemdb.Store, embedder Embedder, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{store: store, embedder: embedder, topK: topK}
}

// Retrieve embeds the query and returns the closest stored chunks,
// best match first. The query vector is discarded after the search.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]models.SearchResult, error) {
	vec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := r.store.Query(ctx, vec, r.topK)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, models.SearchResult{
			ID:         hit.ID,
			Content:    hit.Content,
			Metadata:   hit.Metadata,
			Similarity: hit.Similarity,
		})
	}
	return results, nil
}

// ContextBlock joins the retrieved chunk texts with the context separator,
// or yields the no-document placeholder when nothing matched.
func ContextBlock(results []models.SearchResult) string {
	if len(results) == 0 {
		return models.NoContextFound
	}
	parts := make([]string, len(results))
	for i, res := range results {
		parts[i] = res.Content
	}
	return strings.Join(parts, models.ContextSeparator)
}
