// Package chromemdb wraps the chromem-go vector database behind the
// operations the indexer and retriever need: a clear-then-rebuild write
// path and a read-only similarity search.
package chromemdb

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"ragbot/internal/models"
)

// Store owns one chromem collection and the dimensionality of its vectors.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	embedFn    chromem.EmbeddingFunc
	dimension  int
}

const compress = false

// NewStore opens (or creates) the vector database at dbPath and its
// collection. With inMemory set, nothing is persisted; tests use this.
func NewStore(dbPath, collectionName string, inMemory bool, embedFn chromem.EmbeddingFunc) (*Store, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	}

	s := &Store{db: db, name: collectionName, embedFn: embedFn}
	if err := s.openCollection(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) openCollection() error {
	c, err := s.db.GetOrCreateCollection(s.name, nil, s.embedFn)
	if err != nil {
		return fmt.Errorf("failed to create/get collection: %w", err)
	}
	s.collection = c
	return nil
}

// Reset drops the collection and recreates it empty. A full index rebuild
// replaces all prior content at this location.
func (s *Store) Reset() error {
	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	s.dimension = 0
	return s.openCollection()
}

// AddChunks stores each chunk with its vector. Chunk identifiers are the
// sequence positions as strings. Every vector must share the dimensionality
// of the first one stored.
func (s *Store) AddChunks(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d != %d", len(chunks), len(vectors))
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for i, chunk := range chunks {
		if s.dimension == 0 {
			s.dimension = len(vectors[i])
		}
		if len(vectors[i]) != s.dimension {
			return fmt.Errorf("vector dimension mismatch: got %d, want %d", len(vectors[i]), s.dimension)
		}
		docs = append(docs, chromem.Document{
			ID:      strconv.Itoa(chunk.Sequence),
			Content: chunk.Content,
			Metadata: map[string]string{
				"source": chunk.Source,
				"id":     strconv.Itoa(chunk.Sequence),
			},
			Embedding: vectors[i],
		})
	}
	if len(docs) == 0 {
		return nil
	}

	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Count reports the number of stored chunks.
func (s *Store) Count() int {
	return s.collection.Count()
}

// Query returns up to k stored chunks ordered by descending similarity to
// the query vector. k is clamped to the collection size; an empty
// collection yields an empty result, never an error.
func (s *Store) Query(ctx context.Context, queryEmbedding []float32, k int) ([]chromem.Result, error) {
	count := s.collection.Count()
	if count == 0 || k <= 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}
	return results, nil
}
