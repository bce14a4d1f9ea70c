package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragbot/internal/chromemdb"
	"ragbot/internal/models"
)

type stubEmbedder struct {
	vec []float32
}

func (s *stubEmbedder) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	return s.vec, nil
}

func seededStore(t *testing.T) *chromemdb.Store {
	t.Helper()
	store, err := chromemdb.NewStore("", "test_collection", true, nil)
	require.NoError(t, err)

	chunks := []models.Chunk{
		{Content: "solar panels convert sunlight", Source: "doc.pdf", Sequence: 0},
		{Content: "batteries store energy", Source: "doc.pdf", Sequence: 1},
		{Content: "inverters produce AC power", Source: "doc.pdf", Sequence: 2},
	}
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.7071, 0.7071, 0},
	}
	require.NoError(t, store.AddChunks(context.Background(), chunks, vectors))
	return store
}

func TestRetrieveOrdering(t *testing.T) {
	store := seededStore(t)
	retriever := NewRetriever(store, &stubEmbedder{vec: []float32{1, 0, 0}}, 3)

	results, err := retriever.Retrieve(context.Background(), "sunlight")
	require.NoError(t, err)
	require.Len(t, results, 3)

	// best match first, similarity non-increasing
	assert.Equal(t, "0", results[0].ID)
	assert.Equal(t, "2", results[1].ID)
	assert.Equal(t, "1", results[2].ID)
	for i := 0; i+1 < len(results); i++ {
		assert.GreaterOrEqual(t, results[i].Similarity, results[i+1].Similarity)
	}
}

func TestRetrieveTopOne(t *testing.T) {
	store := seededStore(t)
	retriever := NewRetriever(store, &stubEmbedder{vec: []float32{0, 1, 0}}, 1)

	results, err := retriever.Retrieve(context.Background(), "batteries")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "batteries store energy", results[0].Content)
}

func TestRetrieveSaturation(t *testing.T) {
	store := seededStore(t)
	retriever := NewRetriever(store, &stubEmbedder{vec: []float32{1, 0, 0}}, 50)

	results, err := retriever.Retrieve(context.Background(), "anything")
	require.NoError(t, err)
	// fewer stored chunks than k: all of them, no padding, no error
	assert.Len(t, results, 3)
}

func TestRetrieveEmptyIndex(t *testing.T) {
	store, err := chromemdb.NewStore("", "empty_collection", true, nil)
	require.NoError(t, err)
	retriever := NewRetriever(store, &stubEmbedder{vec: []float32{1, 0, 0}}, 3)

	results, err := retriever.Retrieve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieveCarriesMetadata(t *testing.T) {
	store := seededStore(t)
	retriever := NewRetriever(store, &stubEmbedder{vec: []float32{1, 0, 0}}, 1)

	results, err := retriever.Retrieve(context.Background(), "sunlight")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc.pdf", results[0].Metadata["source"])
	assert.Equal(t, "0", results[0].Metadata["id"])
}

func TestContextBlock(t *testing.T) {
	t.Run("empty results yield placeholder", func(t *testing.T) {
		assert.Equal(t, models.NoContextFound, ContextBlock(nil))
	})

	t.Run("results joined with separator", func(t *testing.T) {
		block := ContextBlock([]models.SearchResult{
			{Content: "first"},
			{Content: "second"},
		})
		assert.Equal(t, "first"+models.ContextSeparator+"second", block)
	})
}
