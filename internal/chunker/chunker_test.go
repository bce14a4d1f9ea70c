package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkLinesOverlap(t *testing.T) {
	lines := []string{"L1", "L2", "L3", "L4", "L5", "L6", "L7", "L8", "L9", "L10"}

	chunks := ChunkLines(lines, 5, 2)

	// step 3 -> windows at offsets 0, 3, 6, 9
	require.Len(t, chunks, 4)
	assert.Equal(t, "L1\nL2\nL3\nL4\nL5", chunks[0])
	assert.Equal(t, "L4\nL5\nL6\nL7\nL8", chunks[1])
	assert.Equal(t, "L7\nL8\nL9\nL10", chunks[2])
	assert.Equal(t, "L10", chunks[3])
}

func TestChunkLinesDeterministic(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e", "f", "g"}

	first := ChunkLines(lines, 3, 1)
	second := ChunkLines(lines, 3, 1)

	assert.Equal(t, first, second)
}

func TestChunkLinesDegenerateSize(t *testing.T) {
	lines := []string{"a", "b", "c"}

	assert.Nil(t, ChunkLines(lines, 0, 2))
	assert.Nil(t, ChunkLines(lines, -1, 0))
}

func TestChunkLinesTable(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		chunkSize int
		overlap   int
		want      []string
	}{
		{
			name:      "no input",
			lines:     nil,
			chunkSize: 5,
			overlap:   2,
			want:      nil,
		},
		{
			name:      "fewer lines than one window",
			lines:     []string{"only", "two"},
			chunkSize: 5,
			overlap:   2,
			want:      []string{"only\ntwo"},
		},
		{
			name:      "zero overlap",
			lines:     []string{"a", "b", "c", "d"},
			chunkSize: 2,
			overlap:   0,
			want:      []string{"a\nb", "c\nd"},
		},
		{
			name:      "overlap at least chunk size steps by one",
			lines:     []string{"a", "b", "c"},
			chunkSize: 2,
			overlap:   5,
			want:      []string{"a\nb", "b\nc", "c"},
		},
		{
			name:      "blank windows are dropped",
			lines:     []string{"", "  ", "x"},
			chunkSize: 2,
			overlap:   0,
			want:      []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChunkLines(tt.lines, tt.chunkSize, tt.overlap))
		})
	}
}

func TestChunkLinesAdjacentOverlapExactly(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, strings.Repeat("x", i+1))
	}

	chunkSize, overlap := 5, 2
	chunks := ChunkLines(lines, chunkSize, overlap)
	require.Greater(t, len(chunks), 1)

	for i := 0; i+1 < len(chunks); i++ {
		cur := strings.Split(chunks[i], "\n")
		next := strings.Split(chunks[i+1], "\n")
		if len(cur) < chunkSize {
			continue // final short window
		}
		shared := min(overlap, len(next))
		assert.Equal(t, cur[len(cur)-shared:], next[:shared], "chunks %d and %d must overlap by %d lines", i, i+1, shared)
	}
}
