// Package chunker turns an ordered line sequence into overlapping
// fixed-size windows suitable for embedding.
package chunker

import "strings"

const (
	DefaultChunkSize = 5
	DefaultOverlap   = 2
)

// ChunkLines slides a window of chunkSize lines across lines with a step
// of max(1, chunkSize-overlap). Each window is joined with line breaks;
// windows that are empty after trimming are dropped. The final window may
// hold fewer than chunkSize lines. A non-positive chunkSize yields no
// chunks rather than an error.
func ChunkLines(lines []string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	step := chunkSize - overlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	for i := 0; i < len(lines); i += step {
		end := min(i+chunkSize, len(lines))
		chunk := strings.Join(lines[i:end], "\n")
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
