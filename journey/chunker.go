package journey

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/voyagelens/journey-mapper/journey/fileutils"
)

// ChunkReviews splits reviews into fixed-size chunks of size chunkSize,
// capped at maxChunks. Chunk i (1-indexed) covers records [(i-1)*S, i*S);
// the last chunk may be ragged. Records beyond the cap are silently
// excluded from the run; that is a run-size limit, not an error.
func ChunkReviews(reviews []RawReview, chunkSize, maxChunks int) ([][]RawReview, error) {
	if chunkSize <= 0 {
		return nil, errors.New("ChunkReviews: chunkSize must be > 0")
	}
	if maxChunks <= 0 {
		return nil, errors.New("ChunkReviews: maxChunks must be > 0")
	}

	total := (len(reviews) + chunkSize - 1) / chunkSize
	if total > maxChunks {
		total = maxChunks
	}

	chunks := make([][]RawReview, 0, total)
	for i := 0; i < total; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(reviews) {
			end = len(reviews)
		}
		chunks = append(chunks, reviews[start:end])
	}
	return chunks, nil
}

// ChunkFilename names chunk n (1-indexed) of the given input base name. The
// index is zero-padded so lexicographic sort recovers processing order.
func ChunkFilename(baseName string, n int) string {
	return fmt.Sprintf("%s_chunk_%03d.json", baseName, n)
}

// WriteChunks persists each chunk as an independently addressable JSON file
// in dir and returns the written paths in chunk order.
func WriteChunks(dir, baseName string, chunks [][]RawReview, pretty bool) ([]string, error) {
	written := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		outPath := filepath.Join(dir, ChunkFilename(baseName, i+1))
		if err := fileutils.WriteJSONFileAtomic(outPath, chunk, pretty); err != nil {
			return nil, fmt.Errorf("write chunk %d: %w", i+1, err)
		}
		written = append(written, outPath)
	}
	return written, nil
}
