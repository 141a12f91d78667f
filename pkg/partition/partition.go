// Package partition divides a corpus of known size into fixed-size chunks and
// hands chunk indices out to concurrent workers.
//
// Chunks are never stored as a collection: each one is derived from its
// index, the corpus size and the chunk size.
package partition

import (
	"fmt"
	"sync/atomic"
)

// Chunk is the half-open byte range [Start, Start+Size) of the corpus.
type Chunk struct {
	Index int
	Start int64
	Size  int64
	First bool // starts at offset 0
	Last  bool // ends at the end of the corpus
}

// End returns the exclusive end offset.
func (c Chunk) End() int64 {
	return c.Start + c.Size
}

func (c Chunk) String() string {
	return fmt.Sprintf("chunk %d [%d, %d)", c.Index, c.Start, c.End())
}

// Count returns the number of chunks covering fileSize bytes.
// It returns 0 for an empty corpus or a non-positive chunk size.
func Count(fileSize, chunkSize int64) int {
	if fileSize <= 0 || chunkSize <= 0 {
		return 0
	}
	// fileSize+chunkSize-1 can overflow for very large chunk sizes
	n := fileSize / chunkSize
	if fileSize%chunkSize != 0 {
		n++
	}
	return int(n)
}

// At derives chunk i. The final chunk is truncated to fileSize.
func At(i int, fileSize, chunkSize int64) Chunk {
	n := Count(fileSize, chunkSize)
	start := int64(i) * chunkSize
	size := chunkSize
	if size > fileSize-start {
		size = fileSize - start
	}
	return Chunk{
		Index: i,
		Start: start,
		Size:  size,
		First: i == 0,
		Last:  i == n-1,
	}
}

// Cursor is the shared claim point for workers. Every chunk index is
// returned by exactly one call to Claim.
type Cursor struct {
	next      atomic.Int64
	fileSize  int64
	chunkSize int64
	total     int
}

// NewCursor returns a Cursor over all chunks of the corpus.
func NewCursor(fileSize, chunkSize int64) *Cursor {
	return &Cursor{
		fileSize:  fileSize,
		chunkSize: chunkSize,
		total:     Count(fileSize, chunkSize),
	}
}

// Claim returns the next unclaimed chunk, or false once all are taken.
func (c *Cursor) Claim() (Chunk, bool) {
	i := c.next.Add(1) - 1
	if i >= int64(c.total) {
		return Chunk{}, false
	}
	return At(int(i), c.fileSize, c.chunkSize), true
}

// Total returns the number of chunks.
func (c *Cursor) Total() int {
	return c.total
}
