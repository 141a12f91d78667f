// Package engine runs the parallel scan: a fixed pool of workers claims
// chunks from a shared cursor, counts stems into worker-owned counters and,
// once every worker has returned, the counters are reduced and ranked.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dtnitsch/wordfreq/models"
	"github.com/dtnitsch/wordfreq/pkg/analytics"
	"github.com/dtnitsch/wordfreq/pkg/corpus"
	"github.com/dtnitsch/wordfreq/pkg/mapreduce"
	"github.com/dtnitsch/wordfreq/pkg/partition"
	"golang.org/x/sync/errgroup"
)

// Source is a read-only, random-access corpus of known length.
// *bytes.Reader and *corpus.File both satisfy it.
type Source interface {
	io.ReaderAt
	Size() int64
}

// slicer is implemented by sources that can hand out chunk bytes without
// copying, such as a memory-mapped corpus.File.
type slicer interface {
	Slice(off, n int64) []byte
}

// Options configures a run. Zero values select the defaults.
type Options struct {
	ChunkSize     int64
	Workers       int
	SkipStopwords bool
	Logger        *slog.Logger
}

// Run scans src and returns the ranked stem frequencies. An empty source
// yields an empty result. Tokens that straddle a chunk boundary are dropped,
// at most one per internal boundary.
//
// Cancelling ctx stops workers before their next chunk claim; the partial
// counts are discarded and the context error is returned.
func Run(ctx context.Context, src Source, opts Options) (*models.Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	chunkSize := opts.ChunkSize
	if chunkSize == 0 {
		chunkSize = int64(models.DefaultChunkSize)
	}
	if chunkSize < 0 {
		return nil, fmt.Errorf("%w: chunk size must be at least 1 byte, got %d", models.ErrInvalidConfig, chunkSize)
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("%w: worker count must not be negative, got %d", models.ErrInvalidConfig, opts.Workers)
	}

	startTime := time.Now()
	size := src.Size()
	result := &models.Result{
		CorpusSize: size,
		ChunkSize:  chunkSize,
		Entries:    []models.RankedEntry{},
	}
	if size == 0 {
		logger.Info("Empty corpus, nothing to scan")
		return result, nil
	}

	cursor := partition.NewCursor(size, chunkSize)
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, cursor.Total())

	logger.Info("Starting scan phase", "corpus_bytes", size, "chunk_size", chunkSize, "chunks", cursor.Total(), "workers", workers)

	locals := make([]analytics.Counter, workers)
	tokens := make([]int64, workers)
	prog := newProgress(logger, cursor.Total())

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		locals[w] = analytics.NewCounter()
		g.Go(func() error {
			n, err := worker(gctx, src, cursor, locals[w], prog)
			tokens[w] = n
			return err
		})
	}

	// Barrier: no counter is read before every worker has returned.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info("All scan workers finished")

	global := mapreduce.Reduce(locals)
	for _, n := range tokens {
		result.TotalWords += n
	}
	result.Entries = mapreduce.Rank(global, mapreduce.SkipStopwords(opts.SkipStopwords))
	result.UniqueStems = len(global)
	result.NumChunks = cursor.Total()
	result.Workers = workers
	result.Duration = time.Since(startTime)

	logger.Info("Reduce phase complete", "total_words", result.TotalWords, "unique_stems", result.UniqueStems, "duration", result.Duration)
	return result, nil
}

// worker claims chunks until the cursor is exhausted. The stop check
// happens between claims only.
func worker(ctx context.Context, src Source, cursor *partition.Cursor, local analytics.Counter, prog *progress) (int64, error) {
	var (
		buf    []byte
		tokens int64
	)
	for {
		if err := ctx.Err(); err != nil {
			return tokens, fmt.Errorf("scan stopped: %w", err)
		}

		chunk, ok := cursor.Claim()
		if !ok {
			return tokens, nil
		}

		data, err := readChunk(src, chunk, &buf)
		if err != nil {
			return tokens, err
		}
		tokens += mapreduce.Map(data, chunk, local)
		prog.chunkDone()
	}
}

// readChunk returns the bytes of chunk, reusing buf between calls.
func readChunk(src Source, chunk partition.Chunk, buf *[]byte) ([]byte, error) {
	if s, ok := src.(slicer); ok {
		if data := s.Slice(chunk.Start, chunk.Size); data != nil {
			return data, nil
		}
	}

	if int64(cap(*buf)) < chunk.Size {
		*buf = make([]byte, chunk.Size)
	}
	data := (*buf)[:chunk.Size]

	n, err := src.ReadAt(data, chunk.Start)
	if int64(n) == chunk.Size {
		return data, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	if !errors.Is(err, corpus.ErrInputUnavailable) {
		err = fmt.Errorf("%w: %w", corpus.ErrInputUnavailable, err)
	}
	return nil, fmt.Errorf("failed to read %s: %w", chunk, err)
}

// progress logs every tenth of the chunks processed.
type progress struct {
	logger *slog.Logger
	total  int64
	done   atomic.Int64
	decile atomic.Int64
}

func newProgress(logger *slog.Logger, total int) *progress {
	return &progress{logger: logger, total: int64(total)}
}

func (p *progress) chunkDone() {
	done := p.done.Add(1)
	decile := done * 10 / p.total
	old := p.decile.Load()
	if decile > old && p.decile.CompareAndSwap(old, decile) {
		p.logger.Info("Scan progress", "percent", decile*10, "chunks_done", done, "chunks_total", p.total)
	}
}
