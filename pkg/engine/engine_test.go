package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dtnitsch/wordfreq/models"
	"github.com/dtnitsch/wordfreq/pkg/corpus"
	"github.com/dtnitsch/wordfreq/pkg/partition"
)

func generateText(seed int64, words int) []byte {
	vocab := []string{"the", "cats", "running", "fastest", "boxes", "Box", "walked", "quickly", "hopeful", "parity", "dog", "dogs"}
	seps := []string{" ", "  ", "\n", ", ", ". "}
	r := rand.New(rand.NewSource(seed))

	var sb strings.Builder
	for i := 0; i < words; i++ {
		sb.WriteString(vocab[r.Intn(len(vocab))])
		sb.WriteString(seps[r.Intn(len(seps))])
	}
	return []byte(sb.String())
}

func TestRun_Scenario(t *testing.T) {
	src := bytes.NewReader([]byte("the cats running fastest boxes"))

	result, err := Run(context.Background(), src, Options{ChunkSize: 1 << 20, Workers: 4})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []models.RankedEntry{
		{Stem: "box", Count: 1},
		{Stem: "cat", Count: 1},
		{Stem: "fast", Count: 1},
		{Stem: "runn", Count: 1},
		{Stem: "the", Count: 1},
	}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Errorf("Entries = %v, want %v", result.Entries, want)
	}
	if result.TotalWords != 5 {
		t.Errorf("TotalWords = %d, want 5", result.TotalWords)
	}
	if result.UniqueStems != 5 {
		t.Errorf("UniqueStems = %d, want 5", result.UniqueStems)
	}
	if result.NumChunks != 1 || result.Workers != 1 {
		t.Errorf("NumChunks = %d, Workers = %d, want 1 and 1 (workers clamped to chunks)", result.NumChunks, result.Workers)
	}
}

func TestRun_HugeChunkSize(t *testing.T) {
	for _, chunkSize := range []int64{math.MaxInt64, math.MaxInt64 - 5} {
		result, err := Run(context.Background(), bytes.NewReader([]byte("alpha beta")), Options{ChunkSize: chunkSize, Workers: 4})
		if err != nil {
			t.Fatalf("Run(chunkSize=%d) error = %v", chunkSize, err)
		}
		want := []models.RankedEntry{{Stem: "alpha", Count: 1}, {Stem: "beta", Count: 1}}
		if !reflect.DeepEqual(result.Entries, want) {
			t.Errorf("chunkSize=%d: Entries = %v, want %v", chunkSize, result.Entries, want)
		}
		if result.TotalWords != 2 || result.NumChunks != 1 || result.Workers != 1 {
			t.Errorf("chunkSize=%d: TotalWords = %d, NumChunks = %d, Workers = %d, want 2, 1, 1",
				chunkSize, result.TotalWords, result.NumChunks, result.Workers)
		}
	}
}

func TestRun_EmptyCorpus(t *testing.T) {
	result, err := Run(context.Background(), bytes.NewReader(nil), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Entries) != 0 || result.TotalWords != 0 {
		t.Errorf("empty corpus produced %v", result)
	}
	if result.Entries == nil {
		t.Error("Entries should be an empty slice, not nil")
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	src := bytes.NewReader([]byte("words"))
	if _, err := Run(context.Background(), src, Options{ChunkSize: -1}); !errors.Is(err, models.ErrInvalidConfig) {
		t.Errorf("negative chunk size: error = %v, want ErrInvalidConfig", err)
	}
	if _, err := Run(context.Background(), src, Options{Workers: -1}); !errors.Is(err, models.ErrInvalidConfig) {
		t.Errorf("negative workers: error = %v, want ErrInvalidConfig", err)
	}
}

func TestRun_IndependentOfWorkerCount(t *testing.T) {
	text := generateText(1, 5000)

	for _, chunkSize := range []int64{1, 7, 64, 1000, int64(len(text))} {
		var base []byte
		for workers := 1; workers <= 8; workers++ {
			result, err := Run(context.Background(), bytes.NewReader(text), Options{ChunkSize: chunkSize, Workers: workers})
			if err != nil {
				t.Fatalf("chunk=%d workers=%d: Run() error = %v", chunkSize, workers, err)
			}
			encoded, err := json.Marshal(result.Entries)
			if err != nil {
				t.Fatalf("failed to marshal entries: %v", err)
			}
			if base == nil {
				base = encoded
				continue
			}
			if !bytes.Equal(encoded, base) {
				t.Fatalf("chunk=%d workers=%d: ranked output differs from workers=1", chunkSize, workers)
			}
		}
	}
}

func TestRun_RepeatedRunsAreIdentical(t *testing.T) {
	text := generateText(2, 2000)
	opts := Options{ChunkSize: 100, Workers: 6}

	first, err := Run(context.Background(), bytes.NewReader(text), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Run(context.Background(), bytes.NewReader(text), opts)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if !reflect.DeepEqual(again.Entries, first.Entries) || again.TotalWords != first.TotalWords {
			t.Fatalf("run %d differs from the first run", i)
		}
	}
}

func TestRun_BoundaryLossBounded(t *testing.T) {
	text := generateText(3, 3000)

	exact, err := Run(context.Background(), bytes.NewReader(text), Options{ChunkSize: int64(len(text)), Workers: 1})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if exact.NumChunks != 1 {
		t.Fatalf("NumChunks = %d, want 1", exact.NumChunks)
	}

	for _, chunkSize := range []int64{3, 16, 100, 4096} {
		result, err := Run(context.Background(), bytes.NewReader(text), Options{ChunkSize: chunkSize, Workers: 4})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		lost := exact.TotalWords - result.TotalWords
		bound := int64(partition.Count(int64(len(text)), chunkSize) - 1)
		if lost < 0 || lost > bound {
			t.Errorf("chunk=%d: lost %d tokens, bound %d", chunkSize, lost, bound)
		}
	}
}

func TestRun_SkipStopwords(t *testing.T) {
	src := bytes.NewReader([]byte("the the the cats and boxes"))
	result, err := Run(context.Background(), src, Options{SkipStopwords: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []models.RankedEntry{{Stem: "box", Count: 1}, {Stem: "cat", Count: 1}}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Errorf("Entries = %v, want %v", result.Entries, want)
	}
	// Stopwords are filtered from the table, not from the token total.
	if result.TotalWords != 6 {
		t.Errorf("TotalWords = %d, want 6", result.TotalWords)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, bytes.NewReader(generateText(4, 100)), Options{ChunkSize: 8, Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

type failingSource struct {
	size int64
}

func (f failingSource) Size() int64 { return f.size }

func (f failingSource) ReadAt(p []byte, off int64) (int, error) {
	if off > 0 {
		return 0, errors.New("disk on fire")
	}
	for i := range p {
		p[i] = 'a'
	}
	return len(p), nil
}

func TestRun_ReadFailure(t *testing.T) {
	_, err := Run(context.Background(), failingSource{size: 64}, Options{ChunkSize: 16, Workers: 2})
	if !errors.Is(err, corpus.ErrInputUnavailable) {
		t.Errorf("Run() error = %v, want ErrInputUnavailable", err)
	}
}

func TestRun_CorpusFileMatchesInMemory(t *testing.T) {
	text := generateText(5, 4000)
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, text, 0600); err != nil {
		t.Fatalf("failed to write corpus: %v", err)
	}

	file, err := corpus.Open(path)
	if err != nil {
		t.Fatalf("corpus.Open() error = %v", err)
	}
	defer file.Close()

	opts := Options{ChunkSize: 333, Workers: 3}
	fromFile, err := Run(context.Background(), file, opts)
	if err != nil {
		t.Fatalf("Run(file) error = %v", err)
	}
	fromMemory, err := Run(context.Background(), bytes.NewReader(text), opts)
	if err != nil {
		t.Fatalf("Run(memory) error = %v", err)
	}

	if !reflect.DeepEqual(fromFile.Entries, fromMemory.Entries) || fromFile.TotalWords != fromMemory.TotalWords {
		t.Error("file-backed and in-memory runs disagree")
	}
}
