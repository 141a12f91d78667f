// Package generator builds synthetic corpora for benchmarking the counter:
// a small vocabulary is sampled from word-list files and random words from
// it are written until the target size is reached.
package generator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// GroupSize is the number of consecutive dictionary lines taken per group.
	GroupSize = 5
	// DefaultGroups gives a vocabulary of 1000 words.
	DefaultGroups = 200
	// DefaultSize is the default corpus size (20 GiB).
	DefaultSize int64 = 20 << 30

	bufferSize = 1 << 20
)

var ErrNoWords = errors.New("no words loaded from dictionary")

type Options struct {
	DictDir string
	Groups  int
	Size    int64
	Seed    uint64 // 0 picks a seed from the clock
	Logger  *slog.Logger
}

type Generator struct {
	opts   Options
	rng    *rand.Rand
	logger *slog.Logger
}

func New(opts Options) *Generator {
	if opts.Groups <= 0 {
		opts.Groups = DefaultGroups
	}
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{
		opts:   opts,
		rng:    rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		logger: logger,
	}
}

// Seed returns the seed in use, so a run can be reproduced.
func (g *Generator) Seed() uint64 {
	return g.opts.Seed
}

// LoadDictionary picks Groups random windows of GroupSize consecutive lines
// from the *.txt files in DictDir and returns the words shuffled. A window
// is only kept when all of its lines are non-empty, so the vocabulary can
// come out smaller than Groups*GroupSize.
func (g *Generator) LoadDictionary() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(g.opts.DictDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("invalid dictionary dir %q: %w", g.opts.DictDir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .txt files in %q: %w", g.opts.DictDir, ErrNoWords)
	}
	sort.Strings(paths)

	files := make(map[string][]string, len(paths))
	words := make([]string, 0, g.opts.Groups*GroupSize)
	for range g.opts.Groups {
		path := paths[g.rng.IntN(len(paths))]
		lines, ok := files[path]
		if !ok {
			lines, err = readLines(path)
			if err != nil {
				return nil, err
			}
			files[path] = lines
		}
		if len(lines) <= 4 {
			continue
		}

		// target is at least two lines away from either end
		target := 2 + g.rng.IntN(len(lines)-4)
		window := lines[target-2 : target+3]
		if !complete(window) {
			continue
		}
		words = append(words, window...)
	}

	if len(words) == 0 {
		return nil, ErrNoWords
	}
	g.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	g.logger.Info("Loaded dictionary", "words", len(words), "files", len(paths))
	return words, nil
}

// Write writes uniformly random words from words, each followed by a single
// space, until at least Size bytes are written. The output overshoots Size
// by less than one word.
func (g *Generator) Write(ctx context.Context, w io.Writer, words []string) (int64, error) {
	if len(words) == 0 {
		return 0, ErrNoWords
	}

	bw := bufio.NewWriterSize(w, bufferSize)
	size := g.opts.Size
	var written int64
	lastDecile := int64(0)

	for written < size {
		if err := ctx.Err(); err != nil {
			return written, fmt.Errorf("generation stopped: %w", err)
		}
		// check the context once per buffer rather than once per word
		for n := 0; n < bufferSize && written < size; {
			word := words[g.rng.IntN(len(words))]
			bw.WriteString(word)
			bw.WriteByte(' ')
			n += len(word) + 1
			written += int64(len(word) + 1)
		}
		if err := bw.Flush(); err != nil {
			return written, fmt.Errorf("failed to write corpus: %w", err)
		}

		if decile := min(written*10/size, 10); decile > lastDecile {
			lastDecile = decile
			g.logger.Info("Generation progress",
				"percent", decile*10,
				"written", humanize.IBytes(uint64(written)),
				"target", humanize.IBytes(uint64(size)),
			)
		}
	}
	return written, nil
}

// Generate loads a dictionary and writes a corpus of Size bytes to path.
func (g *Generator) Generate(ctx context.Context, path string) (int64, error) {
	words, err := g.LoadDictionary()
	if err != nil {
		return 0, err
	}
	return g.WriteFile(ctx, path, words)
}

// WriteFile writes a corpus built from words to path, creating parent
// directories as needed.
func (g *Generator) WriteFile(ctx context.Context, path string, words []string) (int64, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	written, err := g.Write(ctx, f, words)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return written, err
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", path, err)
	}
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \r\t")
	}
	// a trailing newline does not start another line
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

func complete(window []string) bool {
	for _, w := range window {
		if w == "" {
			return false
		}
	}
	return true
}
