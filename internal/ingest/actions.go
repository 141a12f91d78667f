package ingest

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/wordfreq/internal/common"
	"github.com/dtnitsch/wordfreq/pkg/analytics"
	"github.com/dtnitsch/wordfreq/pkg/caching"
	"github.com/dtnitsch/wordfreq/pkg/fetcher"
	"github.com/dtnitsch/wordfreq/pkg/parser"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

// Document is one HTML input: a local file or a URL.
type Document struct {
	Path string // file path, empty for URLs
	URL  string
	HTML []byte
}

func (d *Document) name() string {
	if d.URL != "" {
		return d.URL
	}
	return d.Path
}

// Result is the outcome of ingesting one document.
type Result struct {
	Source    string
	Title     string
	Words     int64
	Stems     int
	Bytes     int64
	Error     error
	ErrorType string
}

func IngestAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	var files []string
	if patterns := common.SplitList(c.String("from")); len(patterns) > 0 {
		var err error
		if files, err = common.ExpandGlobs(patterns); err != nil {
			return err
		}
	}
	urls, invalidURLs := common.SanitizeAndValidateURLs(common.SplitList(c.String("urls")))
	for _, u := range invalidURLs {
		logger.Warn("Skipping invalid URL", "url", u)
	}
	if len(files) == 0 && len(urls) == 0 {
		return fmt.Errorf("no input documents: provide HTML files via --from or pages via --urls")
	}

	docs := make([]*Document, 0, len(files)+len(urls))
	for _, path := range files {
		docs = append(docs, &Document{Path: path})
	}
	for _, u := range urls {
		docs = append(docs, &Document{URL: u})
	}

	var cache *caching.Cache
	if dir := c.String("cache-dir"); dir != "" {
		maxAge, err := time.ParseDuration(c.String("max-age"))
		if err != nil {
			return fmt.Errorf("invalid max-age duration: %w", err)
		}
		if cache, err = caching.NewCache(dir, maxAge); err != nil {
			return fmt.Errorf("failed to initialize cache: %w", err)
		}
	}

	logger.Info("Ingesting HTML", "files", len(files), "urls", len(urls), "out", c.String("out"))
	loadErrs := loadAll(c.Context, docs, fetcher.NewFetcher(0), cache, c.Int("workers"), logger)

	f, err := openCorpus(c.String("out"), c.Bool("truncate"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	p := &parser.Parser{}
	a := &analytics.Analytics{}
	results := make([]Result, 0, len(docs))
	for i, doc := range docs {
		if loadErrs[i] != nil {
			results = append(results, Result{Source: doc.name(), Error: loadErrs[i], ErrorType: "fetch_error"})
			continue
		}
		results = append(results, ingestDocument(p, a, w, doc, logger))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.String("out"), err)
	}

	printSummary(c, results, c.String("out"))
	return nil
}

// loadAll reads every document's HTML, fetching URLs concurrently. The
// returned slice holds each document's load error at its index.
func loadAll(ctx context.Context, docs []*Document, f *fetcher.Fetcher, cache *caching.Cache, workers int, logger *slog.Logger) []error {
	errs := make([]error, len(docs))
	var g errgroup.Group
	g.SetLimit(max(workers, 1))

	for i, doc := range docs {
		g.Go(func() error {
			errs[i] = load(ctx, doc, f, cache, logger)
			if errs[i] != nil {
				logger.Error("Failed to load document", "source", doc.name(), "error", errs[i])
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

func load(ctx context.Context, doc *Document, f *fetcher.Fetcher, cache *caching.Cache, logger *slog.Logger) error {
	if doc.URL == "" {
		html, err := os.ReadFile(doc.Path)
		if err != nil {
			return err
		}
		doc.HTML = html
		return nil
	}

	key := fmt.Sprintf("%016x.html", xxh3.HashString(doc.URL))
	if cache != nil {
		if html, ok := cache.Get(key); ok {
			logger.Info("Using cached HTML", "url", doc.URL)
			doc.HTML = html
			return nil
		}
	}

	html, err := f.GetHtmlBytes(ctx, doc.URL)
	if err != nil {
		return err
	}
	doc.HTML = html
	if cache != nil {
		if err := cache.Set(key, html); err != nil {
			logger.Warn("Failed to cache HTML", "url", doc.URL, "error", err)
		}
	}
	return nil
}

func openCorpus(out string, truncate bool) (*os.File, error) {
	if dir := filepath.Dir(out); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(out, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", out, err)
	}
	return f, nil
}

// ingestDocument extracts the text of one document and appends it to w.
// Every document ends with a newline, so words never run together across
// documents.
func ingestDocument(p *parser.Parser, a *analytics.Analytics, w *bufio.Writer, doc *Document, logger *slog.Logger) Result {
	result := Result{Source: doc.name()}

	parsed, err := p.ExtractText(doc.URL, string(doc.HTML))
	if err != nil {
		logger.Error("Failed to parse HTML", "source", result.Source, "error", err)
		result.Error = err
		result.ErrorType = "parse_error"
		return result
	}
	if parsed.Words() == 0 {
		logger.Warn("No text extracted", "source", result.Source)
		result.ErrorType = "empty"
		return result
	}

	n, err := w.WriteString(parsed.Text)
	if err != nil {
		result.Error = err
		result.ErrorType = "write_error"
		return result
	}

	counts := a.WordFrequency(parsed.Text)
	result.Title = parsed.Title
	result.Words = counts.Total()
	result.Stems = len(counts)
	result.Bytes = int64(n)
	logger.Info("Ingested document",
		"source", result.Source,
		"title", parsed.Title,
		"words", result.Words,
		"raw_words", parsed.Words(),
		"stems", result.Stems,
		"size", humanize.IBytes(uint64(n)),
	)
	return result
}

func printSummary(c *cli.Context, results []Result, out string) {
	w := common.Out(c)
	var ok int
	var words, size int64
	for _, r := range results {
		if r.ErrorType != "" {
			fmt.Fprintf(w, "  [%s] %s\n", r.ErrorType, r.Source)
			continue
		}
		ok++
		words += r.Words
		size += r.Bytes
	}
	fmt.Fprintf(w, "Ingested %d of %d documents into %s (%s, %d words)\n",
		ok, len(results), out, humanize.IBytes(uint64(size)), words)
}
