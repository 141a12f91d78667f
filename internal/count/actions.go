package count

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dtnitsch/wordfreq/internal/common"
	"github.com/dtnitsch/wordfreq/models"
	"github.com/dtnitsch/wordfreq/pkg/caching"
	"github.com/dtnitsch/wordfreq/pkg/corpus"
	dbpkg "github.com/dtnitsch/wordfreq/pkg/db"
	"github.com/dtnitsch/wordfreq/pkg/detector"
	"github.com/dtnitsch/wordfreq/pkg/engine"
	"github.com/dtnitsch/wordfreq/pkg/manifest"
	"github.com/dtnitsch/wordfreq/pkg/mapreduce"
	"github.com/dtnitsch/wordfreq/pkg/storage"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

func CountAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one corpus file, got %d arguments", c.NArg())
	}
	path := c.Args().First()

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	src, err := corpus.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	logger.Info("Opened corpus",
		"path", src.Path(),
		"size", humanize.IBytes(uint64(src.Size())),
		"mapped", src.Mapped(),
		"chunk_size", cfg.ChunkSize.String(),
		"workers", cfg.WorkerCount,
	)

	var cache *caching.Cache
	key := caching.RunKey{
		CorpusPath:     src.Path(),
		CorpusSize:     src.Size(),
		ModTime:        src.ModTime(),
		ChunkSize:      int64(cfg.ChunkSize),
		SkipStopwords:  cfg.SkipStopwords,
		DetectLanguage: cfg.DetectLanguage,
	}
	if cfg.CacheDir != "" {
		cache, err = caching.NewCache(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			return fmt.Errorf("failed to initialize cache: %w", err)
		}
	}

	result, cached := lookupCache(cache, key, logger)
	if !cached {
		result, err = engine.Run(c.Context, src, engine.Options{
			ChunkSize:     int64(cfg.ChunkSize),
			Workers:       cfg.WorkerCount,
			SkipStopwords: cfg.SkipStopwords,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("count failed: %w", err)
		}
		result.Corpus = src.Path()

		if cfg.DetectLanguage {
			result.Language = detectLanguage(src, logger)
		}

		if cache != nil {
			if err := cache.SetResult(key, result); err != nil {
				logger.Warn("Failed to cache result", "error", err)
			}
		}
	}

	logger.Info("Count complete",
		"total_words", result.TotalWords,
		"unique_stems", result.UniqueStems,
		"num_chunks", result.NumChunks,
		"max_boundary_loss", max(result.NumChunks-1, 0),
		"duration", result.Duration,
		"cached", result.Cached,
	)

	if err := printResult(c, result, cfg.Top); err != nil {
		return err
	}

	if cfg.Output != "" {
		s := &storage.Storage{}
		if err := s.WriteResult(cfg.Output, result, cfg.Format); err != nil {
			return err
		}
		summaryPath, err := manifest.GenerateSummary(result, cfg.Output, s)
		if err != nil {
			return err
		}
		stats, err := s.GetFileStats(cfg.Output)
		if err != nil {
			return err
		}
		logger.Info("Results written",
			"path", cfg.Output,
			"format", cfg.Format,
			"size", humanize.IBytes(uint64(stats.SizeBytes)),
			"summary", summaryPath,
		)
	}

	if cfg.Archive && !result.Cached {
		if err := archive(src, result, cfg.DBPath, logger); err != nil {
			return err
		}
	}

	return nil
}

// resolveConfig loads the optional config file and applies flag overrides.
// Only flags given on the command line override file values.
func resolveConfig(c *cli.Context) (*models.Config, error) {
	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("chunk-size") {
		size, err := models.ParseByteSize(c.String("chunk-size"))
		if err != nil {
			return nil, err
		}
		cfg.ChunkSize = size
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if c.IsSet("top") {
		cfg.Top = c.Int("top")
	}
	if c.IsSet("skip-stopwords") {
		cfg.SkipStopwords = c.Bool("skip-stopwords")
	}
	if c.IsSet("detect-language") {
		cfg.DetectLanguage = c.Bool("detect-language")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("format") {
		cfg.Format = models.OutputFormat(strings.ToLower(c.String("format")))
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("max-age") {
		maxAge, err := time.ParseDuration(c.String("max-age"))
		if err != nil {
			return nil, fmt.Errorf("invalid max-age duration: %w", err)
		}
		cfg.CacheTTL = maxAge
	}
	if c.IsSet("archive") {
		cfg.Archive = c.Bool("archive")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func lookupCache(cache *caching.Cache, key caching.RunKey, logger *slog.Logger) (*models.Result, bool) {
	if cache == nil {
		return nil, false
	}
	result, ok := cache.GetResult(key)
	if ok {
		logger.Info("Using cached result", "fingerprint", key.Fingerprint())
	}
	return result, ok
}

func detectLanguage(src *corpus.File, logger *slog.Logger) string {
	sample, err := src.Sample(detector.DefaultSampleSize)
	if err != nil {
		logger.Warn("Failed to sample corpus for language detection", "error", err)
		return ""
	}
	lang := detector.Detect(sample)
	logger.Info("Detected language", "language", lang.Name, "code", lang.Code, "confidence", lang.Confidence)
	return lang.Code
}

func archive(src *corpus.File, result *models.Result, dbPath string, logger *slog.Logger) error {
	database, err := dbpkg.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	hash, err := src.QuickHash()
	if err != nil {
		return err
	}

	runID, err := database.InsertRun(result, hash, 0)
	if err != nil {
		return fmt.Errorf("failed to archive run: %w", err)
	}
	logger.Info("Run archived", "run_id", runID, "db", database.Path())
	return nil
}

func printResult(c *cli.Context, result *models.Result, top int) error {
	w := common.Out(c)

	if err := mapreduce.PrintTopKeywords(w, result.Entries, top); err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}

	_, err := fmt.Fprintf(w, "\nTotal words: %d | Unique stems: %d | Chunks: %d | Workers: %d\n",
		result.TotalWords, result.UniqueStems, result.NumChunks, result.Workers)
	if err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}
	if result.Language != "" {
		if _, err := fmt.Fprintf(w, "Language: %s\n", result.Language); err != nil {
			return fmt.Errorf("failed to print results: %w", err)
		}
	}
	return nil
}
