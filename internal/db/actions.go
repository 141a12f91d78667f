package db

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/wordfreq/internal/common"
	dbpkg "github.com/dtnitsch/wordfreq/pkg/db"
	"github.com/dtnitsch/wordfreq/pkg/mapreduce"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	w := common.Out(c)
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	// Print table header
	fmt.Fprintf(w, "%-6s %-20s %-10s %-8s %-8s %-12s %-8s %-40s\n",
		"ID", "Created", "Size", "Chunks", "Workers", "Words", "Lang", "Corpus")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, r := range runs {
		fmt.Fprintf(w, "%-6d %-20s %-10s %-8d %-8d %-12d %-8s %-40s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			humanize.IBytes(uint64(r.CorpusSize)),
			r.NumChunks,
			r.WorkerCount,
			r.TotalWords,
			orDash(r.Language),
			r.CorpusPath,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'wordfreq run <id>' to see the ranked stems\n")

	return nil
}

// RunAction shows one archived run, or the latest when no ID is given.
func RunAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	if c.Bool("delete") {
		if err := database.DeleteRun(runID); err != nil {
			return err
		}
		fmt.Fprintf(common.Out(c), "Deleted run %d\n", runID)
		return nil
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return err
	}
	entries, err := database.GetRunStems(runID, c.Int("top"))
	if err != nil {
		return err
	}

	w := common.Out(c)
	if c.Bool("yaml") {
		out := runView{
			RunID:       run.RunID,
			Corpus:      run.CorpusPath,
			CorpusSize:  humanize.IBytes(uint64(run.CorpusSize)),
			CorpusHash:  run.CorpusHash,
			ChunkSize:   humanize.IBytes(uint64(run.ChunkSize)),
			NumChunks:   run.NumChunks,
			Workers:     run.WorkerCount,
			TotalWords:  run.TotalWords,
			UniqueStems: run.UniqueStems,
			Language:    run.Language,
			DurationMS:  run.Duration.Milliseconds(),
			CreatedAt:   run.CreatedAt.Format("2006-01-02 15:04:05"),
			TopKeywords: mapreduce.TopKeywords(entries, 0),
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode run: %w", err)
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "Run %d\n", run.RunID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Corpus:      %s (%s, hash %s)\n", run.CorpusPath, humanize.IBytes(uint64(run.CorpusSize)), orDash(run.CorpusHash))
	fmt.Fprintf(w, "Chunks:      %d x %s, %d workers\n", run.NumChunks, humanize.IBytes(uint64(run.ChunkSize)), run.WorkerCount)
	fmt.Fprintf(w, "Words:       %d total, %d unique stems\n", run.TotalWords, run.UniqueStems)
	fmt.Fprintf(w, "Language:    %s\n", orDash(run.Language))
	fmt.Fprintf(w, "Duration:    %s\n", run.Duration)

	fmt.Fprintln(w)
	return mapreduce.PrintTopKeywords(w, entries, 0)
}

type runView struct {
	RunID       int64    `yaml:"run_id"`
	Corpus      string   `yaml:"corpus"`
	CorpusSize  string   `yaml:"corpus_size"`
	CorpusHash  string   `yaml:"corpus_hash,omitempty"`
	ChunkSize   string   `yaml:"chunk_size"`
	NumChunks   int      `yaml:"num_chunks"`
	Workers     int      `yaml:"workers"`
	TotalWords  int64    `yaml:"total_words"`
	UniqueStems int      `yaml:"unique_stems"`
	Language    string   `yaml:"language,omitempty"`
	DurationMS  int64    `yaml:"duration_ms"`
	CreatedAt   string   `yaml:"created_at"`
	TopKeywords []string `yaml:"top_keywords"`
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
