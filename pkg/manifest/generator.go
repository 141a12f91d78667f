package manifest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/wordfreq/models"
	"github.com/dtnitsch/wordfreq/pkg/mapreduce"
	"github.com/dtnitsch/wordfreq/pkg/storage"
	"github.com/dustin/go-humanize"
)

const summaryKeywords = 25

// Build creates the summary of a run. resultPath may be empty when the
// ranked table was only printed.
func Build(result *models.Result, resultPath string) Summary {
	return Summary{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Corpus:      result.Corpus,
		CorpusSize:  humanize.IBytes(uint64(result.CorpusSize)),
		ChunkSize:   humanize.IBytes(uint64(result.ChunkSize)),
		NumChunks:   result.NumChunks,
		Workers:     result.Workers,
		TotalWords:  result.TotalWords,
		UniqueStems: result.UniqueStems,
		MaxBoundary: max(result.NumChunks-1, 0),
		Language:    result.Language,
		DurationMS:  result.Duration.Milliseconds(),
		Cached:      result.Cached,
		ResultPath:  resultPath,
		TopKeywords: mapreduce.TopKeywords(result.Entries, summaryKeywords),
	}
}

// SummaryPath returns where the summary of resultPath is written.
func SummaryPath(resultPath string) string {
	if resultPath == "" {
		return fmt.Sprintf("results/summary-%s.json", time.Now().Format("2006-01-02"))
	}
	base := strings.TrimSuffix(resultPath, ".tsv")
	base = strings.TrimSuffix(base, ".json")
	base = strings.TrimSuffix(base, ".yaml")
	return base + ".summary.json"
}

// GenerateSummary writes the summary of a run as indented JSON and returns
// the path it was saved to.
func GenerateSummary(result *models.Result, resultPath string, s *storage.Storage) (string, error) {
	summary := Build(result, resultPath)

	manifestPath := SummaryPath(resultPath)
	manifestData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	if err := s.SaveFile(manifestPath, manifestData); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}

	return manifestPath, nil
}
