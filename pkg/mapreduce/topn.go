package mapreduce

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dtnitsch/wordfreq/models"
	"github.com/dtnitsch/wordfreq/pkg/analytics"
)

// RankOption adjusts which stems make it into a ranking.
type RankOption func(*rankOptions)

type rankOptions struct {
	skipStopwords bool
}

// SkipStopwords drops the stems of common English words.
func SkipStopwords(skip bool) RankOption {
	return func(o *rankOptions) {
		o.skipStopwords = skip
	}
}

// Rank orders counts by count descending. Equal counts are ordered by stem
// so that the same input always produces the same table.
func Rank(counts analytics.Counter, opts ...RankOption) []models.RankedEntry {
	var o rankOptions
	for _, opt := range opts {
		opt(&o)
	}

	ranked := make([]models.RankedEntry, 0, len(counts))
	for stem, count := range counts {
		if o.skipStopwords && analytics.IsStopword(stem) {
			continue
		}
		ranked = append(ranked, models.RankedEntry{Stem: stem, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Stem < ranked[j].Stem
	})

	return ranked
}

// TopKeywords returns the first n ranked entries formatted as "stem:count"
// (e.g., "learn:1153"). n <= 0 returns every entry.
func TopKeywords(ranked []models.RankedEntry, n int) []string {
	limit := clampLimit(n, len(ranked))

	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", ranked[i].Stem, ranked[i].Count)
	}

	return keywords
}

// PrintTopKeywords writes the first n ranked entries as an aligned table.
// n <= 0 writes every entry.
func PrintTopKeywords(w io.Writer, ranked []models.RankedEntry, n int) error {
	limit := clampLimit(n, len(ranked))

	if _, err := fmt.Fprintf(w, "Word\t\tFrequency\n%s\n", strings.Repeat("-", 24)); err != nil {
		return err
	}
	for i := 0; i < limit; i++ {
		pad := max(16-len(ranked[i].Stem), 1)
		if _, err := fmt.Fprintf(w, "%s%s%d\n", ranked[i].Stem, strings.Repeat(" ", pad), ranked[i].Count); err != nil {
			return err
		}
	}
	return nil
}

func clampLimit(n, total int) int {
	if n <= 0 || n > total {
		return total
	}
	return n
}
