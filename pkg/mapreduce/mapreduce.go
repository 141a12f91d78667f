package mapreduce

import (
	"github.com/dtnitsch/wordfreq/pkg/analytics"
	"github.com/dtnitsch/wordfreq/pkg/partition"
	"github.com/dtnitsch/wordfreq/pkg/tokenizer"
)

// Map tokenizes one chunk, stems every token and adds it to the worker's
// local counter. It returns the number of tokens counted.
func Map(data []byte, chunk partition.Chunk, local analytics.Counter) int64 {
	var n int64
	s := tokenizer.NewScanner(data, chunk.First, chunk.Last)
	for s.Scan() {
		local.AddToken(s.Token())
		n++
	}
	return n
}

// Reduce aggregates the per-worker counters into a single counter. It must
// only be called once every worker has stopped writing to its counter.
// Addition is commutative, so the order of intermediate does not matter.
func Reduce(intermediate []analytics.Counter) analytics.Counter {
	size := 0
	for _, counts := range intermediate {
		size = max(size, len(counts))
	}
	finalResults := make(analytics.Counter, size)

	for _, counts := range intermediate {
		for stem, count := range counts {
			finalResults[stem] += count
		}
	}

	return finalResults
}
