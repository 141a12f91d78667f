package models

import "time"

// RankedEntry is one row of the ranked frequency table.
type RankedEntry struct {
	Stem  string `json:"stem" yaml:"stem"`
	Count int64  `json:"count" yaml:"count"`
}

// Result is the output of one counting run. Entries are ordered by count
// descending, then by stem ascending.
type Result struct {
	Corpus      string        `json:"corpus,omitempty" yaml:"corpus,omitempty"`
	CorpusSize  int64         `json:"corpus_size" yaml:"corpus_size"`
	ChunkSize   int64         `json:"chunk_size" yaml:"chunk_size"`
	NumChunks   int           `json:"num_chunks" yaml:"num_chunks"`
	Workers     int           `json:"workers" yaml:"workers"`
	TotalWords  int64         `json:"total_words" yaml:"total_words"`
	UniqueStems int           `json:"unique_stems" yaml:"unique_stems"`
	Language    string        `json:"language,omitempty" yaml:"language,omitempty"`
	Duration    time.Duration `json:"duration_ns" yaml:"duration"`
	Cached      bool          `json:"-" yaml:"-"`
	Entries     []RankedEntry `json:"entries" yaml:"entries"`
}
