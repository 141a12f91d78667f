package manifest

// Summary is a compact overview of one counting run: what was scanned, how
// it was partitioned and the top stems, without the full ranked table.
type Summary struct {
	GeneratedAt string   `json:"generated_at" yaml:"generated_at"`
	Corpus      string   `json:"corpus" yaml:"corpus"`
	CorpusSize  string   `json:"corpus_size" yaml:"corpus_size"`
	ChunkSize   string   `json:"chunk_size" yaml:"chunk_size"`
	NumChunks   int      `json:"num_chunks" yaml:"num_chunks"`
	Workers     int      `json:"workers" yaml:"workers"`
	TotalWords  int64    `json:"total_words" yaml:"total_words"`
	UniqueStems int      `json:"unique_stems" yaml:"unique_stems"`
	MaxBoundary int      `json:"max_boundary_loss" yaml:"max_boundary_loss"`
	Language    string   `json:"language,omitempty" yaml:"language,omitempty"`
	DurationMS  int64    `json:"duration_ms" yaml:"duration_ms"`
	Cached      bool     `json:"cached,omitempty" yaml:"cached,omitempty"`
	ResultPath  string   `json:"result_path,omitempty" yaml:"result_path,omitempty"`
	TopKeywords []string `json:"top_keywords" yaml:"top_keywords"`
}
