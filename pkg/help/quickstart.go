package help

const QuickstartYAML = `# wordfreq Quick Start

commands:
  count: |
    wordfreq count large_text.txt

  count_tuned: |
    wordfreq count --chunk-size 4MiB --workers 8 --top 50 large_text.txt

  count_to_file: |
    wordfreq count --output results/words.tsv --format tsv large_text.txt

  generate: |
    wordfreq generate --dict-dir Words --vocab 200 --size 1GiB --out large_text.txt

  ingest: |
    wordfreq ingest --from "pages/*.html" --out corpus.txt
    wordfreq ingest --urls "https://example.com/a,https://example.com/b" --out corpus.txt

  archive: |
    wordfreq count --archive large_text.txt
    wordfreq runs
    wordfreq run 3

config_file: |
  chunk_size: 4 MiB
  worker_count: 8
  top: 50
  skip_stopwords: true
  format: json
  output: results/words.json
  cache_dir: .wordfreq-cache
  cache_ttl: 24h

counting_rules:
  - "Words are runs of ASCII letters; everything else separates words"
  - "Words longer than 3 letters are lower-cased and lose one suffix: ing ed ly ful est ity es s"
  - "Ranking: count descending, then stem ascending"
  - "Output is identical for any worker count"
  - "A word cut by a chunk boundary is dropped: at most one per boundary"

output_files:
  - "<output> (tsv: stem<TAB>count per line; json/yaml: full result)"
  - "<output minus extension>.summary.json (totals and top stems)"

error_behavior:
  - "Missing or unreadable corpus: fails before any worker starts"
  - "Empty corpus: empty table, no error"
  - "Exit codes: 0=success, 1=failure"
`
