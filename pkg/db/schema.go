package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per completed counting run
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    corpus_path TEXT NOT NULL,
    corpus_size INTEGER NOT NULL,
    corpus_hash TEXT,             -- xxh3 of size + first/last 64 KiB
    chunk_size INTEGER NOT NULL,
    worker_count INTEGER NOT NULL,
    num_chunks INTEGER NOT NULL,
    total_words INTEGER NOT NULL,
    unique_stems INTEGER NOT NULL,
    language TEXT,
    duration_ms INTEGER NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_corpus ON runs(corpus_path);
CREATE INDEX IF NOT EXISTS idx_runs_hash ON runs(corpus_hash);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- Run stems: the ranked table of a run, rank is 1-based
CREATE TABLE IF NOT EXISTS run_stems (
    run_id INTEGER NOT NULL,
    rank INTEGER NOT NULL,
    stem TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (run_id, rank),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_stems_stem ON run_stems(stem);
`
