package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/wordfreq/models"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run is one archived counting run.
type Run struct {
	RunID       int64
	CorpusPath  string
	CorpusSize  int64
	CorpusHash  string
	ChunkSize   int64
	WorkerCount int
	NumChunks   int
	TotalWords  int64
	UniqueStems int
	Language    string
	Duration    time.Duration
	CreatedAt   time.Time
}

// InsertRun archives a result and the first keep entries of its ranked
// table (keep <= 0 archives every entry). Returns the run_id.
func (db *DB) InsertRun(result *models.Result, corpusHash string, keep int) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // No-op after commit

	res, err := tx.Exec(`
		INSERT INTO runs (corpus_path, corpus_size, corpus_hash, chunk_size, worker_count,
		                  num_chunks, total_words, unique_stems, language, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, result.Corpus, result.CorpusSize, corpusHash, result.ChunkSize, result.Workers,
		result.NumChunks, result.TotalWords, result.UniqueStems, result.Language, result.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO run_stems (run_id, rank, stem, count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare stem insert: %w", err)
	}
	defer stmt.Close()

	entries := result.Entries
	if keep > 0 && keep < len(entries) {
		entries = entries[:keep]
	}
	for i, e := range entries {
		if _, err := stmt.Exec(runID, i+1, e.Stem, e.Count); err != nil {
			return 0, fmt.Errorf("failed to insert stem %q: %w", e.Stem, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `run_id, corpus_path, corpus_size, COALESCE(corpus_hash, ''), chunk_size, worker_count,
		       num_chunks, total_words, unique_stems, COALESCE(language, ''), duration_ms, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		r          Run
		durationMS int64
	)
	err := row.Scan(&r.RunID, &r.CorpusPath, &r.CorpusSize, &r.CorpusHash, &r.ChunkSize, &r.WorkerCount,
		&r.NumChunks, &r.TotalWords, &r.UniqueStems, &r.Language, &durationMS, &r.CreatedAt)
	r.Duration = time.Duration(durationMS) * time.Millisecond
	return r, err
}

// GetRunByID returns a single run.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	row := db.QueryRow("SELECT "+runColumns+" FROM runs WHERE run_id = ?", runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// GetLatestRunID returns the most recent run_id.
func (db *DB) GetLatestRunID() (int64, error) {
	var runID int64
	err := db.QueryRow("SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1").Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: archive is empty", ErrRunNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}

// ListRuns returns runs newest first. limit <= 0 returns all runs.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY run_id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// GetRunStems returns the archived ranked table of a run in rank order.
// limit <= 0 returns every archived entry.
func (db *DB) GetRunStems(runID int64, limit int) ([]models.RankedEntry, error) {
	query := "SELECT stem, count FROM run_stems WHERE run_id = ? ORDER BY rank"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run stems: %w", err)
	}
	defer rows.Close()

	var entries []models.RankedEntry
	for rows.Next() {
		var e models.RankedEntry
		if err := rows.Scan(&e.Stem, &e.Count); err != nil {
			return nil, fmt.Errorf("failed to scan stem: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// DeleteRun removes a run and its stems.
func (db *DB) DeleteRun(runID int64) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// foreign_keys is a per-connection pragma, so don't rely on the cascade.
	if _, err := tx.Exec("DELETE FROM run_stems WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("failed to delete run stems: %w", err)
	}
	res, err := tx.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	return tx.Commit()
}
