package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Run represents one processing invocation.
type Run struct {
	RunID        int64
	StartedAt    time.Time
	FinishedAt   sql.NullTime
	Source       string
	FileCount    int
	SuccessCount int
	FailedCount  int
	ConfigPath   string
}

// Document represents one document outcome within a run.
type Document struct {
	DocumentID       int64
	RunID            int64
	RecordID         string
	FilePath         string
	DocumentType     string
	ExtractionMethod string
	WordCount        int
	QualityScore     float64
	Category         string
	Language         string
	Success          bool
	ErrorMessage     string
	RecordPath       string
	ProcessedAt      time.Time
}

// CreateRun inserts a new run row and returns its ID.
func (db *DB) CreateRun(source string, fileCount int, configPath string) (int64, error) {
	result, err := db.Exec(
		`INSERT INTO runs (source, file_count, config_path) VALUES (?, ?, ?)`,
		source, fileCount, configPath,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// FinishRun records final counts and the completion timestamp.
func (db *DB) FinishRun(runID int64, successCount, failedCount int) error {
	_, err := db.Exec(
		`UPDATE runs SET finished_at = CURRENT_TIMESTAMP, success_count = ?, failed_count = ? WHERE run_id = ?`,
		successCount, failedCount, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// InsertDocument records one document outcome for a run.
func (db *DB) InsertDocument(doc Document) (int64, error) {
	result, err := db.Exec(
		`INSERT INTO documents
			(run_id, record_id, file_path, document_type, extraction_method,
			 word_count, quality_score, category, language, success, error_message, record_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.RunID, doc.RecordID, doc.FilePath, doc.DocumentType, doc.ExtractionMethod,
		doc.WordCount, doc.QualityScore, doc.Category, doc.Language,
		doc.Success, doc.ErrorMessage, doc.RecordPath,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}
	docID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get document ID: %w", err)
	}
	return docID, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(
		`SELECT run_id, started_at, finished_at, source, file_count,
		        success_count, failed_count, COALESCE(config_path, '')
		 FROM runs ORDER BY started_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.StartedAt, &r.FinishedAt, &r.Source,
			&r.FileCount, &r.SuccessCount, &r.FailedCount, &r.ConfigPath); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListRunDocuments returns the document outcomes of a run in processing order.
func (db *DB) ListRunDocuments(runID int64) ([]Document, error) {
	rows, err := db.Query(
		`SELECT document_id, run_id, record_id, file_path,
		        COALESCE(document_type, ''), COALESCE(extraction_method, ''),
		        word_count, COALESCE(quality_score, 0), COALESCE(category, ''),
		        COALESCE(language, ''), success, COALESCE(error_message, ''),
		        COALESCE(record_path, ''), processed_at
		 FROM documents WHERE run_id = ? ORDER BY document_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list run documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.DocumentID, &d.RunID, &d.RecordID, &d.FilePath,
			&d.DocumentType, &d.ExtractionMethod, &d.WordCount, &d.QualityScore,
			&d.Category, &d.Language, &d.Success, &d.ErrorMessage,
			&d.RecordPath, &d.ProcessedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
