// Package pipeline orchestrates per-document processing: validate, extract,
// analyze, derive, persist. A failed stage short-circuits the rest but still
// produces a metadata record describing the failure.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtnitsch/docmeta/models"
	"github.com/dtnitsch/docmeta/pkg/analyzer"
	"github.com/dtnitsch/docmeta/pkg/derive"
	"github.com/dtnitsch/docmeta/pkg/extract"
	"github.com/dtnitsch/docmeta/pkg/storage"
)

// Pipeline stages, recorded in error messages so a failure names where it
// happened.
const (
	StageValidate = "validate"
	StageExtract  = "extract"
	StageAnalyze  = "analyze"
	StageDerive   = "derive"
	StageSave     = "save"
)

// StageError wraps a failure with the stage it occurred in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result is the outcome of processing one document.
type Result struct {
	Record     models.MetadataRecord
	RecordPath string
}

// Processor runs the document pipeline. The clock is injected so record
// timestamps are controllable in tests.
type Processor struct {
	cfg       models.Config
	logger    *slog.Logger
	extractor *extract.Extractor
	analyzer  *analyzer.Analyzer
	deriver   *derive.Engine
	store     *storage.Storage
	now       func() time.Time

	// OnRecord, when set, is called after each document completes (success
	// or failure). Used by the CLI for progress reporting and run history.
	OnRecord func(path string, res Result, err error)
}

// New wires up a Processor with all collaborators.
func New(cfg models.Config, logger *slog.Logger, outputDir string) *Processor {
	return &Processor{
		cfg:       cfg,
		logger:    logger,
		extractor: extract.New(cfg, logger),
		analyzer:  analyzer.New(cfg, logger),
		deriver:   derive.New(cfg),
		store:     &storage.Storage{OutputDir: outputDir},
		now:       time.Now,
	}
}

// Store returns the storage collaborator, for callers that persist batch
// summaries alongside the records.
func (p *Processor) Store() *storage.Storage {
	return p.store
}

// ProcessDocument runs the full pipeline for one file. The returned record
// is always populated, even when err is non-nil; on failure it carries
// success=false and the error list instead of derived metadata.
func (p *Processor) ProcessDocument(ctx context.Context, path string) (Result, error) {
	started := p.now()
	record := models.MetadataRecord{
		ProcessingInfo: models.ProcessingInfo{
			RecordID:  uuid.NewString(),
			Timestamp: started.UTC().Format(time.RFC3339),
			Version:   models.Version,
			Errors:    []string{},
		},
	}

	docInfo, err := p.documentInfo(path)
	record.DocumentInfo = docInfo
	if err != nil {
		return p.fail(path, record, &StageError{Stage: StageValidate, Err: err})
	}

	if err := p.validate(path, docInfo); err != nil {
		return p.fail(path, record, &StageError{Stage: StageValidate, Err: err})
	}

	extracted, err := p.extractor.Extract(ctx, path)
	record.ExtractionInfo = extracted
	record.ExtractionInfo.Text = "" // full text does not belong in the record
	if err != nil {
		return p.fail(path, record, &StageError{Stage: StageExtract, Err: err})
	}

	analysis := p.analyzer.Analyze(extracted.Text)
	record.ContentAnalysis = analysis

	derived := p.deriver.Derive(docInfo, extracted, analysis)
	record.DerivedMetadata = &derived

	record.ProcessingInfo.Success = true

	recordPath, err := p.store.SaveRecord(path, record)
	if err != nil {
		return p.fail(path, record, &StageError{Stage: StageSave, Err: err})
	}

	p.logger.Info("processed document",
		"path", path,
		"record_id", record.ProcessingInfo.RecordID,
		"quality", derived.QualityScore,
		"duration", time.Since(started).String())

	res := Result{Record: record, RecordPath: recordPath}
	if p.OnRecord != nil {
		p.OnRecord(path, res, nil)
	}
	return res, nil
}

// ProcessFiles runs the pipeline over an explicit file list, in order. A
// document failure is counted and recorded, not fatal; only context
// cancellation stops the batch early.
func (p *Processor) ProcessFiles(ctx context.Context, paths []string) (models.BatchStats, []Result, error) {
	stats := models.BatchStats{TotalFiles: len(paths), Errors: []string{}}
	results := make([]Result, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, results, err
		}

		res, err := p.ProcessDocument(ctx, path)
		results = append(results, res)
		if err != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		stats.Successful++
	}
	return stats, results, nil
}

// ProcessDirectory discovers supported documents under dir (optionally
// recursive), sorted by path for deterministic order, and processes them.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string, recursive bool) (models.BatchStats, []Result, error) {
	paths, err := DiscoverFiles(dir, recursive)
	if err != nil {
		return models.BatchStats{}, nil, err
	}
	return p.ProcessFiles(ctx, paths)
}

// DiscoverFiles lists supported document files under dir in sorted order.
// Metadata records from previous runs are skipped.
func DiscoverFiles(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, "_metadata.json") {
			return nil
		}
		if extract.IsSupported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// fail finalizes a failure record, persists it, and returns the stage error.
func (p *Processor) fail(path string, record models.MetadataRecord, stageErr *StageError) (Result, error) {
	record.ProcessingInfo.Success = false
	record.ProcessingInfo.Errors = append(record.ProcessingInfo.Errors, stageErr.Error())

	p.logger.Warn("document processing failed",
		"path", path, "stage", stageErr.Stage, "error", stageErr.Err.Error())

	res := Result{Record: record}
	if recordPath, err := p.store.SaveRecord(path, record); err == nil {
		res.RecordPath = recordPath
	} else {
		p.logger.Error("failed to save failure record", "path", path, "error", err.Error())
	}

	if p.OnRecord != nil {
		p.OnRecord(path, res, stageErr)
	}
	return res, stageErr
}

func (p *Processor) validate(path string, info models.DocumentInfo) error {
	if !extract.IsSupported(path) {
		return fmt.Errorf("unsupported file format: %q", info.FileExtension)
	}
	if max := p.cfg.MaxFileSizeBytes; max > 0 && info.FileSizeBytes > max {
		return fmt.Errorf("file too large: %d bytes (limit %d)", info.FileSizeBytes, max)
	}
	if info.FileSizeBytes == 0 {
		return fmt.Errorf("file is empty")
	}
	return nil
}

// documentInfo gathers filesystem facts about path, including a SHA-256
// content hash.
func (p *Processor) documentInfo(path string) (models.DocumentInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	ext := strings.ToLower(filepath.Ext(path))
	base := filepath.Base(path)

	info := models.DocumentInfo{
		Filename:      base,
		FileStem:      strings.TrimSuffix(base, filepath.Ext(base)),
		FilePath:      abs,
		FileExtension: ext,
		DocumentType:  extract.DocumentType(path),
		MimeType:      mimeTypes[ext],
	}

	stat, err := os.Stat(path)
	if err != nil {
		return info, fmt.Errorf("failed to stat file: %w", err)
	}
	info.FileSizeBytes = stat.Size()
	info.FileSizeMB = float64(stat.Size()) / (1024 * 1024)
	info.ModifiedDate = stat.ModTime().UTC().Format(time.RFC3339)

	hash, err := fileHash(path)
	if err != nil {
		return info, err
	}
	info.FileHash = hash
	return info, nil
}

var mimeTypes = map[string]string{
	".txt":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".pdf":      "application/pdf",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".html":     "text/html",
	".htm":      "text/html",
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
