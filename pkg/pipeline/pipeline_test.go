package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/docmeta/models"
)

func testProcessor(t *testing.T, outputDir string) *Processor {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	p := New(models.DefaultConfig(), logger, outputDir)
	p.now = func() time.Time { return time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC) }
	return p
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

const sampleText = "The research team completed the database migration. " +
	"Performance improved across every query. The rollout finished on schedule."

func TestProcessDocument_Success(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "migration_notes.txt", sampleText)
	p := testProcessor(t, dir)

	res, err := p.ProcessDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessDocument() error = %v", err)
	}

	record := res.Record
	if !record.ProcessingInfo.Success {
		t.Error("ProcessingInfo.Success = false, want true")
	}
	if record.ProcessingInfo.RecordID == "" {
		t.Error("RecordID is empty")
	}
	if record.ProcessingInfo.Timestamp != "2024-01-05T10:00:00Z" {
		t.Errorf("Timestamp = %q, want injected clock value", record.ProcessingInfo.Timestamp)
	}
	if record.ProcessingInfo.Version != models.Version {
		t.Errorf("Version = %q, want %q", record.ProcessingInfo.Version, models.Version)
	}

	info := record.DocumentInfo
	if info.Filename != "migration_notes.txt" || info.FileStem != "migration_notes" {
		t.Errorf("DocumentInfo names = %q/%q", info.Filename, info.FileStem)
	}
	if info.DocumentType != "Text Document" {
		t.Errorf("DocumentType = %q, want Text Document", info.DocumentType)
	}
	if info.MimeType != "text/plain" {
		t.Errorf("MimeType = %q, want text/plain", info.MimeType)
	}
	if len(info.FileHash) != 64 {
		t.Errorf("FileHash length = %d, want 64 hex chars", len(info.FileHash))
	}
	if info.FileSizeBytes != int64(len(sampleText)) {
		t.Errorf("FileSizeBytes = %d, want %d", info.FileSizeBytes, len(sampleText))
	}

	if record.ExtractionInfo.Text != "" {
		t.Error("extracted text leaked into the persisted record")
	}
	if !record.ExtractionInfo.Success || record.ExtractionInfo.WordCount == 0 {
		t.Errorf("ExtractionInfo = %+v, want successful with words", record.ExtractionInfo)
	}

	if record.DerivedMetadata == nil {
		t.Fatal("DerivedMetadata missing on success")
	}
	if record.DerivedMetadata.Title != "Migration Notes" {
		t.Errorf("Title = %q, want Migration Notes", record.DerivedMetadata.Title)
	}
	if record.DerivedMetadata.QualityScore <= 0 {
		t.Errorf("QualityScore = %v, want > 0", record.DerivedMetadata.QualityScore)
	}

	// The record file exists and round-trips.
	data, err := os.ReadFile(res.RecordPath)
	if err != nil {
		t.Fatalf("record file not written: %v", err)
	}
	var loaded models.MetadataRecord
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("record file is not valid JSON: %v", err)
	}
	if loaded.ProcessingInfo.RecordID != record.ProcessingInfo.RecordID {
		t.Error("persisted record differs from returned record")
	}
}

func TestProcessDocument_EmptyFileFailsValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "empty.txt", "")
	p := testProcessor(t, dir)

	res, err := p.ProcessDocument(context.Background(), path)
	if err == nil {
		t.Fatal("ProcessDocument() error = nil for empty file")
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageValidate {
		t.Errorf("error = %v, want validate stage error", err)
	}

	// Failure still produces and persists a record.
	if res.Record.ProcessingInfo.Success {
		t.Error("failure record marked successful")
	}
	if len(res.Record.ProcessingInfo.Errors) == 0 {
		t.Error("failure record has no errors")
	}
	if res.Record.DerivedMetadata != nil {
		t.Error("failure record carries derived metadata")
	}
	if res.RecordPath == "" {
		t.Error("failure record was not persisted")
	}
}

func TestProcessDocument_TooLarge(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "big.txt", strings.Repeat("word ", 100))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := models.DefaultConfig()
	cfg.MaxFileSizeBytes = 10
	p := New(cfg, logger, dir)

	_, err := p.ProcessDocument(context.Background(), path)
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("ProcessDocument() error = %v, want file too large", err)
	}
}

func TestProcessFiles_CountsAndOrder(t *testing.T) {
	dir := t.TempDir()
	good1 := writeDoc(t, dir, "a_first.txt", sampleText)
	bad := writeDoc(t, dir, "b_broken.csv", "unsupported")
	good2 := writeDoc(t, dir, "c_second.txt", sampleText)
	p := testProcessor(t, dir)

	var seen []string
	p.OnRecord = func(path string, res Result, err error) {
		seen = append(seen, path)
	}

	stats, results, err := p.ProcessFiles(context.Background(), []string{good1, bad, good2})
	if err != nil {
		t.Fatalf("ProcessFiles() error = %v", err)
	}

	if stats.TotalFiles != 3 || stats.Successful != 2 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 3 total, 2 ok, 1 failed", stats)
	}
	if len(stats.Errors) != 1 || !strings.Contains(stats.Errors[0], "b_broken.csv") {
		t.Errorf("stats.Errors = %v, want one entry naming the failed file", stats.Errors)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want one record per input", len(results))
	}

	// Input order is preserved in both results and callbacks.
	wantOrder := []string{good1, bad, good2}
	for i, path := range wantOrder {
		if seen[i] != path {
			t.Errorf("callback order[%d] = %q, want %q", i, seen[i], path)
		}
	}
	if results[1].Record.ProcessingInfo.Success {
		t.Error("failed document's record marked successful")
	}
}

func TestProcessFiles_ContextCancellation(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeDoc(t, dir, "a.txt", sampleText),
		writeDoc(t, dir, "b.txt", sampleText),
	}
	p := testProcessor(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, results, err := p.ProcessFiles(ctx, paths)
	if err == nil {
		t.Fatal("ProcessFiles() error = nil with cancelled context")
	}
	if len(results) != 0 {
		t.Errorf("processed %d documents after cancellation, want 0", len(results))
	}
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "b.txt", "x")
	writeDoc(t, dir, "a.md", "x")
	writeDoc(t, dir, "skip.csv", "x")
	writeDoc(t, dir, "old_metadata.json", "{}")

	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeDoc(t, sub, "c.txt", "x")

	flat, err := DiscoverFiles(dir, false)
	if err != nil {
		t.Fatalf("DiscoverFiles() error = %v", err)
	}
	if len(flat) != 2 {
		t.Fatalf("DiscoverFiles(flat) = %v, want a.md and b.txt", flat)
	}
	if filepath.Base(flat[0]) != "a.md" || filepath.Base(flat[1]) != "b.txt" {
		t.Errorf("DiscoverFiles() not sorted: %v", flat)
	}

	recursive, err := DiscoverFiles(dir, true)
	if err != nil {
		t.Fatalf("DiscoverFiles(recursive) error = %v", err)
	}
	if len(recursive) != 3 {
		t.Errorf("DiscoverFiles(recursive) = %v, want 3 files", recursive)
	}

	if _, err := DiscoverFiles(filepath.Join(dir, "missing"), false); err == nil {
		t.Error("DiscoverFiles(missing) error = nil")
	}
}
