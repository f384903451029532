// Package storage persists metadata records and batch summaries next to the
// documents they describe (or in a dedicated output directory).
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/docmeta/models"
)

// Storage writes metadata records as pretty-printed JSON. OutputDir empty
// means records land beside their source documents.
type Storage struct {
	OutputDir string
}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// RecordPath returns where the metadata record for a document goes:
// <stem>_metadata.json in OutputDir, or in the document's directory when
// OutputDir is unset.
func (s *Storage) RecordPath(documentPath string) string {
	stem := strings.TrimSuffix(filepath.Base(documentPath), filepath.Ext(documentPath))
	dir := s.OutputDir
	if dir == "" {
		dir = filepath.Dir(documentPath)
	}
	return filepath.Join(dir, stem+"_metadata.json")
}

// SaveRecord writes the record as indented JSON and returns the path written.
func (s *Storage) SaveRecord(documentPath string, record models.MetadataRecord) (string, error) {
	path := s.RecordPath(documentPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding record: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("error saving record: %w", err)
	}
	return path, nil
}

// LoadRecord reads a previously saved metadata record.
func (s *Storage) LoadRecord(path string) (models.MetadataRecord, error) {
	var record models.MetadataRecord
	data, err := os.ReadFile(path)
	if err != nil {
		return record, fmt.Errorf("error reading record: %w", err)
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("error decoding record: %w", err)
	}
	return record, nil
}

// SaveBatchSummary writes the batch statistics as YAML.
func (s *Storage) SaveBatchSummary(path string, stats models.BatchStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("error encoding batch summary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error saving batch summary: %w", err)
	}
	return nil
}

// HasFile reports whether a path exists.
func (s *Storage) HasFile(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// GetFileStats returns size and modification time via os.Stat.
func (s *Storage) GetFileStats(path string) (*FileStats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}
	return &FileStats{SizeBytes: info.Size(), ModTime: info.ModTime()}, nil
}
