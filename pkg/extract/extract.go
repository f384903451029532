// Package extract turns document files into plain text. Supported formats:
//
//   - .txt          — direct read (encoding tolerant)
//   - .md/.markdown — direct read with markdown markers stripped
//   - .pdf          — pdfcpu content-stream extraction with quality metrics
//   - .docx         — word/document.xml from the ZIP archive
//   - .html/.htm    — go-readability article extraction, goquery fallback
//
// The core pipeline depends only on the ExtractedDocument contract, not on
// any format specifics.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dtnitsch/docmeta/models"
)

// supportedFormats maps file extensions to document type names.
var supportedFormats = map[string]string{
	".txt":      "Text Document",
	".md":       "Markdown Document",
	".markdown": "Markdown Document",
	".pdf":      "PDF Document",
	".docx":     "Word Document",
	".html":     "HTML Document",
	".htm":      "HTML Document",
}

// SupportedFormats returns a copy of the extension → document type table.
func SupportedFormats() map[string]string {
	out := make(map[string]string, len(supportedFormats))
	for k, v := range supportedFormats {
		out[k] = v
	}
	return out
}

// DocumentType returns the human-readable type for a path, or
// "Unknown Document" for unsupported extensions.
func DocumentType(path string) string {
	if t, ok := supportedFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return "Unknown Document"
}

// IsSupported reports whether the file extension has an extractor.
func IsSupported(path string) bool {
	_, ok := supportedFormats[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extractor dispatches extraction by file extension.
type Extractor struct {
	cfg    models.Config
	logger *slog.Logger
}

// New builds an Extractor.
func New(cfg models.Config, logger *slog.Logger) *Extractor {
	return &Extractor{cfg: cfg, logger: logger}
}

// Extract reads path and returns its textual content. On failure the
// returned document still carries the extraction method and the error
// string, so callers can persist a faithful extraction_info block.
func (x *Extractor) Extract(ctx context.Context, path string) (models.ExtractedDocument, error) {
	if err := ctx.Err(); err != nil {
		return models.ExtractedDocument{}, err
	}

	ext := strings.ToLower(filepath.Ext(path))

	var doc models.ExtractedDocument
	var err error

	switch ext {
	case ".txt":
		doc, err = x.extractText(path)
	case ".md", ".markdown":
		doc, err = x.extractMarkdown(path)
	case ".pdf":
		doc, err = x.extractPDF(path)
	case ".docx":
		doc, err = x.extractDocx(path)
	case ".html", ".htm":
		doc, err = x.extractHTML(path)
	default:
		doc = models.ExtractedDocument{}
		err = fmt.Errorf("unsupported file format: %q", ext)
	}

	if err != nil {
		doc.Success = false
		doc.Error = err.Error()
		return doc, err
	}

	doc.Text = cleanText(doc.Text)
	doc.WordCount = len(strings.Fields(doc.Text))
	doc.CharacterCount = len(doc.Text)
	doc.Success = true

	x.logger.Debug("extracted document",
		"path", path, "method", doc.ExtractionMethod,
		"pages", doc.PageCount, "words", doc.WordCount)
	return doc, nil
}

// cleanText normalizes extracted text: horizontal whitespace collapses to
// single spaces, non-printable characters drop out, and paragraph breaks
// (blank lines) survive so downstream paragraph counting still works.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, len(lines))
	for i, line := range lines {
		var sb strings.Builder
		prevSpace := false
		for _, r := range line {
			switch {
			case r == ' ' || r == '\t':
				if !prevSpace && sb.Len() > 0 {
					sb.WriteByte(' ')
					prevSpace = true
				}
			case unicode.IsPrint(r):
				sb.WriteRune(r)
				prevSpace = false
			}
		}
		cleaned[i] = strings.TrimRight(sb.String(), " ")
	}

	// Collapse runs of blank lines into a single paragraph break.
	var out []string
	blank := 0
	for _, line := range cleaned {
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}
