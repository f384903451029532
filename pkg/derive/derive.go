// Package derive maps a semantic analysis plus document facts to the final
// derived metadata: title, category, content type, quality score,
// complexity, reading time, and the truncated keyword/topic/entity lists.
//
// Derive is a pure function: identical inputs produce identical output,
// with no wall-clock dependence.
package derive

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dtnitsch/docmeta/models"
)

// Engine derives metadata according to an explicit configuration.
type Engine struct {
	cfg models.Config
}

// New builds a derivation engine.
func New(cfg models.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Derive computes the DerivedMetadata for one document.
func (e *Engine) Derive(doc models.DocumentInfo, ext models.ExtractedDocument, an models.SemanticAnalysis) models.DerivedMetadata {
	return models.DerivedMetadata{
		Title:                e.title(doc, an),
		Description:          e.description(an),
		Category:             e.classifyCategory(an),
		ContentType:          e.contentType(an),
		PrimaryLanguage:      an.Language,
		QualityScore:         e.qualityScore(ext, an),
		ComplexityLevel:      complexityLevel(an.TextStatistics),
		EstimatedReadingTime: e.readingTime(ext.WordCount),
		TopKeywords:          keywordWords(an.Keywords, e.cfg.TopKeywordCount),
		MainTopics:           truncate(an.Topics, e.cfg.MainTopicCount),
		KeyEntities:          entityTexts(an.Entities, e.cfg.KeyEntityCount),
	}
}

// title prefers a cleaned-up filename stem; content only fills in when the
// filename carries no signal.
func (e *Engine) title(doc models.DocumentInfo, an models.SemanticAnalysis) string {
	if stem := doc.FileStem; len(stem) > 3 {
		cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(stem)
		words := strings.Fields(cleaned)
		for i, w := range words {
			words[i] = titleWord(w)
		}
		if len(words) > 0 {
			return strings.Join(words, " ")
		}
	}

	if an.Summary != "" {
		first := an.Summary
		if i := strings.IndexAny(first, ".!?"); i >= 0 {
			first = first[:i]
		}
		first = strings.TrimSpace(first)
		if first != "" && len(first) < 100 {
			return first
		}
	}

	if len(an.Keywords) > 0 {
		n := len(an.Keywords)
		if n > 3 {
			n = 3
		}
		parts := make([]string, 0, n)
		for _, kw := range an.Keywords[:n] {
			parts = append(parts, titleWord(kw.Word))
		}
		return strings.Join(parts, " ")
	}

	if doc.Filename != "" {
		return doc.Filename
	}
	return "Untitled Document"
}

// description falls back from the extracted summary to a sentence built
// from topics and keywords.
func (e *Engine) description(an models.SemanticAnalysis) string {
	if len(an.Summary) > 20 {
		return an.Summary
	}

	var parts []string
	if len(an.Topics) > 0 {
		parts = append(parts, fmt.Sprintf("This document discusses %s.", strings.Join(truncate(an.Topics, 3), ", ")))
	}
	if len(an.Keywords) > 0 {
		parts = append(parts, fmt.Sprintf("Key themes include %s.", strings.Join(keywordWords(an.Keywords, 5), ", ")))
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return "Document content analysis completed."
}

// readingTime estimates reading duration at the configured speed, rounded
// up to whole minutes with a floor of one minute.
func (e *Engine) readingTime(wordCount int) string {
	wpm := e.cfg.ReadingSpeedWPM
	if wpm <= 0 {
		wpm = 200
	}

	minutes := int(math.Ceil(float64(wordCount) / float64(wpm)))
	if minutes < 1 {
		minutes = 1
	}

	switch {
	case minutes == 1:
		return "1 minute"
	case minutes < 60:
		return fmt.Sprintf("%d minutes", minutes)
	default:
		hours := minutes / 60
		rem := minutes % 60
		if rem == 0 {
			if hours == 1 {
				return "1 hour"
			}
			return fmt.Sprintf("%d hours", hours)
		}
		return fmt.Sprintf("%dh %dm", hours, rem)
	}
}

// titleWord upper-cases the first rune of w, not the first byte, so words
// starting with a non-ASCII letter title-case correctly.
func titleWord(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + w[size:]
}

func keywordWords(kws []models.Keyword, n int) []string {
	if n > len(kws) {
		n = len(kws)
	}
	out := make([]string, 0, n)
	for _, kw := range kws[:n] {
		out = append(out, kw.Word)
	}
	return out
}

func entityTexts(ents []models.Entity, n int) []string {
	if n > len(ents) {
		n = len(ents)
	}
	out := make([]string, 0, n)
	for _, e := range ents[:n] {
		out = append(out, e.Text)
	}
	return out
}

func truncate(list []string, n int) []string {
	if n > len(list) {
		n = len(list)
	}
	out := make([]string, n)
	copy(out, list[:n])
	return out
}
