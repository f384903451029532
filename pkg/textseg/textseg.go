// Package textseg splits raw text into sentences, normalized word tokens,
// and paragraphs using punctuation and whitespace heuristics. All functions
// are pure; empty input yields empty results, never an error.
//
// Known imprecision: sentence splitting treats every terminal punctuation
// run as a boundary, so abbreviations like "Dr." produce a spurious split.
package textseg

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/docmeta/models"
)

var (
	sentenceBoundary  = regexp.MustCompile(`[.!?]+`)
	paragraphBoundary = regexp.MustCompile(`\n[ \t]*\n`)
)

// Sentences returns the ordered non-empty sentences of text, trimmed,
// retaining their terminal punctuation so extracts stay verbatim.
func Sentences(text string) []string {
	sentences := make([]string, 0, 8)
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[start:loc[1]])
		if strings.Trim(s, ".!? \t\r\n") != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// Words returns the ordered normalized word tokens of text: lower-cased,
// edge punctuation stripped, empty tokens discarded.
func Words(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		w = strings.TrimFunc(w, func(r rune) bool {
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Paragraphs counts the non-empty paragraphs of text, separated by blank
// lines or double newlines.
func Paragraphs(text string) int {
	count := 0
	for _, p := range paragraphBoundary.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	return count
}

// Stats computes TextStatistics for text. Word counting here follows raw
// whitespace fields, not normalized tokens, so character averages reflect
// the text as written.
func Stats(text string) models.TextStatistics {
	sentences := Sentences(text)
	fields := strings.Fields(text)
	noSpaces := len(text) - countSpaces(text)

	stats := models.TextStatistics{
		SentenceCount:          len(sentences),
		WordCount:              len(fields),
		CharacterCount:         len(text),
		CharacterCountNoSpaces: noSpaces,
		ParagraphCount:         Paragraphs(text),
	}
	if len(sentences) > 0 {
		stats.AverageWordsPerSentence = float64(len(fields)) / float64(len(sentences))
	}
	if len(fields) > 0 {
		stats.AverageCharactersPerWord = float64(noSpaces) / float64(len(fields))
	}
	return stats
}

func countSpaces(text string) int {
	n := 0
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			n++
		}
	}
	return n
}
