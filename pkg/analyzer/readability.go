package analyzer

import (
	"strings"

	"github.com/dtnitsch/docmeta/models"
)

// ReadabilityScore computes a 0-100 ease score from sentence and syllable
// statistics using the Flesch reading ease formula. Syllable counts come
// from a vowel-group heuristic and are an approximation, not linguistic
// ground truth. Texts with no sentence structure score exactly 0.
func ReadabilityScore(text string, stats models.TextStatistics) float64 {
	if stats.SentenceCount == 0 || stats.WordCount == 0 {
		return 0
	}

	syllables := 0
	for _, w := range strings.Fields(text) {
		syllables += countSyllables(w)
	}

	avgSentenceLength := float64(stats.WordCount) / float64(stats.SentenceCount)
	avgSyllablesPerWord := float64(syllables) / float64(stats.WordCount)

	score := 206.835 - 1.015*avgSentenceLength - 84.6*avgSyllablesPerWord
	return clamp(score, 0, 100)
}

// countSyllables approximates syllables by counting vowel groups, with a
// silent-e adjustment. Always returns at least 1.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	syllables := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			syllables++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") && syllables > 1 {
		syllables--
	}
	if syllables < 1 {
		syllables = 1
	}
	return syllables
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
