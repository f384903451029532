// Package keywords ranks normalized word tokens by plain term frequency.
// There is a single document per run, so no corpus-level inverse document
// frequency term is computed.
package keywords

import (
	"sort"
	"unicode/utf8"

	"github.com/dtnitsch/docmeta/models"
)

// ScoreConfig controls keyword scoring.
type ScoreConfig struct {
	StopWords  map[string]struct{} // nil means the built-in set
	MinLength  int                 // minimum token length in runes
	MaxResults int                 // cap on returned keywords
}

type termStat struct {
	word  string
	count int
	first int // index of first occurrence, used as the final tie-break
}

// Score computes term frequency over tokens, excluding stop words and
// tokens shorter than MinLength, and returns the top keywords ordered by
// descending relevance score. Ties break by descending frequency, then by
// first occurrence. Zero kept tokens yields an empty slice, not an error.
//
// The relevance score is frequency / total kept token count, so scores over
// the full result set always sum to at most 1.
func Score(tokens []string, cfg ScoreConfig) []models.Keyword {
	stop := cfg.StopWords
	if stop == nil {
		stop = stopWords
	}

	stats := make(map[string]*termStat)
	order := make([]*termStat, 0)
	total := 0

	for i, tok := range tokens {
		if utf8.RuneCountInString(tok) < cfg.MinLength {
			continue
		}
		if _, ok := stop[tok]; ok {
			continue
		}
		total++
		if st, ok := stats[tok]; ok {
			st.count++
			continue
		}
		st := &termStat{word: tok, count: 1, first: i}
		stats[tok] = st
		order = append(order, st)
	}

	if total == 0 {
		return []models.Keyword{}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	limit := cfg.MaxResults
	if limit <= 0 || limit > len(order) {
		limit = len(order)
	}

	result := make([]models.Keyword, 0, limit)
	for _, st := range order[:limit] {
		result = append(result, models.Keyword{
			Word:           st.word,
			Frequency:      st.count,
			RelevanceScore: float64(st.count) / float64(total),
		})
	}
	return result
}
