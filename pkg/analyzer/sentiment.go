package analyzer

import "github.com/dtnitsch/docmeta/models"

// SentimentLabel counts positive versus negative lexicon hits over the
// normalized tokens and declares a polarity when one side exceeds the other
// by at least margin. Anything else is neutral.
func SentimentLabel(tokens []string, positive, negative map[string]struct{}, margin int) string {
	if margin < 1 {
		margin = 1
	}

	pos, neg := 0, 0
	for _, t := range tokens {
		if _, ok := positive[t]; ok {
			pos++
		}
		if _, ok := negative[t]; ok {
			neg++
		}
	}

	switch {
	case pos-neg >= margin:
		return models.SentimentPositive
	case neg-pos >= margin:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
