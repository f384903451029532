package derive

import (
	"math"

	"github.com/dtnitsch/docmeta/models"
)

// Quality score weights. The contract is monotonicity: improving any one
// input factor never decreases the score while the others hold fixed.
const (
	wordCountWeight   = 40.0
	readabilityWeight = 40.0
	keywordBonus      = 10.0
	entityBonus       = 10.0

	// Word counts at or above this saturate the word-count contribution.
	wordCountSaturation = 200.0
)

// qualityScore is the weighted composite in [0,100]. Extraction failure is
// a binary gate: a failed extraction scores 0 regardless of anything else.
func (e *Engine) qualityScore(ext models.ExtractedDocument, an models.SemanticAnalysis) float64 {
	if !ext.Success {
		return 0
	}

	score := wordCountContribution(ext.WordCount)
	score += readabilityWeight * an.ReadabilityScore / 100
	if len(an.Keywords) > 0 {
		score += keywordBonus
	}
	if len(an.Entities) > 0 {
		score += entityBonus
	}

	return math.Round(clampScore(score)*10) / 10
}

// wordCountContribution is a saturating curve: more words help, with
// diminishing returns, flat beyond the saturation point.
func wordCountContribution(words int) float64 {
	if words <= 0 {
		return 0
	}
	frac := float64(words) / wordCountSaturation
	if frac > 1 {
		frac = 1
	}
	return wordCountWeight * frac
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
