package derive

import (
	"strings"

	"github.com/dtnitsch/docmeta/models"
)

// classifyCategory applies rule-based classification. Entity signals run
// ahead of the keyword rules, then the configured priority list decides;
// the first matching rule wins.
func (e *Engine) classifyCategory(an models.SemanticAnalysis) string {
	if hasEntityLabel(an.Entities, "ORG") {
		return "Business/Corporate"
	}
	if hasEntityLabel(an.Entities, "PERSON") {
		return "Biographical/Personal"
	}

	kwSet := keywordSet(an.Keywords)
	for _, rule := range e.cfg.CategoryRules {
		for _, trigger := range rule.Keywords {
			if _, ok := kwSet[strings.ToLower(trigger)]; ok {
				return rule.Category
			}
		}
	}
	return "General Document"
}

// contentType classifies over structural and entity cues. Default is
// Informational.
func (e *Engine) contentType(an models.SemanticAnalysis) string {
	kwSet := keywordSet(an.Keywords)

	if hasEntityLabel(an.Entities, "DATE") {
		if anyKeyword(kwSet, "meeting", "agenda", "schedule") {
			return "Meeting/Event"
		}
		if anyKeyword(kwSet, "report", "quarterly", "annual") {
			return "Report"
		}
	}
	if hasEntityLabel(an.Entities, "MONEY") {
		return "Financial"
	}
	if anyKeyword(kwSet, "instruction", "instructions", "manual", "guide", "how", "step", "steps") {
		return "Instructional"
	}
	return "Informational"
}

// complexityLevel thresholds on average words per sentence and average
// characters per word. Pure policy; thresholds are deliberately coarse.
func complexityLevel(stats models.TextStatistics) string {
	awps := stats.AverageWordsPerSentence
	acpw := stats.AverageCharactersPerWord

	switch {
	case awps < 12 && acpw < 4.5:
		return models.ComplexitySimple
	case awps < 18 && acpw < 5.5:
		return models.ComplexityModerate
	case awps < 25:
		return models.ComplexityComplex
	default:
		return models.ComplexityVeryComplex
	}
}

func hasEntityLabel(ents []models.Entity, label string) bool {
	for _, e := range ents {
		if strings.Contains(e.Label, label) {
			return true
		}
	}
	return false
}

func keywordSet(kws []models.Keyword) map[string]struct{} {
	set := make(map[string]struct{}, len(kws))
	for _, kw := range kws {
		set[strings.ToLower(kw.Word)] = struct{}{}
	}
	return set
}

func anyKeyword(set map[string]struct{}, words ...string) bool {
	for _, w := range words {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}
