// Package analyzer orchestrates the semantic analysis of one document's
// text: segmentation, statistics, keyword scoring, readability, summary,
// entity/topic extraction, language detection, and sentiment.
package analyzer

import (
	"log/slog"

	"github.com/pemistahl/lingua-go"

	"github.com/dtnitsch/docmeta/models"
	"github.com/dtnitsch/docmeta/pkg/entities"
	"github.com/dtnitsch/docmeta/pkg/keywords"
	"github.com/dtnitsch/docmeta/pkg/textseg"
)

// Analyzer produces one immutable SemanticAnalysis per input text.
// Construct once and share: the language detector and entity engine are
// loaded at construction time, not per call.
type Analyzer struct {
	cfg      models.Config
	logger   *slog.Logger
	stop     map[string]struct{}
	positive map[string]struct{}
	negative map[string]struct{}
	detector lingua.LanguageDetector
	entities *entities.Engine
}

// New builds an Analyzer from an explicit configuration.
func New(cfg models.Config, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		cfg:      cfg,
		logger:   logger,
		stop:     keywords.StopWordSet(cfg.ExtraStopWords),
		positive: wordSet(cfg.PositiveWords),
		negative: wordSet(cfg.NegativeWords),
		detector: newLanguageDetector(),
		entities: entities.New(cfg, logger),
	}
}

// EntityExtractorAvailable reports which extractor variant is active.
func (a *Analyzer) EntityExtractorAvailable() bool {
	return a.entities.Available()
}

// Analyze runs the full analysis sequence over text. Empty input is valid
// and produces the degenerate all-zero result, not an error.
func (a *Analyzer) Analyze(text string) models.SemanticAnalysis {
	if len(text) == 0 {
		return models.EmptyAnalysis(a.cfg.DefaultLanguage)
	}

	sentences := textseg.Sentences(text)
	tokens := textseg.Words(text)
	stats := textseg.Stats(text)

	kws := keywords.Score(tokens, keywords.ScoreConfig{
		StopWords:  a.stop,
		MinLength:  a.cfg.MinKeywordLength,
		MaxResults: a.cfg.MaxKeywords,
	})

	ents, topics := a.entities.Extract(text, kws)
	if a.entities.Available() {
		a.logger.Debug("entity extraction ran with lexicon", "entities", len(ents))
	} else {
		a.logger.Debug("entity extraction ran in fallback mode", "topics", len(topics))
	}

	return models.SemanticAnalysis{
		Keywords:         kws,
		Entities:         ents,
		Topics:           topics,
		Summary:          Summarize(sentences, a.cfg.SummarySentences, a.cfg.SummaryMaxChars),
		Language:         detectLanguage(a.detector, text, a.cfg.DefaultLanguage),
		Sentiment:        SentimentLabel(tokens, a.positive, a.negative, a.cfg.SentimentMargin),
		ReadabilityScore: ReadabilityScore(text, stats),
		TextStatistics:   stats,
	}
}
