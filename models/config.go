package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is stamped into every MetadataRecord's processing_info.
const Version = "1.0.0"

// CategoryRule maps a set of trigger keywords to a category label.
// Rules are evaluated in order; the first match wins.
type CategoryRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Config is the explicit immutable configuration passed into the
// semantic analyzer and the derivation engine at construction time.
// All heuristic thresholds live here so tests can substitute alternate
// rule sets deterministically.
type Config struct {
	// Extraction limits.
	MaxFileSizeBytes int64 `yaml:"max_file_size_bytes"`

	// Keyword scoring.
	MinKeywordLength int      `yaml:"min_keyword_length"`
	MaxKeywords      int      `yaml:"max_keywords"`
	ExtraStopWords   []string `yaml:"extra_stop_words"`

	// Entity/topic extraction.
	MaxEntities int    `yaml:"max_entities"`
	MaxTopics   int    `yaml:"max_topics"`
	LexiconPath string `yaml:"lexicon_path"`

	// Summarization.
	SummarySentences int `yaml:"summary_sentences"`
	SummaryMaxChars  int `yaml:"summary_max_chars"`

	// Language and sentiment.
	DefaultLanguage string   `yaml:"default_language"`
	SentimentMargin int      `yaml:"sentiment_margin"`
	PositiveWords   []string `yaml:"positive_words"`
	NegativeWords   []string `yaml:"negative_words"`

	// Derivation.
	ReadingSpeedWPM int            `yaml:"reading_speed_wpm"`
	TopKeywordCount int            `yaml:"top_keyword_count"`
	MainTopicCount  int            `yaml:"main_topic_count"`
	KeyEntityCount  int            `yaml:"key_entity_count"`
	CategoryRules   []CategoryRule `yaml:"category_rules"`
}

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() Config {
	return Config{
		MaxFileSizeBytes: 50 * 1024 * 1024,

		// Short acronyms ("ai", "ml") are scoreable keywords, so the
		// default minimum is 2 runes.
		MinKeywordLength: 2,
		MaxKeywords:      20,

		MaxEntities: 20,
		MaxTopics:   10,

		SummarySentences: 3,
		SummaryMaxChars:  500,

		DefaultLanguage: "en",
		SentimentMargin: 1,
		PositiveWords: []string{
			"good", "great", "excellent", "amazing", "wonderful", "fantastic",
			"positive", "success", "successful", "improve", "improves", "improved",
			"benefit", "benefits", "effective", "gain", "gains",
		},
		NegativeWords: []string{
			"bad", "terrible", "awful", "horrible", "poor", "disappointing",
			"negative", "failure", "fail", "fails", "failed", "problem",
			"problems", "loss", "losses", "risk", "risks",
		},

		ReadingSpeedWPM: 200,
		TopKeywordCount: 10,
		MainTopicCount:  5,
		KeyEntityCount:  10,
		CategoryRules:   DefaultCategoryRules(),
	}
}

// DefaultCategoryRules is the fixed priority list used for rule-based
// classification. Order is a policy decision: earlier rules win.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{Category: "Academic/Research", Keywords: []string{"research", "study", "analysis", "method", "experiment", "hypothesis"}},
		{Category: "Report/Documentation", Keywords: []string{"report", "summary", "overview", "documentation"}},
		{Category: "Legal/Regulatory", Keywords: []string{"legal", "law", "contract", "agreement", "regulation", "compliance"}},
		{Category: "Technical/IT", Keywords: []string{"technical", "system", "server", "software", "computer", "api", "database"}},
		{Category: "Business/Administrative", Keywords: []string{"meeting", "policy", "budget", "agenda", "invoice"}},
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults.
// A missing path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
