package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	defaults := DefaultConfig()
	if cfg.MaxKeywords != defaults.MaxKeywords {
		t.Errorf("MaxKeywords = %d, want default %d", cfg.MaxKeywords, defaults.MaxKeywords)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q, want en", cfg.DefaultLanguage)
	}
	if len(cfg.CategoryRules) == 0 {
		t.Error("CategoryRules empty, want built-in rules")
	}
}

func TestLoadConfig_OverlaysOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
max_keywords: 5
reading_speed_wpm: 300
extra_stop_words:
  - widget
category_rules:
  - category: Custom/Category
    keywords: [custom]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.MaxKeywords != 5 {
		t.Errorf("MaxKeywords = %d, want 5", cfg.MaxKeywords)
	}
	if cfg.ReadingSpeedWPM != 300 {
		t.Errorf("ReadingSpeedWPM = %d, want 300", cfg.ReadingSpeedWPM)
	}
	if len(cfg.ExtraStopWords) != 1 || cfg.ExtraStopWords[0] != "widget" {
		t.Errorf("ExtraStopWords = %v, want [widget]", cfg.ExtraStopWords)
	}
	// Untouched fields keep their defaults.
	if cfg.SummarySentences != DefaultConfig().SummarySentences {
		t.Errorf("SummarySentences = %d, want default", cfg.SummarySentences)
	}
	// Category rules replace, not merge.
	if len(cfg.CategoryRules) != 1 || cfg.CategoryRules[0].Category != "Custom/Category" {
		t.Errorf("CategoryRules = %v, want the configured rule only", cfg.CategoryRules)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil for invalid YAML")
	}
}

func TestEmptyAnalysis(t *testing.T) {
	an := EmptyAnalysis("de")
	if an.Keywords == nil || an.Entities == nil || an.Topics == nil {
		t.Error("EmptyAnalysis() returned nil slices")
	}
	if an.Language != "de" {
		t.Errorf("Language = %q, want de", an.Language)
	}
	if an.Sentiment != SentimentNeutral {
		t.Errorf("Sentiment = %q, want neutral", an.Sentiment)
	}
}
