// Package entities extracts named entities and lightweight topic terms.
//
// The extractor is capability-gated: when an entity lexicon is configured
// and loads cleanly the Available variant runs pattern plus gazetteer
// matching; otherwise the Unavailable variant falls back to keyword-derived
// topics and an empty entity list. Callers treat both variants identically —
// an empty entity sequence is a valid result, never an error.
package entities

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/docmeta/models"
)

// Lexicon is the on-disk entity model: known terms grouped by label.
type Lexicon struct {
	Terms map[string][]string `yaml:"terms"`
}

// labelDescriptions maps entity type tags to human-readable descriptions.
var labelDescriptions = map[string]string{
	"PERSON":  "People, including fictional",
	"ORG":     "Companies, agencies, institutions",
	"GPE":     "Countries, cities, states",
	"PRODUCT": "Objects, vehicles, foods, software",
	"DATE":    "Absolute or relative dates or periods",
	"MONEY":   "Monetary values, including unit",
	"PERCENT": "Percentage values",
	"EMAIL":   "Email addresses",
	"URL":     "Web addresses",
}

var entityPatterns = []struct {
	label string
	re    *regexp.Regexp
}{
	{"DATE", regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:,\s*\d{4})?\b|\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b`)},
	{"MONEY", regexp.MustCompile(`[$€£]\s?\d[\d,]*(?:\.\d+)?(?:\s?(?:million|billion|thousand))?|\b\d[\d,]*(?:\.\d+)?\s?(?:dollars|euros|pounds)\b`)},
	{"PERCENT", regexp.MustCompile(`\b\d+(?:\.\d+)?\s?(?:%|percent)`)},
	{"EMAIL", regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.[\w.]+\b`)},
	{"URL", regexp.MustCompile(`\bhttps?://[^\s)>\]]+`)},
}

type gazEntry struct {
	term  string // original casing from the lexicon
	lower string
	label string
}

// Engine is the entity/topic extractor, selected once at startup.
type Engine struct {
	available bool
	gazetteer []gazEntry
	cfg       models.Config
	logger    *slog.Logger
}

// New builds the extractor. Lexicon loading happens exactly once here; the
// engine is meant to be shared process-wide, not rebuilt per document.
func New(cfg models.Config, logger *slog.Logger) *Engine {
	e := &Engine{cfg: cfg, logger: logger}

	if cfg.LexiconPath == "" {
		logger.Warn("entity lexicon not configured, falling back to keyword topics")
		return e
	}

	lex, err := loadLexicon(cfg.LexiconPath)
	if err != nil {
		logger.Warn("entity lexicon unavailable, falling back to keyword topics",
			"path", cfg.LexiconPath, "error", err)
		return e
	}

	for label, terms := range lex.Terms {
		label = strings.ToUpper(label)
		for _, t := range terms {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			e.gazetteer = append(e.gazetteer, gazEntry{term: t, lower: strings.ToLower(t), label: label})
		}
	}
	// Longest terms first keeps overlap resolution deterministic when two
	// equal-length terms claim the same span.
	sort.SliceStable(e.gazetteer, func(i, j int) bool {
		return len(e.gazetteer[i].lower) > len(e.gazetteer[j].lower)
	})

	e.available = true
	logger.Info("entity lexicon loaded", "path", cfg.LexiconPath, "terms", len(e.gazetteer))
	return e
}

func loadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if len(lex.Terms) == 0 {
		return nil, fmt.Errorf("lexicon has no terms")
	}
	return &lex, nil
}

// Available reports which variant the engine runs.
func (e *Engine) Available() bool {
	return e.available
}

type match struct {
	pos   int
	end   int
	text  string
	label string
}

// Extract returns zero or more entities and zero or more topic strings for
// text. keywords are the already-scored document keywords, used for topic
// fallback and fill.
func (e *Engine) Extract(text string, kws []models.Keyword) ([]models.Entity, []string) {
	if !e.available {
		return []models.Entity{}, e.keywordTopics(kws, nil)
	}

	var candidates []match
	for _, p := range entityPatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			candidates = append(candidates, match{pos: loc[0], end: loc[1], text: text[loc[0]:loc[1]], label: p.label})
		}
	}

	lower := strings.ToLower(text)
	for _, g := range e.gazetteer {
		idx := 0
		for {
			rel := strings.Index(lower[idx:], g.lower)
			if rel < 0 {
				break
			}
			pos := idx + rel
			end := pos + len(g.lower)
			if isWordBounded(lower, pos, end) {
				candidates = append(candidates, match{pos: pos, end: end, text: text[pos:end], label: g.label})
			}
			idx = end
		}
	}

	matches := resolveOverlaps(candidates)

	// Document order keeps output deterministic.
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	entities := make([]models.Entity, 0, len(matches))
	var topicSeeds []string
	seen := make(map[string]struct{})
	for _, m := range matches {
		key := strings.ToLower(m.text) + "\x00" + m.label
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		desc := labelDescriptions[m.label]
		if desc == "" {
			desc = m.label
		}
		entities = append(entities, models.Entity{Text: m.text, Label: m.label, Description: desc})

		switch m.label {
		case "ORG", "GPE", "PRODUCT", "PERSON":
			topicSeeds = append(topicSeeds, strings.ToLower(m.text))
		}

		if len(entities) >= e.cfg.MaxEntities {
			break
		}
	}

	return entities, e.keywordTopics(kws, topicSeeds)
}

// resolveOverlaps keeps at most one match per text region, whether it came
// from a pattern or the gazetteer: longer spans win, ties go to the earlier
// span. "New York City" beats "New York", and a lexicon term containing a
// date or currency string yields a single entity.
func resolveOverlaps(candidates []match) []match {
	sort.SliceStable(candidates, func(i, j int) bool {
		li, lj := candidates[i].end-candidates[i].pos, candidates[j].end-candidates[j].pos
		if li != lj {
			return li > lj
		}
		return candidates[i].pos < candidates[j].pos
	})

	kept := make([]match, 0, len(candidates))
	var claimed [][2]int
	for _, c := range candidates {
		overlap := false
		for _, cl := range claimed {
			if c.pos < cl[1] && cl[0] < c.end {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		claimed = append(claimed, [2]int{c.pos, c.end})
		kept = append(kept, c)
	}
	return kept
}

// keywordTopics builds the topic list: entity-derived seeds first, then
// keyword words to fill up to MaxTopics. All topics are normalized tokens,
// so no trailing punctuation survives into the list.
func (e *Engine) keywordTopics(kws []models.Keyword, seeds []string) []string {
	topics := make([]string, 0, e.cfg.MaxTopics)
	seen := make(map[string]struct{})

	add := func(t string) {
		if len(topics) >= e.cfg.MaxTopics {
			return
		}
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		topics = append(topics, t)
	}

	for _, s := range seeds {
		add(s)
	}
	for _, kw := range kws {
		add(strings.ToLower(kw.Word))
	}
	return topics
}

func isWordBounded(s string, start, end int) bool {
	if start > 0 && isWordByte(s[start-1]) {
		return false
	}
	if end < len(s) && isWordByte(s[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}
