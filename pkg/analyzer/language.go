package analyzer

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// detectionLanguages is the candidate set for language detection. Keeping
// the set small keeps detector startup cheap while covering the languages
// documents in practice arrive in.
var detectionLanguages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Russian,
	lingua.Chinese,
	lingua.Japanese,
}

// newLanguageDetector builds the lingua detector once per analyzer. Model
// loading is the expensive part, so this must not happen per document.
func newLanguageDetector() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(detectionLanguages...).
		Build()
}

// detectLanguage returns the ISO-639-1 code for text, or fallback when
// detection is inconclusive or the text is too short to carry a signal.
func detectLanguage(detector lingua.LanguageDetector, text, fallback string) string {
	if len(strings.Fields(text)) < 5 {
		return fallback
	}
	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return fallback
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
