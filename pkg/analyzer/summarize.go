package analyzer

import (
	"strings"
	"unicode/utf8"
)

// Summarize returns an extractive summary: the leading sentences joined
// verbatim, stopping at maxSentences or once maxChars characters are
// reached, whichever comes first. The budget counts runes, not bytes, and
// truncation never splits a multi-byte character. No paraphrasing occurs;
// fewer sentences than the budget simply returns everything available.
func Summarize(sentences []string, maxSentences, maxChars int) string {
	if len(sentences) == 0 || maxSentences <= 0 {
		return ""
	}

	var sb strings.Builder
	used := 0
	for i, s := range sentences {
		if i >= maxSentences {
			break
		}
		n := utf8.RuneCountInString(s)
		if i > 0 {
			if maxChars > 0 && used+1+n > maxChars {
				break
			}
			sb.WriteString(" ")
			used++
		} else if maxChars > 0 && n > maxChars {
			runes := []rune(s)
			return strings.TrimSpace(string(runes[:maxChars]))
		}
		sb.WriteString(s)
		used += n
	}
	return sb.String()
}
