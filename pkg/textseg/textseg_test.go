package textseg

import (
	"testing"
)

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple sentences keep their punctuation",
			text: "First sentence. Second sentence! Third sentence?",
			want: []string{"First sentence.", "Second sentence!", "Third sentence?"},
		},
		{
			name: "repeated punctuation is one boundary and stays verbatim",
			text: "Really?! Yes...",
			want: []string{"Really?!", "Yes..."},
		},
		{
			name: "no terminal punctuation",
			text: "a fragment without punctuation",
			want: []string{"a fragment without punctuation"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "only punctuation",
			text: "...!!!",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Sentences() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Sentences()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and strips edge punctuation",
			text: "Hello, World! (twice)",
			want: []string{"hello", "world", "twice"},
		},
		{
			name: "keeps digits",
			text: "version 2 of gpt4",
			want: []string{"version", "2", "of", "gpt4"},
		},
		{
			name: "drops tokens that are pure punctuation",
			text: "a -- b",
			want: []string{"a", "b"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Words() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Words()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "single paragraph", text: "one block of text\nstill the same block", want: 1},
		{name: "two paragraphs", text: "first\n\nsecond", want: 2},
		{name: "blank line with spaces still splits", text: "first\n   \nsecond", want: 2},
		{name: "empty input", text: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Paragraphs(tt.text); got != tt.want {
				t.Errorf("Paragraphs() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStats(t *testing.T) {
	text := "The cat sat. The dog ran."
	stats := Stats(text)

	if stats.SentenceCount != 2 {
		t.Errorf("SentenceCount = %d, want 2", stats.SentenceCount)
	}
	if stats.WordCount != 6 {
		t.Errorf("WordCount = %d, want 6", stats.WordCount)
	}
	if stats.CharacterCount != len(text) {
		t.Errorf("CharacterCount = %d, want %d", stats.CharacterCount, len(text))
	}
	if stats.ParagraphCount != 1 {
		t.Errorf("ParagraphCount = %d, want 1", stats.ParagraphCount)
	}
	if got, want := stats.AverageWordsPerSentence, 3.0; got != want {
		t.Errorf("AverageWordsPerSentence = %v, want %v", got, want)
	}
}

func TestStats_Empty(t *testing.T) {
	stats := Stats("")
	if stats.SentenceCount != 0 || stats.WordCount != 0 || stats.ParagraphCount != 0 {
		t.Errorf("Stats(\"\") = %+v, want all zeros", stats)
	}
	if stats.AverageWordsPerSentence != 0 || stats.AverageCharactersPerWord != 0 {
		t.Errorf("Stats(\"\") averages = %v/%v, want 0/0",
			stats.AverageWordsPerSentence, stats.AverageCharactersPerWord)
	}
}
