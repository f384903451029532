package extract

import (
	"strings"
	"testing"
)

func TestStreamText(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   []string
	}{
		{
			name:   "Tj operator",
			stream: "BT\n/F1 12 Tf\n(Hello World) Tj\nET",
			want:   []string{"Hello World"},
		},
		{
			name:   "TJ array with kerning",
			stream: "[(Hel) -20 (lo)] TJ",
			want:   []string{"Hel", "lo"},
		},
		{
			name:   "quote operator starts a new line",
			stream: "(first) Tj\n(second) '",
			want:   []string{"first\nsecond"},
		},
		{
			name:   "Td inserts word break",
			stream: "(one) Tj\n10 0 Td\n(two) Tj",
			want:   []string{"one two"},
		},
		{
			name:   "T* inserts line break",
			stream: "(alpha) Tj\nT*\n(beta) Tj",
			want:   []string{"alpha\nbeta"},
		},
		{
			name:   "no text operators",
			stream: "q\n1 0 0 1 0 0 cm\nQ",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := streamText([]byte(tt.stream))
			if len(tt.want) == 0 {
				if got != "" {
					t.Errorf("streamText() = %q, want empty", got)
				}
				return
			}
			for _, fragment := range tt.want {
				if !strings.Contains(got, fragment) {
					t.Errorf("streamText() = %q, missing %q", got, fragment)
				}
			}
		})
	}
}

func TestUnescapePDFString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`a\tb`, "a\tb"},
		{`paren \( inside \)`, "paren ( inside )"},
		{`back\\slash`, `back\slash`},
		{`octal \101\102`, "octal AB"},
		{`\053`, "+"},
		{`trailing \`, `trailing \`},
	}

	for _, tt := range tests {
		if got := unescapePDFString([]byte(tt.in)); got != tt.want {
			t.Errorf("unescapePDFString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrintableRatio(t *testing.T) {
	if got := printableRatio("clean readable text"); got != 1.0 {
		t.Errorf("printableRatio(clean) = %v, want 1.0", got)
	}

	garbled := strings.Repeat(string(rune(0xE123)), 10)
	if got := printableRatio(garbled); got != 0 {
		t.Errorf("printableRatio(private use area) = %v, want 0", got)
	}

	if got := printableRatio(""); got != 1.0 {
		t.Errorf("printableRatio(empty) = %v, want 1.0", got)
	}
}

func TestWordlikeRatio(t *testing.T) {
	if got := wordlikeRatio("these are normal words"); got != 1.0 {
		t.Errorf("wordlikeRatio(normal) = %v, want 1.0", got)
	}

	// Single characters are not wordlike.
	if got := wordlikeRatio("a b c d"); got != 0 {
		t.Errorf("wordlikeRatio(single chars) = %v, want 0", got)
	}

	if got := wordlikeRatio(""); got != 0 {
		t.Errorf("wordlikeRatio(empty) = %v, want 0", got)
	}
}
