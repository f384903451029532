package extract

import (
	"bytes"
	"strings"
	"unicode/utf16"

	"github.com/dtnitsch/docmeta/models"
)

// extractText reads a plain text file, tolerating UTF-8 and UTF-16
// encodings. Bytes that survive neither interpretation are dropped rather
// than failing the document.
func (x *Extractor) extractText(path string) (models.ExtractedDocument, error) {
	doc := models.ExtractedDocument{ExtractionMethod: models.MethodDirectRead, PageCount: 1}

	data, err := readFile(path)
	if err != nil {
		return doc, err
	}

	doc.Text = decodeText(data)
	return doc, nil
}

// extractMarkdown reads a markdown file and strips structural markers so
// the analyzer sees prose, not syntax.
func (x *Extractor) extractMarkdown(path string) (models.ExtractedDocument, error) {
	doc := models.ExtractedDocument{ExtractionMethod: models.MethodDirectRead, PageCount: 1}

	data, err := readFile(path)
	if err != nil {
		return doc, err
	}

	doc.Text = stripMarkdown(decodeText(data))
	return doc, nil
}

// decodeText handles BOM-prefixed UTF-16 and falls back to UTF-8 with
// invalid sequences removed.
func decodeText(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return decodeUTF16(data[2:], true)
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return decodeUTF16(data[2:], false)
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		data = data[3:]
	}
	return strings.ToValidUTF8(string(data), "")
}

func decodeUTF16(data []byte, bigEndian bool) string {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		if bigEndian {
			units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
		} else {
			units = append(units, uint16(data[i+1])<<8|uint16(data[i]))
		}
	}
	return string(utf16.Decode(units))
}

// stripMarkdown removes common markdown syntax: ATX heading markers, list
// bullets, emphasis, inline code, and link targets.
func stripMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	inFence := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		trimmed = strings.TrimLeft(trimmed, "#")
		trimmed = strings.TrimPrefix(trimmed, "- ")
		trimmed = strings.TrimPrefix(trimmed, "* ")
		trimmed = strings.TrimPrefix(trimmed, "> ")
		trimmed = strings.ReplaceAll(trimmed, "**", "")
		trimmed = strings.ReplaceAll(trimmed, "`", "")
		out = append(out, strings.TrimSpace(trimmed))
	}
	return strings.Join(out, "\n")
}
