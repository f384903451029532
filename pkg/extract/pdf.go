package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/dtnitsch/docmeta/models"
)

// extractPDF pulls text out of a PDF via pdfcpu content streams, one page
// at a time. A PDF with no recoverable text fails extraction: that is the
// scanned-image case, which would need OCR support this build does not
// carry.
func (x *Extractor) extractPDF(path string) (models.ExtractedDocument, error) {
	doc := models.ExtractedDocument{ExtractionMethod: models.MethodPDFParse}

	f, err := os.Open(path)
	if err != nil {
		return doc, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	pdfCtx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return doc, fmt.Errorf("failed to parse pdf: %w", err)
	}
	doc.PageCount = pdfCtx.PageCount

	var pages []string
	totalRunes := 0
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		pageText := pageContentText(pdfCtx, pageNr)
		if pageText == "" {
			continue
		}
		totalRunes += len([]rune(pageText))
		pages = append(pages, pageText)
	}

	if len(pages) == 0 {
		doc.ExtractionMethod = models.MethodOCR
		return doc, fmt.Errorf("no extractable text in pdf (scanned document requires OCR support)")
	}

	// Pages become paragraphs in the assembled text.
	doc.Text = strings.Join(pages, "\n\n")

	quality := &models.ExtractionQuality{
		PrintableRatio: printableRatio(doc.Text),
		WordlikeRatio:  wordlikeRatio(doc.Text),
	}
	if pdfCtx.PageCount > 0 {
		quality.CharsPerPage = float64(totalRunes) / float64(pdfCtx.PageCount)
	}
	doc.Quality = quality

	return doc, nil
}

func pageContentText(pdfCtx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return streamText(data)
}

// pdfStringLiteral matches PDF string literals: (text here)
var pdfStringLiteral = regexp.MustCompile(`\(([^)]*)\)`)

// streamText walks PDF content stream operators and collects shown text.
// Handles Tj, TJ, the ' shorthand, and positioning operators that imply
// word or line breaks.
func streamText(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringLiteral.FindAllSubmatch(line, -1) {
				sb.WriteString(unescapePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfStringLiteral.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(unescapePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return strings.TrimSpace(sb.String())
}

// unescapePDFString resolves the escape sequences allowed inside PDF
// string literals, including octal byte escapes.
func unescapePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(c)
		default:
			if c >= '0' && c <= '7' {
				val := int(c - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(c)
			}
		}
	}
	return sb.String()
}

// printableRatio measures how much of the text is printable, flagging
// garbled extractions (CID fonts without ToUnicode maps land in the
// private use area).
func printableRatio(text string) float64 {
	if text == "" {
		return 1.0
	}
	total, printable := 0, 0
	for _, r := range text {
		total++
		if r >= 0xE000 && r <= 0xF8FF || r == 0xFFFD {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

// wordlikeRatio is the share of tokens with plausible word lengths (2-15
// runes); character-by-character extraction scores near zero.
func wordlikeRatio(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	wordlike := 0
	for _, f := range fields {
		if n := len([]rune(f)); n >= 2 && n <= 15 {
			wordlike++
		}
	}
	return float64(wordlike) / float64(len(fields))
}
