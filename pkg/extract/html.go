package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/dtnitsch/docmeta/models"
)

// extractHTML distills article content from a local HTML file. go-readability
// strips boilerplate (navigation, footers, ads); when it finds nothing usable
// we fall back to the full body text via goquery.
func (x *Extractor) extractHTML(path string) (models.ExtractedDocument, error) {
	doc := models.ExtractedDocument{ExtractionMethod: models.MethodHTMLParse, PageCount: 1}

	data, err := readFile(path)
	if err != nil {
		return doc, err
	}

	fileURL := &url.URL{Scheme: "file", Path: path}
	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(bytes.NewReader(data), fileURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		doc.Text = article.TextContent
		return doc, nil
	}

	text, err := bodyText(data)
	if err != nil {
		return doc, fmt.Errorf("failed to parse html: %w", err)
	}
	if text == "" {
		return doc, fmt.Errorf("no extractable text in html")
	}
	doc.Text = text
	return doc, nil
}

// bodyText collects the text of content-bearing elements so block
// boundaries survive as line breaks.
func bodyText(data []byte) (string, error) {
	gq, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	gq.Find("script,style,noscript").Remove()

	var blocks []string
	gq.Find("h1,h2,h3,h4,h5,h6,p,li,td,pre,blockquote").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return strings.TrimSpace(gq.Find("body").Text()), nil
	}
	return strings.Join(blocks, "\n"), nil
}
