package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/docmeta/models"
)

// extractDocx reads word/document.xml out of the DOCX ZIP container and
// flattens its paragraphs. Styling and embedded objects are ignored; only
// the text runs matter here.
func (x *Extractor) extractDocx(path string) (models.ExtractedDocument, error) {
	doc := models.ExtractedDocument{ExtractionMethod: models.MethodDocxParse, PageCount: 1}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return doc, fmt.Errorf("failed to open docx archive: %w", err)
	}
	defer zr.Close()

	var docXML *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML = f
			break
		}
	}
	if docXML == nil {
		return doc, fmt.Errorf("invalid docx: word/document.xml not found")
	}

	rc, err := docXML.Open()
	if err != nil {
		return doc, fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return doc, fmt.Errorf("failed to parse document.xml: %w", err)
	}
	if len(paragraphs) == 0 {
		return doc, fmt.Errorf("no extractable text in docx")
	}

	doc.Text = strings.Join(paragraphs, "\n\n")
	return doc, nil
}

// docxParagraphs streams WordprocessingML and collects the text of each
// non-empty w:p element. Tabs and explicit breaks become whitespace so run
// boundaries do not glue words together.
func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inParagraph := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "tab":
				if inParagraph {
					current.WriteByte(' ')
				}
			case "br", "cr":
				if inParagraph {
					current.WriteByte(' ')
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
				inParagraph = false
			}
		case xml.CharData:
			if inParagraph {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}
