// Package models defines the data structures shared across the metadata
// generation pipeline: extraction results, analysis results, derived
// metadata, and the persisted record layout.
package models

// Extraction method identifiers recorded in extraction_info.
const (
	MethodDirectRead = "direct_read"
	MethodPDFParse   = "pdf_parse"
	MethodDocxParse  = "docx_parse"
	MethodHTMLParse  = "html_parse"
	MethodOCR        = "ocr"
)

// ExtractionQuality captures metrics about how clean an extraction was.
// Currently only populated for PDF input.
type ExtractionQuality struct {
	CharsPerPage   float64 `json:"chars_per_page"`
	PrintableRatio float64 `json:"printable_ratio"`
	WordlikeRatio  float64 `json:"wordlike_ratio"`
}

// ExtractedDocument is the output of the extraction collaborator.
// Immutable once produced; owned by the pipeline for the duration of one
// document's processing.
type ExtractedDocument struct {
	Text             string             `json:"text"`
	ExtractionMethod string             `json:"extraction_method"`
	PageCount        int                `json:"page_count"`
	WordCount        int                `json:"word_count"`
	CharacterCount   int                `json:"character_count"`
	Success          bool               `json:"success"`
	Error            string             `json:"error,omitempty"`
	Quality          *ExtractionQuality `json:"quality,omitempty"`
}

// TextStatistics holds derived, read-only facts about a text body.
type TextStatistics struct {
	SentenceCount            int     `json:"sentence_count"`
	WordCount                int     `json:"word_count"`
	CharacterCount           int     `json:"character_count"`
	CharacterCountNoSpaces   int     `json:"character_count_no_spaces"`
	ParagraphCount           int     `json:"paragraph_count"`
	AverageWordsPerSentence  float64 `json:"average_words_per_sentence"`
	AverageCharactersPerWord float64 `json:"average_characters_per_word"`
}

// Keyword is a scored term. Each word appears at most once in a keyword
// list, ordered by descending relevance score.
type Keyword struct {
	Word           string  `json:"word"`
	Frequency      int     `json:"frequency"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Entity is a named entity with a type label. An empty entity list is a
// valid result, never an error.
type Entity struct {
	Text        string `json:"text"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Sentiment labels assigned by the semantic analyzer.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// SemanticAnalysis aggregates every analysis result for one document.
// Immutable once constructed; consumed only by the derivation engine.
type SemanticAnalysis struct {
	Keywords         []Keyword      `json:"keywords"`
	Entities         []Entity       `json:"entities"`
	Topics           []string       `json:"topics"`
	Summary          string         `json:"summary"`
	Language         string         `json:"language"`
	Sentiment        string         `json:"sentiment"`
	ReadabilityScore float64        `json:"readability_score"`
	TextStatistics   TextStatistics `json:"text_statistics"`
}

// EmptyAnalysis returns the degenerate all-zero analysis used for empty
// input text. Slices are non-nil so the JSON layout stays stable.
func EmptyAnalysis(defaultLanguage string) SemanticAnalysis {
	return SemanticAnalysis{
		Keywords:  []Keyword{},
		Entities:  []Entity{},
		Topics:    []string{},
		Language:  defaultLanguage,
		Sentiment: SentimentNeutral,
	}
}

// Complexity levels assigned by the derivation engine.
const (
	ComplexitySimple      = "Simple"
	ComplexityModerate    = "Moderate"
	ComplexityComplex     = "Complex"
	ComplexityVeryComplex = "Very Complex"
)

// DerivedMetadata is computed once from a SemanticAnalysis plus document
// facts and never mutated after creation.
type DerivedMetadata struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	ContentType          string   `json:"content_type"`
	PrimaryLanguage      string   `json:"primary_language"`
	QualityScore         float64  `json:"quality_score"`
	ComplexityLevel      string   `json:"complexity_level"`
	EstimatedReadingTime string   `json:"estimated_reading_time"`
	TopKeywords          []string `json:"top_keywords"`
	MainTopics           []string `json:"main_topics"`
	KeyEntities          []string `json:"key_entities"`
}

// DocumentInfo holds filesystem-level facts about the input file.
type DocumentInfo struct {
	Filename      string  `json:"filename"`
	FileStem      string  `json:"file_stem"`
	FilePath      string  `json:"file_path"`
	FileExtension string  `json:"file_extension"`
	DocumentType  string  `json:"document_type"`
	MimeType      string  `json:"mime_type"`
	FileSizeBytes int64   `json:"file_size_bytes"`
	FileSizeMB    float64 `json:"file_size_mb"`
	ModifiedDate  string  `json:"modified_date"`
	FileHash      string  `json:"file_hash"`
}

// ProcessingInfo records the outcome of one pipeline run over one document.
type ProcessingInfo struct {
	RecordID  string   `json:"record_id"`
	Timestamp string   `json:"timestamp"`
	Version   string   `json:"version"`
	Success   bool     `json:"success"`
	Errors    []string `json:"errors"`
}

// MetadataRecord is the top-level persisted entity. Created per document,
// written once, never updated in place.
type MetadataRecord struct {
	DocumentInfo    DocumentInfo      `json:"document_info"`
	ExtractionInfo  ExtractedDocument `json:"extraction_info"`
	ContentAnalysis SemanticAnalysis  `json:"content_analysis"`
	ProcessingInfo  ProcessingInfo    `json:"processing_info"`
	DerivedMetadata *DerivedMetadata  `json:"derived_metadata,omitempty"`
}

// BatchStats is the ephemeral aggregate for one batch invocation.
type BatchStats struct {
	TotalFiles int      `json:"total_files"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}
