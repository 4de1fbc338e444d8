package models

import (
	"io"
	"time"
)

// UploadedFile is one document handed to the pipeline. Content must be
// readable from the start again after any earlier read.
type UploadedFile struct {
	Name      string
	SizeBytes int64
	Content   io.ReadSeeker
}

// MetadataRecord is the normalized output of one analysis. Field order
// is the JSON key order.
type MetadataRecord struct {
	FileName         string   `json:"file_name"`
	ExtractedOn      string   `json:"extracted_on"`
	FileType         string   `json:"file_type"`
	FileSize         string   `json:"file_size"`
	DocumentLength   string   `json:"document_length"`
	WordCount        string   `json:"word_count"`
	ApproxReading    string   `json:"approx_reading_time"`
	Paragraphs       string   `json:"paragraphs"`
	DetectedLanguage string   `json:"detected_language"`
	ExtractionError  string   `json:"extraction_error,omitempty"`
	Summary          string   `json:"summary,omitempty"`
	KeyPoints        []string `json:"key_points,omitempty"`
	DocumentType     string   `json:"document_type,omitempty"`
}

// WithInsights returns a copy of r carrying the generated insight fields.
func (r MetadataRecord) WithInsights(in Insights) MetadataRecord {
	r.Summary = in.Summary
	r.KeyPoints = append([]string(nil), in.KeyPoints...)
	r.DocumentType = in.DocumentType
	return r
}

type Insights struct {
	Summary      string   `json:"summary"`
	KeyPoints    []string `json:"key_points"`
	DocumentType string   `json:"document_type"`
}

type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type TextStatistics struct {
	WordCount              int             `json:"word_count"`
	SentenceCount          int             `json:"sentence_count"`
	ParagraphCount         int             `json:"paragraph_count"`
	LineCount              int             `json:"line_count"`
	CharacterCount         int             `json:"character_count"`
	CharacterCountNoSpaces int             `json:"character_count_no_spaces"`
	AvgWordLength          float64         `json:"avg_word_length"`
	AvgSentenceLength      float64         `json:"avg_sentence_length"`
	Readability            string          `json:"readability"`
	TopWords               []WordFrequency `json:"top_words"`
}

type LanguageResult struct {
	Language   string  `json:"detected_language"`
	Code       string  `json:"code,omitempty"`
	Confidence float64 `json:"confidence"`
	Reliable   bool    `json:"is_reliable"`
}

// Analysis is what the service returns and stores for one upload.
type Analysis struct {
	ID            string         `json:"id"`
	FileSizeBytes int64          `json:"file_size_bytes"`
	Metadata      MetadataRecord `json:"metadata"`
	Statistics    TextStatistics `json:"statistics"`
	Language      LanguageResult `json:"language"`
	S3Key         string         `json:"s3_key,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// AnalysisSummary is the list view of a stored analysis.
type AnalysisSummary struct {
	ID        string    `json:"id" db:"id"`
	FileName  string    `json:"file_name" db:"file_name"`
	FileType  string    `json:"file_type" db:"file_type"`
	FileSize  int64     `json:"file_size" db:"file_size"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type AnalyzeRequest struct {
	File         UploadedFile
	ContentType  string
	WithInsights bool
}

// ExportFile is a file handed back for download: an exported metadata
// record or an archived original.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

type FormatsResponse struct {
	Extensions        []string `json:"supported_extensions"`
	MaxFileSize       string   `json:"max_file_size"`
	MaxFileSizeBytes  int64    `json:"max_file_size_bytes"`
	InsightsAvailable bool     `json:"insights_available"`
}
