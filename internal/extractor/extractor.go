package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/BerylCAtieno/document-metadata-api/internal/format"
	"github.com/BerylCAtieno/document-metadata-api/internal/models"
)

// Extractor converts the bytes of one document format into plain text.
type Extractor interface {
	Extract(ctx context.Context, r io.ReadSeeker) Result
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, r io.ReadSeeker) Result

func (f ExtractorFunc) Extract(ctx context.Context, r io.ReadSeeker) Result {
	return f(ctx, r)
}

// ExtractionError reports why a format could not be turned into text.
type ExtractionError struct {
	Tag   format.Tag
	Cause error
}

func (e *ExtractionError) Error() string {
	if errors.Is(e.Cause, models.ErrUnsupportedFormat) {
		return fmt.Sprintf("unsupported file type: %s", e.Tag)
	}
	return fmt.Sprintf("%s extraction failed: %v", e.Tag.Display(), e.Cause)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{models.ErrExtractionFailure, e.Cause}
}

// Result holds either extracted text or an extraction error, never both.
type Result struct {
	text string
	err  *ExtractionError
}

func Text(s string) Result {
	return Result{text: s}
}

func Failed(tag format.Tag, cause error) Result {
	if cause == nil {
		cause = errors.New("unknown error")
	}
	return Result{err: &ExtractionError{Tag: tag, Cause: cause}}
}

// Value returns the text, or the extraction error if extraction failed.
func (r Result) Value() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.text, nil
}

func (r Result) Ok() bool {
	return r.err == nil
}

// Err returns nil when extraction succeeded.
func (r Result) Err() *ExtractionError {
	return r.err
}

// TextOrEmpty returns the extracted text, or "" for a failed extraction.
func (r Result) TextOrEmpty() string {
	if r.err != nil {
		return ""
	}
	return r.text
}

// Extractors holds one extractor per supported format tag.
type Extractors struct {
	PDF      Extractor
	DOCX     Extractor
	TXT      Extractor
	Excel    Extractor
	Markdown Extractor
	ImageOCR Extractor
}

// Default returns the built-in extractor set. ocr performs the
// recognition step for images.
func Default(ocr OCREngine) Extractors {
	return Extractors{
		PDF:      NewPDFExtractor(),
		DOCX:     NewDOCXExtractor(),
		TXT:      NewTextExtractor(format.TXT),
		Excel:    NewExcelExtractor(),
		Markdown: NewTextExtractor(format.Markdown),
		ImageOCR: NewImageExtractor(ocr),
	}
}

func (e Extractors) lookup(tag format.Tag) Extractor {
	switch tag {
	case format.PDF:
		return e.PDF
	case format.DOCX:
		return e.DOCX
	case format.TXT:
		return e.TXT
	case format.Excel:
		return e.Excel
	case format.Markdown:
		return e.Markdown
	case format.ImageOCR:
		return e.ImageOCR
	default:
		return nil
	}
}

// Registry dispatches extraction by format tag.
type Registry struct {
	extractors Extractors
}

// NewRegistry fails unless every supported tag has an extractor.
func NewRegistry(e Extractors) (*Registry, error) {
	for _, tag := range format.All() {
		if e.lookup(tag) == nil {
			return nil, fmt.Errorf("no extractor registered for format %s", tag)
		}
	}
	return &Registry{extractors: e}, nil
}

// Extract runs the extractor for tag. Unknown tags fail without reading r.
// Panics inside an extractor are converted to a failed Result.
func (reg *Registry) Extract(ctx context.Context, tag format.Tag, r io.ReadSeeker) (res Result) {
	ext := reg.extractors.lookup(tag)
	if ext == nil {
		return Failed(tag, models.ErrUnsupportedFormat)
	}
	if err := ctx.Err(); err != nil {
		return Failed(tag, err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			res = Failed(tag, fmt.Errorf("extractor panic: %v", rec))
		}
	}()

	return ext.Extract(ctx, r)
}

// readAll rewinds r and reads it to the end.
func readAll(r io.ReadSeeker) ([]byte, error) {
	if r == nil {
		return nil, errors.New("no content")
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind content: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	return data, nil
}
