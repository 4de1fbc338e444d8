package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/BerylCAtieno/document-metadata-api/internal/format"
	"github.com/ledongthuc/pdf"
)

type pdfExtractor struct{}

func NewPDFExtractor() Extractor {
	return pdfExtractor{}
}

func (pdfExtractor) Extract(_ context.Context, r io.ReadSeeker) Result {
	data, err := readAll(r)
	if err != nil {
		return Failed(format.PDF, err)
	}

	text, err := extractPDF(data)
	if err != nil {
		return Failed(format.PDF, err)
	}
	return Text(text)
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)

	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			textBuilder.WriteString("\n")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}

		// GetPlainText opens each page with a newline of its own
		textBuilder.WriteString(strings.Trim(text, "\n"))
		textBuilder.WriteString("\n")
	}

	return strings.TrimSpace(textBuilder.String()), nil
}
