package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/BerylCAtieno/document-metadata-api/internal/format"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// OCREngine recognizes text in an encoded image.
type OCREngine interface {
	Recognize(ctx context.Context, img []byte) (string, error)
}

type imageExtractor struct {
	engine OCREngine
}

func NewImageExtractor(engine OCREngine) Extractor {
	return imageExtractor{engine: engine}
}

func (e imageExtractor) Extract(ctx context.Context, r io.ReadSeeker) Result {
	data, err := readAll(r)
	if err != nil {
		return Failed(format.ImageOCR, err)
	}

	// Reject unreadable data before handing it to the OCR engine
	if _, kind, err := image.Decode(bytes.NewReader(data)); err != nil {
		return Failed(format.ImageOCR, fmt.Errorf("unreadable image data: %w", err))
	} else if e.engine == nil {
		return Failed(format.ImageOCR, fmt.Errorf("no OCR engine configured for %s image", kind))
	}

	text, err := e.engine.Recognize(ctx, data)
	if err != nil {
		return Failed(format.ImageOCR, fmt.Errorf("text recognition failed: %w", err))
	}

	return Text(strings.TrimSpace(text))
}

// ErrNoOCR is returned by NoOCR.
var ErrNoOCR = errors.New("OCR is not available")

// NoOCR is an engine for deployments without an OCR backend.
type NoOCR struct{}

func (NoOCR) Recognize(context.Context, []byte) (string, error) {
	return "", ErrNoOCR
}
