// Package ocr wraps the Tesseract engine used for image documents.
package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract runs a fresh gosseract client per image. A client is not
// safe for concurrent use, so none is shared between requests.
type Tesseract struct {
	Languages []string
}

func NewTesseract(languages ...string) *Tesseract {
	return &Tesseract{Languages: languages}
}

func (t *Tesseract) Recognize(ctx context.Context, img []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(t.Languages) > 0 {
		if err := client.SetLanguage(t.Languages...); err != nil {
			return "", fmt.Errorf("failed to set OCR language: %w", err)
		}
	}

	// Fully automatic page segmentation, keep spacing between words
	client.SetVariable("tessedit_pageseg_mode", "3")
	client.SetVariable("preserve_interword_spaces", "1")

	if err := client.SetImageFromBytes(img); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to recognize text: %w", err)
	}
	return text, nil
}
