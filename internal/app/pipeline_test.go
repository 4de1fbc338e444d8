package app

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/BerylCAtieno/document-metadata-api/internal/config"
	"github.com/BerylCAtieno/document-metadata-api/internal/extractor"
	"github.com/BerylCAtieno/document-metadata-api/internal/models"
	"github.com/BerylCAtieno/document-metadata-api/internal/utils"
)

func testConfig(t *testing.T, ocrLanguage string) *config.Config {
	t.Helper()
	t.Setenv("MISTRAL_API_KEY", "")
	t.Setenv("OCR_LANGUAGE", ocrLanguage)

	cfg, err := config.LoadWith(func(c *config.Config) { c.InsightsEnabled = false })
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestOCREngineSelection(t *testing.T) {
	if _, ok := ocrEngine(testConfig(t, "none"), utils.NopLogger()).(extractor.NoOCR); !ok {
		t.Error("OCR_LANGUAGE=none did not disable OCR")
	}
	if _, ok := ocrEngine(testConfig(t, "eng+deu"), utils.NopLogger()).(extractor.NoOCR); ok {
		t.Error("OCR_LANGUAGE=eng+deu disabled OCR")
	}
}

func TestNewPipelineWithoutOCR(t *testing.T) {
	p, err := NewPipeline(testConfig(t, "none"), utils.NopLogger())
	if err != nil {
		t.Fatalf("NewPipeline returned error: %v", err)
	}

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	got, err := p.Run(context.Background(), models.UploadedFile{
		Name:      "scan.png",
		SizeBytes: int64(buf.Len()),
		Content:   bytes.NewReader(buf.Bytes()),
	}, false)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(got.Metadata.ExtractionError, extractor.ErrNoOCR.Error()) {
		t.Errorf("ExtractionError = %q", got.Metadata.ExtractionError)
	}
	if got.Metadata.Summary != "" {
		t.Errorf("Summary = %q without insights", got.Metadata.Summary)
	}
}
