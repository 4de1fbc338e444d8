// Package app wires configuration into the production components shared
// by the server and the CLI.
package app

import (
	"github.com/BerylCAtieno/document-metadata-api/internal/analyzer"
	"github.com/BerylCAtieno/document-metadata-api/internal/config"
	"github.com/BerylCAtieno/document-metadata-api/internal/extractor"
	"github.com/BerylCAtieno/document-metadata-api/internal/language"
	"github.com/BerylCAtieno/document-metadata-api/internal/ocr"
	"github.com/BerylCAtieno/document-metadata-api/internal/pipeline"
	"github.com/BerylCAtieno/document-metadata-api/internal/utils"
)

// NewPipeline assembles the production pipeline from Tesseract OCR and
// whatlanggo detection, adding the chat completions client when insights
// are enabled.
func NewPipeline(cfg *config.Config, logger *utils.Logger) (*pipeline.Pipeline, error) {
	registry, err := extractor.NewRegistry(extractor.Default(ocrEngine(cfg, logger)))
	if err != nil {
		return nil, err
	}

	deps := pipeline.Deps{
		Registry: registry,
		Detector: language.WhatlangDetector{},
	}

	if cfg.InsightsEnabled {
		deps.Generator = analyzer.NewChatClient(analyzer.ChatConfig{
			APIKey:      cfg.LLMAPIKey,
			Model:       cfg.LLMModel,
			BaseURL:     cfg.LLMBaseURL,
			Temperature: cfg.LLMTemperature,
			Timeout:     cfg.LLMTimeout,
		}, logger)
	}

	return pipeline.New(pipeline.ConfigFrom(cfg), deps, logger)
}

// ocrEngine returns Tesseract for the configured languages, or an engine
// that fails every image when OCR_LANGUAGE is "none".
func ocrEngine(cfg *config.Config, logger *utils.Logger) extractor.OCREngine {
	langs := cfg.OCRLanguages()
	if len(langs) == 0 {
		logger.Info("OCR disabled, image uploads will report an extraction error")
		return extractor.NoOCR{}
	}
	return ocr.NewTesseract(langs...)
}
