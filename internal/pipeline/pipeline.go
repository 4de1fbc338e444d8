// Package pipeline turns one uploaded file into a metadata record:
// resolve format, extract text, compute statistics and language,
// assemble the record and optionally merge LLM insights.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/document-metadata-api/internal/analyzer"
	"github.com/BerylCAtieno/document-metadata-api/internal/config"
	"github.com/BerylCAtieno/document-metadata-api/internal/extractor"
	"github.com/BerylCAtieno/document-metadata-api/internal/format"
	"github.com/BerylCAtieno/document-metadata-api/internal/language"
	"github.com/BerylCAtieno/document-metadata-api/internal/metadata"
	"github.com/BerylCAtieno/document-metadata-api/internal/models"
	"github.com/BerylCAtieno/document-metadata-api/internal/textstats"
	"github.com/BerylCAtieno/document-metadata-api/internal/utils"
)

type Config struct {
	MaxFileSize   int64
	Stats         textstats.Options
	ReliableAbove float64
	Insights      analyzer.Options
}

// ConfigFrom derives pipeline settings from the service configuration.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		MaxFileSize: cfg.MaxFileSize(),
		Stats: textstats.Options{
			EasyBelow:      cfg.ReadabilityEasyBelow,
			MediumBelow:    cfg.ReadabilityMediumBelow,
			TopWords:       cfg.TopWordCount,
			WordsPerMinute: cfg.ReadingSpeedWPM,
		},
		ReliableAbove: cfg.LanguageReliableAbove,
		Insights: analyzer.Options{
			MinTextLength: cfg.MinInsightText,
			KeyPoints:     cfg.KeyPointCount,
			Timeout:       cfg.LLMTimeout,
		},
	}
}

// Deps are the collaborators of a Pipeline. Generator may be nil, in
// which case insights are never produced.
type Deps struct {
	Registry  *extractor.Registry
	Detector  language.Detector
	Generator analyzer.InsightGenerator
	Now       func() time.Time
}

type Pipeline struct {
	cfg        Config
	registry   *extractor.Registry
	identifier *language.Identifier
	assembler  *metadata.Assembler
	insights   *analyzer.Generator
	logger     *utils.Logger
}

func New(cfg Config, deps Deps, logger *utils.Logger) (*Pipeline, error) {
	if deps.Registry == nil {
		return nil, errors.New("pipeline requires an extractor registry")
	}
	if cfg.MaxFileSize <= 0 {
		return nil, fmt.Errorf("max file size must be positive, got %d", cfg.MaxFileSize)
	}
	if cfg.Stats.WordsPerMinute <= 0 {
		return nil, fmt.Errorf("reading speed must be positive, got %d", cfg.Stats.WordsPerMinute)
	}
	if cfg.Stats.EasyBelow > cfg.Stats.MediumBelow {
		return nil, fmt.Errorf("easy readability threshold %v exceeds medium threshold %v", cfg.Stats.EasyBelow, cfg.Stats.MediumBelow)
	}

	assembler := metadata.NewAssembler(cfg.Stats)
	if deps.Now != nil {
		assembler.Now = deps.Now
	}

	p := &Pipeline{
		cfg:        cfg,
		registry:   deps.Registry,
		identifier: language.NewIdentifier(deps.Detector, cfg.ReliableAbove),
		assembler:  assembler,
		logger:     logger,
	}
	if deps.Generator != nil {
		p.insights = analyzer.NewGenerator(deps.Generator, cfg.Insights, logger)
	}
	return p, nil
}

// ReasonNoFile is the validation message for a missing upload.
const ReasonNoFile = "No file provided"

// ValidationError rejects a file before any extraction is attempted.
type ValidationError struct {
	Err    error
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (p *Pipeline) Validate(file models.UploadedFile) error {
	if file.Name == "" || file.Content == nil {
		return &ValidationError{Err: models.ErrUnsupportedFormat, Reason: ReasonNoFile}
	}

	if !format.IsSupported(file.Name) {
		return &ValidationError{
			Err:    models.ErrUnsupportedFormat,
			Reason: "Unsupported format. Supported: " + strings.Join(format.SupportedExtensions(), ", "),
		}
	}

	if file.SizeBytes < 0 {
		return &ValidationError{Err: models.ErrOversizeFile, Reason: "File size is unknown"}
	}
	if file.SizeBytes > p.cfg.MaxFileSize {
		return &ValidationError{
			Err:    models.ErrOversizeFile,
			Reason: "File too large. Max size: " + p.MaxFileSizeLabel(),
		}
	}

	return nil
}

// MaxFileSizeLabel renders the limit as it appears in messages.
func (p *Pipeline) MaxFileSizeLabel() string {
	const mb = 1024 * 1024
	if p.cfg.MaxFileSize%mb == 0 {
		return fmt.Sprintf("%d MB", p.cfg.MaxFileSize/mb)
	}
	return metadata.FormatFileSize(p.cfg.MaxFileSize)
}

func (p *Pipeline) MaxFileSize() int64 {
	return p.cfg.MaxFileSize
}

// InsightsAvailable reports whether an insight generator is configured.
func (p *Pipeline) InsightsAvailable() bool {
	return p.insights != nil
}

// Run analyzes file. Only validation failures are returned as errors;
// extraction and detection failures are recorded in the result.
func (p *Pipeline) Run(ctx context.Context, file models.UploadedFile, withInsights bool) (*models.Analysis, error) {
	if err := p.Validate(file); err != nil {
		return nil, err
	}

	tag := format.Resolve(file.Name)
	p.logger.Debug("Extracting document", "filename", file.Name, "format", tag)

	res := p.registry.Extract(ctx, tag, file.Content)
	if err := res.Err(); err != nil {
		p.logger.Warn("Extraction failed", "filename", file.Name, "format", tag, "error", err)
	}

	text := res.TextOrEmpty()
	stats := textstats.Analyze(text, p.cfg.Stats)
	lang := p.identifier.Identify(text)

	record := p.assembler.Assemble(file, res, stats, lang)

	if withInsights && p.insights != nil {
		record = record.WithInsights(p.insights.Generate(ctx, text))
	}

	p.logger.Info("Document analyzed",
		"filename", file.Name,
		"format", tag,
		"words", stats.WordCount,
		"language", lang.Language,
		"extraction_failed", !res.Ok())

	return &models.Analysis{
		FileSizeBytes: file.SizeBytes,
		Metadata:      record,
		Statistics:    stats,
		Language:      lang,
	}, nil
}
