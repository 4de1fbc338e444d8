// Package metadata merges file attributes, extraction output, statistics
// and language into the display-ready MetadataRecord.
package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BerylCAtieno/document-metadata-api/internal/extractor"
	"github.com/BerylCAtieno/document-metadata-api/internal/format"
	"github.com/BerylCAtieno/document-metadata-api/internal/language"
	"github.com/BerylCAtieno/document-metadata-api/internal/models"
	"github.com/BerylCAtieno/document-metadata-api/internal/textstats"
	"github.com/dustin/go-humanize"
)

const TimestampLayout = "2006-01-02 15:04:05"

type Assembler struct {
	Now   func() time.Time
	Stats textstats.Options
}

func NewAssembler(opts textstats.Options) *Assembler {
	return &Assembler{Now: time.Now, Stats: opts}
}

// Assemble never fails. A failed extraction keeps its message in
// ExtractionError and reports statistics of empty text.
func (a *Assembler) Assemble(file models.UploadedFile, res extractor.Result, stats models.TextStatistics, lang models.LanguageResult) models.MetadataRecord {
	record := models.MetadataRecord{
		FileName:         file.Name,
		ExtractedOn:      a.now().Format(TimestampLayout),
		FileType:         format.Resolve(file.Name).Display(),
		FileSize:         FormatFileSize(file.SizeBytes),
		DetectedLanguage: formatLanguage(lang),
	}

	if err := res.Err(); err != nil {
		record.ExtractionError = err.Error()
		stats = textstats.Analyze("", a.Stats)
	}

	record.DocumentLength = FormatCount(stats.CharacterCount) + " characters"
	record.WordCount = FormatCount(stats.WordCount) + " words"
	record.ApproxReading = textstats.ReadingTime(stats.WordCount, a.Stats.WordsPerMinute)
	record.Paragraphs = FormatCount(stats.ParagraphCount) + " paragraphs"

	return record
}

func (a *Assembler) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// FormatFileSize scales by 1024 per unit with one decimal place.
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 B"
	}

	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f TB", value)
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

func formatLanguage(lang models.LanguageResult) string {
	if lang.Language == "" {
		return language.Unknown
	}
	if lang.Confidence == 0 {
		return lang.Language
	}
	return fmt.Sprintf("%s (%s)", lang.Language, language.Percent(lang.Confidence))
}

// ExportJSON renders the record as indented JSON in field order.
func ExportJSON(record models.MetadataRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
