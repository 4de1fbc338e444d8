// Package language identifies the dominant natural language of a text.
package language

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/BerylCAtieno/document-metadata-api/internal/models"
	"github.com/abadojack/whatlanggo"
)

const (
	Unknown = "Unknown"

	minTextLength = 10
	sampleLength  = 1000
)

// Candidate is the most probable language for a sample.
type Candidate struct {
	Code        string
	Probability float64
}

// Detector runs probabilistic identification on a text sample.
type Detector interface {
	Detect(sample string) (Candidate, error)
}

// WhatlangDetector is the default Detector.
type WhatlangDetector struct{}

func (WhatlangDetector) Detect(sample string) (Candidate, error) {
	info := whatlanggo.Detect(sample)
	if info.Script == nil {
		return Candidate{}, fmt.Errorf("%w: no script recognized", models.ErrDetectionFailure)
	}

	code := info.Lang.Iso6391()
	if code == "" {
		code = info.Lang.Iso6393()
	}
	if code == "" {
		return Candidate{}, fmt.Errorf("%w: no language code for %s", models.ErrDetectionFailure, info.Lang)
	}
	return Candidate{Code: code, Probability: info.Confidence}, nil
}

type Identifier struct {
	detector Detector
	// confidence must exceed reliableAbove for a reliable result
	reliableAbove float64
}

func NewIdentifier(detector Detector, reliableAbove float64) *Identifier {
	if detector == nil {
		detector = WhatlangDetector{}
	}
	return &Identifier{detector: detector, reliableAbove: reliableAbove}
}

// Identify never fails: short text and detector errors both yield
// Unknown with zero confidence.
func (id *Identifier) Identify(text string) models.LanguageResult {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minTextLength {
		return unknown()
	}

	candidate, err := id.detect(sample(text))
	if err != nil {
		return unknown()
	}

	confidence := math.Round(candidate.Probability*100) / 100
	return models.LanguageResult{
		Language:   Name(candidate.Code),
		Code:       candidate.Code,
		Confidence: confidence,
		Reliable:   confidence > id.reliableAbove,
	}
}

func (id *Identifier) detect(s string) (c Candidate, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: detector panic: %v", models.ErrDetectionFailure, rec)
		}
	}()
	return id.detector.Detect(s)
}

// Percent renders a confidence as "85.0%".
func Percent(confidence float64) string {
	return fmt.Sprintf("%.1f%%", confidence*100)
}

func sample(text string) string {
	if utf8.RuneCountInString(text) <= sampleLength {
		return text
	}
	return string([]rune(text)[:sampleLength])
}

func unknown() models.LanguageResult {
	return models.LanguageResult{Language: Unknown}
}
