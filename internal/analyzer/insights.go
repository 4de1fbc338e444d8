package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BerylCAtieno/document-metadata-api/internal/models"
	"github.com/BerylCAtieno/document-metadata-api/internal/utils"
)

const (
	TooShortSummary = "Text too short for analysis"
	EmptySummary    = "No summary returned"
	UnknownType     = "Unknown"
)

// StatusError is a non-200 reply from the LLM endpoint.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("LLM API returned status %d", e.StatusCode)
}

type Options struct {
	MinTextLength int
	KeyPoints     int
	// Timeout bounds each remote call. Zero leaves it to the client.
	Timeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		MinTextLength: 100,
		KeyPoints:     5,
		Timeout:       90 * time.Second,
	}
}

// Generator runs the three insight calls and substitutes placeholders
// for any that fail, so the result is always complete.
type Generator struct {
	gen    InsightGenerator
	opts   Options
	logger *utils.Logger
}

func NewGenerator(gen InsightGenerator, opts Options, logger *utils.Logger) *Generator {
	return &Generator{gen: gen, opts: opts, logger: logger}
}

func (g *Generator) Generate(ctx context.Context, text string) models.Insights {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < g.opts.MinTextLength {
		return models.Insights{
			Summary:      TooShortSummary,
			KeyPoints:    []string{},
			DocumentType: UnknownType,
		}
	}

	var insights models.Insights

	summary, err := callWithTimeout(ctx, g.opts.Timeout, func(ctx context.Context) (string, error) {
		return g.gen.Summarize(ctx, text)
	})
	if err != nil {
		g.logger.Warn("Summary generation failed", "error", err)
		summary = "Error generating summary: " + Reason(err)
	} else if strings.TrimSpace(summary) == "" {
		summary = EmptySummary
	}
	insights.Summary = summary

	points, err := callWithTimeout(ctx, g.opts.Timeout, func(ctx context.Context) ([]string, error) {
		return g.gen.KeyPoints(ctx, text, g.opts.KeyPoints)
	})
	if err != nil {
		g.logger.Warn("Key point extraction failed", "error", err)
		points = []string{"Error extracting key points: " + Reason(err)}
	}
	if len(points) > g.opts.KeyPoints {
		points = points[:g.opts.KeyPoints]
	}
	insights.KeyPoints = points

	docType, err := callWithTimeout(ctx, g.opts.Timeout, func(ctx context.Context) (string, error) {
		return g.gen.Classify(ctx, text)
	})
	if err != nil {
		g.logger.Warn("Document classification failed", "error", err)
		docType = "Error classifying document: " + Reason(err)
	} else if docType == "" {
		docType = UnknownType
	}
	insights.DocumentType = docType

	return insights
}

func callWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	v, err := fn(ctx)
	if err != nil {
		return v, fmt.Errorf("%w: %w", models.ErrDetectionFailure, err)
	}
	return v, nil
}

var statusReasons = map[int]string{
	http.StatusUnauthorized:    "authentication failed with provider",
	http.StatusForbidden:       "access denied by provider",
	http.StatusNotFound:        "model not found",
	http.StatusTooManyRequests: "rate limit exceeded",
}

// reasonPatterns is checked in order against the lowercased error text.
var reasonPatterns = []struct {
	pattern string
	reason  string
}{
	{"rate limit", "rate limit exceeded"},
	{"quota", "quota exceeded"},
	{"context deadline exceeded", "request timed out"},
	{"timeout", "request timed out"},
	{"context canceled", "request cancelled"},
	{"no such host", "provider unreachable"},
	{"connection refused", "provider unreachable"},
	{"unauthorized", "authentication failed with provider"},
	{"no choices", "empty response from provider"},
}

// Reason turns a provider error into a short client-safe description.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if reason, ok := statusReasons[statusErr.StatusCode]; ok {
			return reason
		}
		return fmt.Sprintf("provider returned status %d", statusErr.StatusCode)
	}

	msg := strings.ToLower(err.Error())
	for _, p := range reasonPatterns {
		if strings.Contains(msg, p.pattern) {
			return p.reason
		}
	}
	return "provider temporarily unavailable"
}
