// Package textstats computes descriptive statistics over extracted text.
// Every function is total: the empty string yields zero values.
package textstats

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BerylCAtieno/document-metadata-api/internal/models"
)

const (
	ReadabilityEasy   = "Easy"
	ReadabilityMedium = "Medium"
	ReadabilityHard   = "Hard"
	ReadabilityNA     = "N/A"
)

// Options tunes the derived statistics.
type Options struct {
	// Average words per sentence below EasyBelow is Easy, below
	// MediumBelow is Medium, anything else is Hard.
	EasyBelow   float64
	MediumBelow float64

	TopWords       int
	WordsPerMinute int
}

func DefaultOptions() Options {
	return Options{
		EasyBelow:      15,
		MediumBelow:    20,
		TopWords:       5,
		WordsPerMinute: 200,
	}
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"of": {}, "with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "have": {},
	"has": {}, "had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
}

// Analyze computes the full statistics record for text.
func Analyze(text string, opts Options) models.TextStatistics {
	words := WordCount(text)
	sentences := SentenceCount(text)
	noSpaces := utf8.RuneCountInString(strings.ReplaceAll(text, " ", ""))

	return models.TextStatistics{
		WordCount:              words,
		SentenceCount:          sentences,
		ParagraphCount:         ParagraphCount(text),
		LineCount:              LineCount(text),
		CharacterCount:         utf8.RuneCountInString(text),
		CharacterCountNoSpaces: noSpaces,
		AvgWordLength:          roundOne(ratio(noSpaces, words)),
		AvgSentenceLength:      roundOne(ratio(words, sentences)),
		Readability:            Readability(words, sentences, opts),
		TopWords:               TopWords(text, opts.TopWords),
	}
}

func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SentenceCount splits on runs of terminal punctuation and counts the
// non-blank segments.
func SentenceCount(text string) int {
	count := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			count++
		}
	}
	return count
}

// ParagraphCount counts non-blank blocks separated by a blank line.
func ParagraphCount(text string) int {
	count := 0
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	return count
}

func LineCount(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// Readability buckets the average sentence length. Thresholds are
// half-open: exactly EasyBelow is Medium, exactly MediumBelow is Hard.
func Readability(words, sentences int, opts Options) string {
	if sentences == 0 {
		return ReadabilityNA
	}

	avg := float64(words) / float64(sentences)
	switch {
	case avg < opts.EasyBelow:
		return ReadabilityEasy
	case avg < opts.MediumBelow:
		return ReadabilityMedium
	default:
		return ReadabilityHard
	}
}

// TopWords returns the n most frequent content words, most frequent
// first, ties in order of first occurrence.
func TopWords(text string, n int) []models.WordFrequency {
	counts := make(map[string]int)
	var order []string

	for _, word := range tokens(strings.ToLower(text)) {
		if _, stop := stopWords[word]; stop || len(word) <= 2 {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if n < 0 {
		n = 0
	}
	if len(order) > n {
		order = order[:n]
	}

	out := make([]models.WordFrequency, 0, len(order))
	for _, word := range order {
		out = append(out, models.WordFrequency{Word: word, Count: counts[word]})
	}
	return out
}

// tokens yields maximal runs of word characters that consist solely of
// ASCII letters. Runs mixing in digits, underscores or other letters are
// dropped whole.
func tokens(text string) []string {
	var out []string
	start := -1
	asciiOnly := true

	flush := func(end int) {
		if start >= 0 && asciiOnly {
			out = append(out, text[start:end])
		}
		start = -1
		asciiOnly = true
	}

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			if !isASCIILetter(r) {
				asciiOnly = false
			}
			continue
		}
		flush(i)
	}
	flush(len(text))

	return out
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
