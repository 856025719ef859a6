// Package textmetrics provides pure, deterministic text measurements:
// readability, loaded-language counts, punctuation and capitalisation
// sensationalism, and whitespace helpers used by the extractor.
package textmetrics

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	exclamationRuns = regexp.MustCompile(`!{2,}`)
	questionRuns    = regexp.MustCompile(`\?{2,}`)
)

// NormalizeWhitespace collapses whitespace runs to single spaces and trims.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// LargestBlock normalizes each block and returns the longest non-empty one.
// Ties keep the earlier block.
func LargestBlock(blocks []string) string {
	best := ""
	for _, b := range blocks {
		n := NormalizeWhitespace(b)
		if len(n) > len(best) {
			best = n
		}
	}
	return best
}

// Truncate cuts text to at most n runes.
func Truncate(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(text) <= n {
		return text
	}
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n])
}

// CountExcessivePunctuation counts runs of two or more "!" plus runs of two
// or more "?".
func CountExcessivePunctuation(text string) int {
	return len(exclamationRuns.FindAllStringIndex(text, -1)) +
		len(questionRuns.FindAllStringIndex(text, -1))
}

// AllCapsRatio returns uppercase letters over all letters, or 0 when the text
// has no letters.
func AllCapsRatio(text string) float64 {
	letters, upper := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// LoadedLanguageMatcher counts whole-word, case-insensitive occurrences of a
// fixed term list. Each term is matched independently.
type LoadedLanguageMatcher struct {
	patterns []*regexp.Regexp
}

// NewLoadedLanguageMatcher compiles one pattern per term. Regex
// metacharacters in terms are escaped.
func NewLoadedLanguageMatcher(terms []string) *LoadedLanguageMatcher {
	m := &LoadedLanguageMatcher{patterns: make([]*regexp.Regexp, 0, len(terms))}
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		m.patterns = append(m.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return m
}

// Count returns the total number of term occurrences in text.
func (m *LoadedLanguageMatcher) Count(text string) int {
	lowered := strings.ToLower(text)
	total := 0
	for _, p := range m.patterns {
		total += len(p.FindAllStringIndex(lowered, -1))
	}
	return total
}

// CountLoadedLanguage is a one-shot convenience over LoadedLanguageMatcher.
func CountLoadedLanguage(text string, terms []string) int {
	return NewLoadedLanguageMatcher(terms).Count(text)
}
