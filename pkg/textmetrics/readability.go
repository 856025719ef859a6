package textmetrics

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	readabilityStrip  = regexp.MustCompile(`[^\p{L}\p{N}.?!\s]`)
	sentenceSeparator = regexp.MustCompile(`[.?!]+`)
)

// FleschReadingEase scores text on the Flesch Reading Ease scale, clamped to
// [0,100] and rounded to two decimals. Empty text scores 100.
func FleschReadingEase(text string) float64 {
	cleaned := NormalizeWhitespace(readabilityStrip.ReplaceAllString(text, ""))
	if cleaned == "" {
		return 100
	}

	sentences := 0
	for _, s := range sentenceSeparator.Split(cleaned, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	words := strings.Fields(cleaned)

	sentenceCount := max(sentences, 1)
	wordCount := max(len(words), 1)

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	wordsPerSentence := float64(wordCount) / float64(sentenceCount)
	syllablesPerWord := float64(syllables) / float64(wordCount)

	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	return clamp(round2(score), 0, 100)
}

// CountSyllables estimates syllables by counting vowel groups, with
// adjustments for a trailing silent "e" and a consonant + "le" ending.
// Words that are empty after cleaning count as zero.
func CountSyllables(word string) int {
	w := lettersOnly(stripDiacritics(strings.ToLower(word)))
	if w == "" {
		return 0
	}
	if len(w) <= 3 {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	if strings.HasSuffix(w, "e") {
		count--
	}
	if strings.HasSuffix(w, "le") && !isVowel(rune(w[len(w)-3])) {
		count++
	}
	return max(count, 1)
}

// ReadabilityLevel buckets a Flesch score into a label.
func ReadabilityLevel(score float64) string {
	switch {
	case score >= 90:
		return "very_easy"
	case score >= 80:
		return "easy"
	case score >= 70:
		return "fairly_easy"
	case score >= 60:
		return "standard"
	case score >= 50:
		return "fairly_difficult"
	case score >= 30:
		return "difficult"
	default:
		return "very_difficult"
	}
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func lettersOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
