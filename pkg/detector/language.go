package detector

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// minLanguageConfidence is the lowest confidence at which a language is
// reported. Below it the language stays unknown.
const minLanguageConfidence = 0.5

// maxLanguageSample bounds the text handed to the detector.
const maxLanguageSample = 2000

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

func detectorInstance() lingua.LanguageDetector {
	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English, lingua.French, lingua.German, lingua.Spanish,
				lingua.Italian, lingua.Portuguese, lingua.Dutch,
			).
			Build()
	})
	return languageDetector
}

// DetectLanguage returns the ISO 639-1 code of the dominant language of
// text, or "" when it cannot be determined with confidence.
func DetectLanguage(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if r := []rune(text); len(r) > maxLanguageSample {
		text = string(r[:maxLanguageSample])
	}

	d := detectorInstance()
	lang, ok := d.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	if d.ComputeLanguageConfidence(text, lang) < minLanguageConfidence {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
