// Package signals assembles models.AnalysisData from either fetched markup or
// pasted text. Both paths produce the same shape, so scoring never needs to
// know where the data came from.
package signals

import (
	"regexp"
	"strings"
	"time"

	"github.com/dtnitsch/veritas/models"
	"github.com/dtnitsch/veritas/pkg/detector"
	"github.com/dtnitsch/veritas/pkg/extractor"
	"github.com/dtnitsch/veritas/pkg/lexicon"
	"github.com/dtnitsch/veritas/pkg/textmetrics"
)

// ManualTextURL marks AnalysisData built from pasted text.
const ManualTextURL = "manual-text"

const (
	textBylineWindow = 500
	textTitleLength  = 120
	pastedTitleMark  = "(Pasted Text)"
)

var (
	citationPattern = regexp.MustCompile(`(?i)references|sources|citations`)
	literalURL      = regexp.MustCompile(`https?://`)
)

// Assembler builds AnalysisData. It keeps no per-call state and is safe for
// concurrent use.
type Assembler struct {
	lex       *lexicon.Lexicon
	extractor *extractor.Extractor
	loaded    *textmetrics.LoadedLanguageMatcher
	opinion   *textmetrics.LoadedLanguageMatcher
	now       func() time.Time
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithClock overrides the time source used for pasted-text publication dates.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		a.now = now
	}
}

// New builds an Assembler over lex. A nil lex uses lexicon.Default().
func New(lex *lexicon.Lexicon, opts ...Option) *Assembler {
	if lex == nil {
		lex = lexicon.Default()
	}
	a := &Assembler{
		lex:       lex,
		extractor: extractor.New(lex),
		loaded:    textmetrics.NewLoadedLanguageMatcher(lex.LoadedLanguage),
		opinion:   textmetrics.NewLoadedLanguageMatcher(lex.OpinionIndicators),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FromPage runs the markup extractor over rawHTML fetched from pageURL.
func (a *Assembler) FromPage(rawHTML, pageURL string) (models.AnalysisData, error) {
	res, err := a.extractor.ExtractHTML(rawHTML, pageURL)
	if err != nil {
		return models.AnalysisData{}, err
	}

	data := models.AnalysisData{
		URL:             pageURL,
		Title:           res.Title,
		Author:          res.Author,
		AuthorIsGeneric: res.AuthorIsGeneric,
		PublicationDate: res.PublicationDate,
		SiteType:        res.SiteType,

		LinkCount:         res.LinkCount,
		ExternalLinkCount: res.ExternalLinkCount,
		InternalLinkCount: res.InternalLinkCount,

		AdCount:              res.AdCount,
		AdvertisementDensity: res.AdvertisementDensity,

		CorrectionsPolicyFound:   res.CorrectionsPolicyFound,
		OwnershipDisclosureFound: res.OwnershipDisclosureFound,
		HasAuthorBioLink:         res.HasAuthorBioLink,
		IsOpinionOrEditorial:     res.IsOpinionOrEditorial,
		OpinionLabelDetected:     res.OpinionLabelDetected,

		LoadedLanguageCount:       a.loaded.Count(res.Title + " " + res.Content),
		ExcessivePunctuationCount: textmetrics.CountExcessivePunctuation(res.Headings),
		HeadlineAllCapsRatio:      textmetrics.AllCapsRatio(res.Title),
	}
	a.fillContentSignals(&data, res.Content)
	return data, nil
}

// FromText applies the simplified pasted-text heuristics. There is no markup,
// so link counts come from literal URL occurrences and ad signals are zero.
func (a *Assembler) FromText(text string) models.AnalysisData {
	text = textmetrics.NormalizeWhitespace(text)
	links := len(literalURL.FindAllStringIndex(text, -1))

	data := models.AnalysisData{
		URL:               ManualTextURL,
		Title:             pastedTitle(text),
		SiteType:          a.extractor.Classifier().ClassifyText(text),
		LinkCount:         links,
		ExternalLinkCount: links,

		IsOpinionOrEditorial: a.opinion.Count(text) > 0,

		LoadedLanguageCount:       a.loaded.Count(text),
		ExcessivePunctuationCount: textmetrics.CountExcessivePunctuation(text),
	}
	data.HeadlineAllCapsRatio = textmetrics.AllCapsRatio(strings.TrimSuffix(data.Title, " "+pastedTitleMark))

	if author := extractor.BylineFromText(text, textBylineWindow); author != "" {
		data.Author = &author
		data.AuthorIsGeneric = extractor.IsGenericAuthor(author, a.lex.GenericAuthors)
	}
	now := a.now().UTC().Format(time.RFC3339)
	data.PublicationDate = &now

	a.fillContentSignals(&data, text)
	return data
}

// fillContentSignals sets the fields derived from main content alone.
func (a *Assembler) fillContentSignals(data *models.AnalysisData, content string) {
	data.ReadabilityScore = textmetrics.FleschReadingEase(content)
	data.HasCitations = citationPattern.MatchString(content)
	data.WordCount = textmetrics.WordCount(content)
	if lang := detector.DetectLanguage(content); lang != "" {
		data.Language = &lang
	}
	data.Content = textmetrics.Truncate(content, models.MaxContentLength)
}

// IsPastedText reports whether data came from the pasted-text path.
func IsPastedText(data models.AnalysisData) bool {
	return strings.HasPrefix(data.URL, ManualTextURL)
}

func pastedTitle(text string) string {
	head := strings.TrimSpace(textmetrics.Truncate(text, textTitleLength))
	if head == "" {
		return pastedTitleMark
	}
	if len([]rune(text)) > textTitleLength {
		head += "..."
	}
	return head + " " + pastedTitleMark
}
