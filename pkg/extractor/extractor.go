// Package extractor derives credibility signals from noisy page markup:
// title, author, publication date, main content, link counts, advertising
// indicators, policy links and opinion labelling.
package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/veritas/models"
	"github.com/dtnitsch/veritas/pkg/detector"
	"github.com/dtnitsch/veritas/pkg/lexicon"
	"github.com/dtnitsch/veritas/pkg/textmetrics"
	"github.com/go-shiori/go-readability"
)

// MaxContentLength caps the main content used for internal analysis.
const MaxContentLength = 8000

// Result is the markup-derived subset of models.AnalysisData.
type Result struct {
	URL             string
	Title           string
	Headings        string // title plus h1-h3 text, for punctuation checks
	Author          *string
	AuthorIsGeneric bool
	PublicationDate *string
	Content         string
	SiteType        models.SiteType

	LinkCount         int
	ExternalLinkCount int
	InternalLinkCount int

	AdCount              int
	AdvertisementDensity float64

	CorrectionsPolicyFound   bool
	OwnershipDisclosureFound bool
	HasAuthorBioLink         bool
	IsOpinionOrEditorial     bool
	OpinionLabelDetected     bool
}

// Extractor holds the compiled lexicon tables. It is safe for concurrent use;
// every call works on its own document.
type Extractor struct {
	lex        *lexicon.Lexicon
	classifier *detector.Classifier
	policies   *policyMatchers
	opinion    *textmetrics.LoadedLanguageMatcher
	labeler    *opinionLabeler
}

// New compiles lex for extraction. A nil lex uses lexicon.Default().
func New(lex *lexicon.Lexicon) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Extractor{
		lex:        lex,
		classifier: detector.NewClassifier(lex),
		policies:   newPolicyMatchers(lex),
		opinion:    textmetrics.NewLoadedLanguageMatcher(lex.OpinionIndicators),
		labeler:    newOpinionLabeler(lex.OpinionIndicators),
	}
}

// Classifier exposes the site-type classifier built from the same lexicon.
func (e *Extractor) Classifier() *detector.Classifier {
	return e.classifier
}

// ExtractHTML parses rawHTML and extracts signals for pageURL.
func (e *Extractor) ExtractHTML(rawHTML, pageURL string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return e.Extract(doc, pageURL), nil
}

// page carries the per-call state shared by the heuristics.
type page struct {
	doc     *goquery.Document
	url     *url.URL
	host    string
	content string

	article     *readability.Article
	articleDone bool
}

// readable runs go-readability on a copy of the document, once.
func (p *page) readable() *readability.Article {
	if p.articleDone {
		return p.article
	}
	p.articleDone = true

	clone := cloneDocument(p.doc)
	if clone == nil || len(clone.Nodes) == 0 {
		return nil
	}
	u := p.url
	if u == nil {
		u = &url.URL{}
	}
	parser := readability.NewParser()
	article, err := parser.ParseDocument(clone.Nodes[0], u)
	if err != nil {
		return nil
	}
	p.article = &article
	return p.article
}

// Extract runs every heuristic against doc. Structural cleanup for content
// extraction happens on a copy, so doc is left untouched.
func (e *Extractor) Extract(doc *goquery.Document, pageURL string) *Result {
	p := &page{doc: doc}
	if u, err := url.Parse(pageURL); err == nil {
		p.url = u
		p.host = strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	}
	p.content = extractContent(p)

	res := &Result{
		URL:     pageURL,
		Title:   extractTitle(doc),
		Content: p.content,
	}
	res.Headings = headingsText(doc, res.Title)

	if author := e.resolveAuthor(p); author != "" {
		res.Author = &author
		res.AuthorIsGeneric = IsGenericAuthor(author, e.lex.GenericAuthors)
	}
	res.PublicationDate = resolvePublicationDate(p)

	res.ExternalLinkCount, res.InternalLinkCount = classifyLinks(doc, p.host)
	res.LinkCount = res.ExternalLinkCount + res.InternalLinkCount

	res.SiteType = e.classifier.ReclassifyByAuthor(e.classifier.ClassifyURL(pageURL), res.AuthorName())

	res.CorrectionsPolicyFound, res.OwnershipDisclosureFound = e.policies.scanPolicies(doc)
	res.HasAuthorBioLink = e.policies.hasAuthorBioLink(doc, res.AuthorName())

	res.IsOpinionOrEditorial = e.opinion.Count(p.content) > 0
	res.OpinionLabelDetected = e.opinionLabel(doc, res.Title)

	res.AdCount, res.AdvertisementDensity = advertisementSignals(doc)

	return res
}

// AuthorName returns the resolved author or "".
func (r *Result) AuthorName() string {
	if r.Author == nil {
		return ""
	}
	return *r.Author
}

func extractTitle(doc *goquery.Document) string {
	if t := textmetrics.NormalizeWhitespace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t := textmetrics.NormalizeWhitespace(og); t != "" {
			return t
		}
	}
	return textmetrics.NormalizeWhitespace(doc.Find("h1").First().Text())
}

func headingsText(doc *goquery.Document, title string) string {
	parts := []string{title}
	doc.Find("h1,h2,h3").Each(func(_ int, s *goquery.Selection) {
		if t := textmetrics.NormalizeWhitespace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

func cloneDocument(doc *goquery.Document) *goquery.Document {
	if doc == nil || len(doc.Nodes) == 0 {
		return nil
	}
	clone := doc.Selection.Clone()
	if len(clone.Nodes) == 0 {
		return nil
	}
	return goquery.NewDocumentFromNode(clone.Nodes[0])
}
