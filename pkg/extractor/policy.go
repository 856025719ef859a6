package extractor

import (
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/dtnitsch/veritas/pkg/lexicon"
	"github.com/dtnitsch/veritas/pkg/textmetrics"
)

// authorPathMarkers identify generic author profile paths.
var authorPathMarkers = []string{"/author/", "/authors/", "/profile/", "/people/"}

// opinionMetaSelector lists article section/type meta tags.
const opinionMetaSelector = `meta[property="article:section"], meta[name="article:section"], ` +
	`meta[property="article:type"], meta[name="article:type"], meta[name="article-type"], ` +
	`meta[name="article.type"], meta[property="og:article:section"]`

// keywordSet matches a keyword table against anchor text and, with spaces
// hyphenated, against hrefs. A whole set only accepts hits bounded by
// non-alphanumerics, so "bio" matches "/bio/" and "jane-bio" but not
// "biology".
type keywordSet struct {
	// Matcher.Match updates per-matcher state; mu serialises it.
	mu   sync.Mutex
	text *ahocorasick.Matcher
	href *ahocorasick.Matcher

	textBounds []*regexp.Regexp
	hrefBounds []*regexp.Regexp
}

func newKeywordSet(keywords []string, whole bool) *keywordSet {
	var text, href []string
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		text = append(text, k)
		href = append(href, strings.ReplaceAll(k, " ", "-"))
	}
	if len(text) == 0 {
		return nil
	}
	k := &keywordSet{
		text: ahocorasick.NewStringMatcher(text),
		href: ahocorasick.NewStringMatcher(href),
	}
	if whole {
		k.textBounds = boundedPatterns(text)
		k.hrefBounds = boundedPatterns(href)
	}
	return k
}

func boundedPatterns(keywords []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(keywords))
	for i, k := range keywords {
		out[i] = regexp.MustCompile(`(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(k) + `($|[^\p{L}\p{N}])`)
	}
	return out
}

// matches reports whether lowered anchor text or href contains a keyword.
func (k *keywordSet) matches(text, href string) bool {
	if k == nil {
		return false
	}
	k.mu.Lock()
	textHits := k.text.Match([]byte(text))
	hrefHits := k.href.Match([]byte(href))
	k.mu.Unlock()
	return confirmed(textHits, k.textBounds, text) || confirmed(hrefHits, k.hrefBounds, href)
}

// confirmed reports whether any hit survives the boundary check. With no
// bounds every hit counts.
func confirmed(hits []int, bounds []*regexp.Regexp, s string) bool {
	if bounds == nil {
		return len(hits) > 0
	}
	for _, i := range hits {
		if bounds[i].MatchString(s) {
			return true
		}
	}
	return false
}

type policyMatchers struct {
	corrections *keywordSet
	ownership   *keywordSet
	bio         *keywordSet
}

func newPolicyMatchers(lex *lexicon.Lexicon) *policyMatchers {
	return &policyMatchers{
		corrections: newKeywordSet(lex.CorrectionsKeywords, false),
		ownership:   newKeywordSet(lex.OwnershipKeywords, false),
		bio:         newKeywordSet(lex.AuthorBioKeywords, true),
	}
}

type anchor struct {
	text string
	href string
}

func anchors(doc *goquery.Document) []anchor {
	var out []anchor
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		out = append(out, anchor{
			text: strings.ToLower(textmetrics.NormalizeWhitespace(s.Text())),
			href: strings.ToLower(strings.TrimSpace(s.AttrOr("href", ""))),
		})
	})
	return out
}

// scanPolicies looks for corrections-policy and ownership-disclosure links.
func (m *policyMatchers) scanPolicies(doc *goquery.Document) (corrections, ownership bool) {
	for _, a := range anchors(doc) {
		if !corrections && m.corrections.matches(a.text, a.href) {
			corrections = true
		}
		if !ownership && m.ownership.matches(a.text, a.href) {
			ownership = true
		}
		if corrections && ownership {
			break
		}
	}
	return corrections, ownership
}

// hasAuthorBioLink requires one anchor that both references a bio and points
// at the author, by name or through a generic author path.
func (m *policyMatchers) hasAuthorBioLink(doc *goquery.Document, author string) bool {
	name := strings.ToLower(textmetrics.NormalizeWhitespace(author))
	slug := strings.ReplaceAll(name, " ", "-")

	for _, a := range anchors(doc) {
		if !m.bio.matches(a.text, a.href) {
			continue
		}
		if name != "" && (strings.Contains(a.text, name) || strings.Contains(a.href, slug)) {
			return true
		}
		for _, marker := range authorPathMarkers {
			if strings.Contains(a.href, marker) {
				return true
			}
		}
	}
	return false
}

// opinionLabeler detects explicit opinion labels in titles and meta tags.
type opinionLabeler struct {
	prefixes []string
	segments []*regexp.Regexp
}

func newOpinionLabeler(indicators []string) *opinionLabeler {
	l := &opinionLabeler{}
	for _, kw := range indicators {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		l.prefixes = append(l.prefixes, kw)
		l.segments = append(l.segments, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\s*:`))
	}
	return l
}

// titleLabeled reports whether the title starts with an indicator or
// contains "<indicator>:" as a segment.
func (l *opinionLabeler) titleLabeled(title string) bool {
	lowered := strings.ToLower(strings.TrimSpace(title))
	for i, kw := range l.prefixes {
		if strings.HasPrefix(lowered, kw) || l.segments[i].MatchString(lowered) {
			return true
		}
	}
	return false
}

// opinionLabel reports an explicit opinion label in the title or in a
// section/type meta tag.
func (e *Extractor) opinionLabel(doc *goquery.Document, title string) bool {
	if e.labeler.titleLabeled(title) {
		return true
	}
	found := false
	doc.Find(opinionMetaSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if e.opinion.Count(s.AttrOr("content", "")) > 0 {
			found = true
			return false
		}
		return true
	})
	return found
}
