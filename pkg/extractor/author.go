package extractor

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/veritas/pkg/textmetrics"
)

// authorMetaSelectors are tried in order.
var authorMetaSelectors = []string{
	`meta[name="author"]`,
	`meta[property="author"]`,
	`meta[name="twitter:creator"]`,
	`meta[property="twitter:creator"]`,
	`meta[property="article:author"]`,
	`meta[name="article:author"]`,
}

const authorDOMSelector = `[rel="author"], a[class*="author"], a[href*="/author/"], .byline, .author-name, .writer-name`

// bylineScanWindow is how much leading content the last-resort scan reads.
const bylineScanWindow = 250

// Guards against a byline match swallowing unrelated prose or catching a
// lone capitalised word ("Stand By Me").
const (
	maxBylineLength = 50
	minBylineTokens = 2
	maxBylineTokens = 5
)

var (
	leadingBy     = regexp.MustCompile(`(?i)^by\s+`)
	contentByline = regexp.MustCompile(`\b[Bb][Yy]\s+(\p{Lu}[\p{L}.'\-]*(?:\s+\p{Lu}[\p{L}.'\-]*)*)`)
)

// authorStrategy returns a candidate author or "".
type authorStrategy func(p *page) string

// authorStrategies is the resolution order; the first non-empty wins.
var authorStrategies = []authorStrategy{
	authorFromMeta,
	authorFromJSONLD,
	authorFromDOM,
	authorFromContent,
}

func (e *Extractor) resolveAuthor(p *page) string {
	for _, strategy := range authorStrategies {
		if a := textmetrics.NormalizeWhitespace(strategy(p)); a != "" {
			return a
		}
	}
	return ""
}

func authorFromMeta(p *page) string {
	for _, sel := range authorMetaSelectors {
		var found string
		p.doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			v := textmetrics.NormalizeWhitespace(s.AttrOr("content", ""))
			// Profile URLs are not names.
			if v == "" || looksLikeURL(v) {
				return true
			}
			found = v
			return false
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func authorFromJSONLD(p *page) string {
	var found string
	p.doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return true
		}
		found = authorFromStructuredData(payload)
		return found == ""
	})
	return found
}

// authorFromStructuredData scans a decoded JSON-LD value for the first
// Article or NewsArticle and returns its author name, falling back to the
// publisher name.
func authorFromStructuredData(payload any) string {
	for _, item := range structuredItems(payload) {
		if !isArticleType(item["@type"]) {
			continue
		}
		if name := personName(item["author"]); name != "" {
			return name
		}
		if name := personName(item["publisher"]); name != "" {
			return name
		}
	}
	return ""
}

// structuredItems flattens top-level arrays and nested @graph arrays into a
// list of objects, preserving document order.
func structuredItems(v any) []map[string]any {
	var out []map[string]any
	var walk func(any)
	walk = func(v any) {
		switch t := v.(type) {
		case []any:
			for _, el := range t {
				walk(el)
			}
		case map[string]any:
			out = append(out, t)
			if graph, ok := t["@graph"]; ok {
				walk(graph)
			}
		}
	}
	walk(v)
	return out
}

func isArticleType(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "NewsArticle" || t == "Article"
	case []any:
		for _, el := range t {
			if isArticleType(el) {
				return true
			}
		}
	}
	return false
}

// personName reads a name from a string, an object with "name", or the
// first usable entry of an array of those.
func personName(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		if name, ok := t["name"].(string); ok {
			return strings.TrimSpace(name)
		}
	case []any:
		for _, el := range t {
			if name := personName(el); name != "" {
				return name
			}
		}
	}
	return ""
}

func authorFromDOM(p *page) string {
	var found string
	p.doc.Find(authorDOMSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := textmetrics.NormalizeWhitespace(s.Text())
		text = strings.TrimSpace(leadingBy.ReplaceAllString(text, ""))
		if text == "" {
			return true
		}
		found = text
		return false
	})
	return found
}

func authorFromContent(p *page) string {
	return bylineFromText(p.content, bylineScanWindow)
}

// bylineFromText looks for "by <Name>" in the first window characters of
// text. Matches of maxBylineLength or more characters, or with fewer than
// minBylineTokens or maxBylineTokens or more tokens, are rejected.
func bylineFromText(text string, window int) string {
	m := contentByline.FindStringSubmatch(textmetrics.Truncate(text, window))
	if len(m) < 2 {
		return ""
	}
	name := trimBylineSentence(m[1])
	tokens := len(strings.Fields(name))
	if len(name) >= maxBylineLength || tokens < minBylineTokens || tokens >= maxBylineTokens {
		return ""
	}
	return name
}

// trimBylineSentence cuts a captured name at the first token that ends a
// sentence, so "Mary Lee. The council" yields "Mary Lee". Short tokens such
// as "Dr." or "J." are treated as abbreviations.
func trimBylineSentence(captured string) string {
	tokens := strings.Fields(captured)
	for i, tok := range tokens {
		if strings.HasSuffix(tok, ".") && len(tok) > 3 {
			tokens[i] = strings.TrimSuffix(tok, ".")
			tokens = tokens[:i+1]
			break
		}
	}
	return strings.Join(tokens, " ")
}

// BylineFromText exposes the byline scan for the pasted-text path.
func BylineFromText(text string, window int) string {
	return textmetrics.NormalizeWhitespace(bylineFromText(text, window))
}

// IsGenericAuthor reports whether author is a role or desk label rather than
// an identifiable person or organisation. Short authors containing a
// single-word generic term (e.g. "Reuters Staff") also count.
func IsGenericAuthor(author string, generic []string) bool {
	a := strings.ToLower(textmetrics.NormalizeWhitespace(author))
	if a == "" {
		return false
	}
	tokens := strings.Fields(a)
	for _, g := range generic {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" {
			continue
		}
		if a == g {
			return true
		}
		if strings.Contains(g, " ") || len(tokens) > 3 {
			continue
		}
		for _, tok := range tokens {
			if strings.Trim(tok, ".,;:") == g {
				return true
			}
		}
	}
	return false
}

func looksLikeURL(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") || strings.HasPrefix(l, "www.")
}
