package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/veritas/pkg/textmetrics"
	"golang.org/x/net/html"
)

// nonContentSelector is stripped before any content candidate is read.
const nonContentSelector = `script, style, noscript, template, nav, header, footer, aside, form, ` +
	`[role="navigation"], [role="search"], [role="banner"], [role="contentinfo"]`

// contentCandidates are read in order; the largest block wins.
var contentCandidates = []string{
	"article",
	"main",
	`[role="main"]`,
	"#content",
	"#main",
	".article-body",
	".post-content",
	".entry-content",
	".story-content",
}

// extractContent returns the most likely main content of p, normalised and
// capped at MaxContentLength. The page document is not modified.
func extractContent(p *page) string {
	clean := cloneDocument(p.doc)
	if clean == nil {
		return ""
	}
	clean.Find(nonContentSelector).Remove()
	clean.Find(adSelector).Remove()

	var blocks []string
	for _, sel := range contentCandidates {
		if t := textmetrics.NormalizeWhitespace(selectionText(clean.Find(sel))); t != "" {
			blocks = append(blocks, t)
		}
	}

	if len(blocks) == 0 {
		var paragraphs []string
		clean.Find("p").Each(func(_ int, s *goquery.Selection) {
			if t := textmetrics.NormalizeWhitespace(selectionText(s)); t != "" {
				paragraphs = append(paragraphs, t)
			}
		})
		if joined := strings.Join(paragraphs, " "); joined != "" {
			blocks = append(blocks, joined)
		}
	}

	if len(blocks) == 0 {
		if article := p.readable(); article != nil {
			if t := textmetrics.NormalizeWhitespace(article.TextContent); t != "" {
				blocks = append(blocks, t)
			}
		}
	}

	if len(blocks) == 0 {
		blocks = append(blocks, selectionText(clean.Find("body")))
	}

	return textmetrics.Truncate(textmetrics.LargestBlock(blocks), MaxContentLength)
}

// blockElements get a separator around their text so adjacent blocks do not
// run together.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "blockquote": true, "pre": true,
	"table": true, "tr": true, "td": true, "th": true, "figcaption": true,
}

// selectionText concatenates the text of every node in s, inserting spaces
// at block boundaries.
func selectionText(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.CommentNode:
			return
		}
		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte(' ')
		}
	}
	for _, n := range s.Nodes {
		walk(n)
		b.WriteByte(' ')
	}
	return b.String()
}
