package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nonNavigablePrefixes are skipped entirely: they are neither internal nor
// external links.
var nonNavigablePrefixes = []string{"#", "mailto:", "tel:", "javascript:"}

// classifyLinks counts external and internal anchors. An anchor is external
// when its href is absolute http(s) and its host does not contain the page
// host. Fragment, mailto, tel and javascript anchors are not counted.
func classifyLinks(doc *goquery.Document, pageHost string) (external, internal int) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if !isNavigable(href) {
			return
		}
		if isExternal(href, pageHost) {
			external++
		} else {
			internal++
		}
	})
	return external, internal
}

func isNavigable(href string) bool {
	if href == "" {
		return false
	}
	lower := strings.ToLower(href)
	for _, prefix := range nonNavigablePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}

func isExternal(href, pageHost string) bool {
	if !strings.HasPrefix(strings.ToLower(href), "http") {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	if pageHost == "" {
		return true
	}
	return !strings.Contains(host, pageHost)
}
