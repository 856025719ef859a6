package extractor

import (
	"regexp"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/veritas/models"
)

// scriptTimestamp matches 10-digit Unix timestamps assigned in inline
// scripts, e.g. `publish_time: "1700000000"` or `ct=1700000000`.
var scriptTimestamp = regexp.MustCompile(`\b(?:publish_time|create_time|ct)["']?\s*[:=]\s*["']?(\d{10})\b`)

// Accepted range for script timestamps.
const (
	minTimestampYear = 1995
	maxTimestampYear = 2100
)

// dateStrategy returns a normalised ISO-8601 date or "".
type dateStrategy func(p *page) string

var dateStrategies = []dateStrategy{
	dateFromMeta,
	dateFromTimeElement,
	dateFromScript,
	dateFromReadability,
}

// resolvePublicationDate tries each strategy in order. A candidate that does
// not parse is treated as absent.
func resolvePublicationDate(p *page) *string {
	for _, strategy := range dateStrategies {
		if d := strategy(p); d != "" {
			return &d
		}
	}
	return nil
}

func dateFromMeta(p *page) string {
	v, _ := p.doc.Find(`meta[property="article:published_time"]`).First().Attr("content")
	return NormalizeDate(v)
}

func dateFromTimeElement(p *page) string {
	v, _ := p.doc.Find("time[datetime]").First().Attr("datetime")
	return NormalizeDate(v)
}

func dateFromScript(p *page) string {
	var found string
	p.doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if _, external := s.Attr("src"); external {
			return true
		}
		for _, m := range scriptTimestamp.FindAllStringSubmatch(s.Text(), -1) {
			if d := unixToISO(m[1]); d != "" {
				found = d
				return false
			}
		}
		return true
	})
	return found
}

func dateFromReadability(p *page) string {
	article := p.readable()
	if article == nil || article.PublishedTime == nil || article.PublishedTime.IsZero() {
		return ""
	}
	return article.PublishedTime.UTC().Format(time.RFC3339)
}

func unixToISO(digits string) string {
	secs, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return ""
	}
	t := time.Unix(secs, 0).UTC()
	if t.Year() < minTimestampYear || t.Year() > maxTimestampYear {
		return ""
	}
	return t.Format(time.RFC3339)
}

// NormalizeDate parses a free-form date and returns it as RFC 3339 in UTC,
// or "" when it cannot be parsed.
func NormalizeDate(raw string) string {
	t, ok := models.ParseDate(raw)
	if !ok {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
