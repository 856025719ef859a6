package models

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate parses a free-form publication date. RFC 3339 is tried first;
// anything else goes through dateparse with UTC as the default location.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// HasValidPublicationDate reports whether the record carries a parsable date.
func (d AnalysisData) HasValidPublicationDate() bool {
	if d.PublicationDate == nil {
		return false
	}
	_, ok := ParseDate(*d.PublicationDate)
	return ok
}
