// Package common holds input helpers shared by the CLI actions.
package common

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// [text](https://example.com)
	markdownLink = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)
	// http(s) scheme, a dotted host, optional path.
	fetchableURL = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](:[0-9]+)?(/[^\s]*)?$`)
)

// ContentHash returns the hex SHA-256 of data.
func ContentHash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// SanitizeURL cleans up a pasted URL: surrounding whitespace, markdown link
// syntax, and stray quotes or brackets left over from copy-paste.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	if m := markdownLink.FindStringSubmatch(cleaned); len(m) > 1 {
		cleaned = m[1]
	}

	cleaned = strings.TrimRight(cleaned, `,.)}]"'>;`)
	cleaned = strings.TrimLeft(cleaned, `([<"'`)

	return strings.TrimSpace(cleaned)
}

// SplitURLs splits a comma-separated flag value, dropping empty entries.
func SplitURLs(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SanitizeAndValidateURLs sanitizes every URL and splits them into those
// that can be fetched and the raw inputs that cannot.
func SanitizeAndValidateURLs(urls []string) (valid []string, invalid []string) {
	valid = make([]string, 0, len(urls))
	for _, rawURL := range urls {
		cleaned := SanitizeURL(rawURL)
		if !isFetchable(cleaned) {
			invalid = append(invalid, rawURL)
			continue
		}
		valid = append(valid, cleaned)
	}
	return valid, invalid
}

func isFetchable(u string) bool {
	if u == "" || strings.Contains(u, " ") || !fetchableURL.MatchString(u) {
		return false
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != "" && !strings.ContainsAny(parsed.Host, `{}[]<>"'`)
}
