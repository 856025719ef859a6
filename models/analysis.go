// Package models defines the analysis record, score modifiers and results
// shared by the extractor, the signal assembler and the scoring engine.
package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxContentLength is the content cap applied before AnalysisData leaves the
// assembler. The extractor works with a larger internal cap.
const MaxContentLength = 5000

// SiteType is a mutually exclusive classification of the source.
type SiteType string

const (
	SiteTypeNews         SiteType = "News"
	SiteTypeEncyclopedia SiteType = "Encyclopedia"
	SiteTypeBlog         SiteType = "Blog"
	SiteTypeForum        SiteType = "Forum"
	SiteTypeScience      SiteType = "Science"
	SiteTypeUnknown      SiteType = "Unknown"
)

// Valid reports whether t is one of the known site types.
func (t SiteType) Valid() bool {
	switch t {
	case SiteTypeNews, SiteTypeEncyclopedia, SiteTypeBlog, SiteTypeForum, SiteTypeScience, SiteTypeUnknown:
		return true
	}
	return false
}

// AnalysisData is the canonical extracted-signal record. It is built once per
// request, either from fetched markup or from pasted text, and never mutated
// afterwards.
type AnalysisData struct {
	URL             string   `json:"url" yaml:"url"`
	Title           string   `json:"title" yaml:"title"`
	Author          *string  `json:"author" yaml:"author"`
	PublicationDate *string  `json:"publicationDate" yaml:"publication_date"` // ISO-8601
	SiteType        SiteType `json:"siteType" yaml:"site_type"`

	LinkCount         int `json:"linkCount" yaml:"link_count"`
	ExternalLinkCount int `json:"externalLinkCount" yaml:"external_link_count"`
	InternalLinkCount int `json:"internalLinkCount" yaml:"internal_link_count"`

	AdCount              int     `json:"adCount" yaml:"ad_count"`
	AdvertisementDensity float64 `json:"advertisementDensity" yaml:"advertisement_density"`

	HasCitations             bool `json:"hasCitations" yaml:"has_citations"`
	CorrectionsPolicyFound   bool `json:"correctionsPolicyFound" yaml:"corrections_policy_found"`
	OwnershipDisclosureFound bool `json:"ownershipDisclosureFound" yaml:"ownership_disclosure_found"`
	HasAuthorBioLink         bool `json:"hasAuthorBioLink" yaml:"has_author_bio_link"`
	AuthorIsGeneric          bool `json:"authorIsGeneric" yaml:"author_is_generic"`
	IsOpinionOrEditorial     bool `json:"isOpinionOrEditorial" yaml:"is_opinion_or_editorial"`
	OpinionLabelDetected     bool `json:"opinionLabelDetected" yaml:"opinion_label_detected"`

	LoadedLanguageCount       int     `json:"loadedLanguageCount" yaml:"loaded_language_count"`
	ExcessivePunctuationCount int     `json:"excessivePunctuationCount" yaml:"excessive_punctuation_count"`
	HeadlineAllCapsRatio      float64 `json:"headlineAllCapsRatio" yaml:"headline_all_caps_ratio"`
	ReadabilityScore          float64 `json:"readabilityScore" yaml:"readability_score"`

	// Informational only, never scored.
	Language  *string `json:"language,omitempty" yaml:"language,omitempty"`
	WordCount int     `json:"wordCount,omitempty" yaml:"word_count,omitempty"`

	Content string `json:"content" yaml:"content"`
}

// AuthorName returns the author or "" when none was resolved.
func (d AnalysisData) AuthorName() string {
	if d.Author == nil {
		return ""
	}
	return *d.Author
}

// ErrInvalidAnalysisData marks a structurally malformed record. Scoring is
// refused for such records rather than producing a partial score.
var ErrInvalidAnalysisData = errors.New("invalid analysis data")

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidAnalysisData, strings.Join(e.Fields, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidAnalysisData
}

// Validate checks the structural preconditions of the record. Nil author or
// date are valid signal states and are not reported.
func (d AnalysisData) Validate() error {
	var fields []string
	add := func(format string, args ...any) {
		fields = append(fields, fmt.Sprintf(format, args...))
	}

	if !d.SiteType.Valid() {
		add("siteType %q is not a known site type", d.SiteType)
	}

	counts := []struct {
		name  string
		value int
	}{
		{"linkCount", d.LinkCount},
		{"externalLinkCount", d.ExternalLinkCount},
		{"internalLinkCount", d.InternalLinkCount},
		{"adCount", d.AdCount},
		{"loadedLanguageCount", d.LoadedLanguageCount},
		{"excessivePunctuationCount", d.ExcessivePunctuationCount},
		{"wordCount", d.WordCount},
	}
	for _, c := range counts {
		if c.value < 0 {
			add("%s must be non-negative, got %d", c.name, c.value)
		}
	}

	if d.LinkCount != d.ExternalLinkCount+d.InternalLinkCount {
		add("linkCount %d must equal externalLinkCount %d + internalLinkCount %d",
			d.LinkCount, d.ExternalLinkCount, d.InternalLinkCount)
	}

	if !inRange(d.AdvertisementDensity, 0, 1) {
		add("advertisementDensity must be in [0,1], got %v", d.AdvertisementDensity)
	}
	if !inRange(d.HeadlineAllCapsRatio, 0, 1) {
		add("headlineAllCapsRatio must be in [0,1], got %v", d.HeadlineAllCapsRatio)
	}
	if !inRange(d.ReadabilityScore, 0, 100) {
		add("readabilityScore must be in [0,100], got %v", d.ReadabilityScore)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}
