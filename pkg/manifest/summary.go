package manifest

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/veritas/models"
	"github.com/dtnitsch/veritas/pkg/textmetrics"
)

// MaxSnippetLength caps the content snippet handed to the summarizer.
const MaxSnippetLength = 2000

const notFound = "Not found"

// Summarizer map keys.
const (
	KeyURL             = "URL"
	KeyTitle           = "Title"
	KeyAuthor          = "Author"
	KeySiteType        = "Site Type"
	KeyPublicationDate = "Publication Date"
	KeyHasCitations    = "Has Citations"
	KeyAdCount         = "Ad Count"
	KeyExternalLinks   = "External Links"
	KeyReadability     = "Readability (Flesch)"
	KeyLoadedLanguage  = "Loaded Language Terms"
	KeyCorrections     = "Corrections Policy Found"
	KeyOwnership       = "Ownership Disclosure Found"
	KeyOpinion         = "Opinion Content"
	KeyScore           = "Credibility Score"
	KeySnippet         = "Content Snippet"
)

// SummarizerInput returns the human-readable signal labels for res plus a
// content snippet. Every value is a string or a number so the map marshals
// to flat JSON.
func SummarizerInput(res models.AnalysisResult) map[string]any {
	d := res.Data

	author := notFound
	if name := d.AuthorName(); name != "" {
		author = name
		if d.AuthorIsGeneric {
			author += " (generic)"
		}
	}

	date := notFound
	if d.PublicationDate != nil {
		date = *d.PublicationDate
		if !d.HasValidPublicationDate() {
			date += " (unparsable)"
		}
	}

	opinion := "No"
	if d.IsOpinionOrEditorial {
		opinion = "Yes, unlabeled"
		if d.OpinionLabelDetected {
			opinion = "Yes, labeled"
		}
	}

	return map[string]any{
		KeyURL:             d.URL,
		KeyTitle:           d.Title,
		KeyAuthor:          author,
		KeySiteType:        string(d.SiteType),
		KeyPublicationDate: date,
		KeyHasCitations:    yesNo(d.HasCitations),
		KeyAdCount:         d.AdCount,
		KeyExternalLinks:   d.ExternalLinkCount,
		KeyReadability: fmt.Sprintf("%.2f (%s)", d.ReadabilityScore,
			strings.ReplaceAll(textmetrics.ReadabilityLevel(d.ReadabilityScore), "_", " ")),
		KeyLoadedLanguage: d.LoadedLanguageCount,
		KeyCorrections:    yesNo(d.CorrectionsPolicyFound),
		KeyOwnership:      yesNo(d.OwnershipDisclosureFound),
		KeyOpinion:        opinion,
		KeyScore:          res.Score,
		KeySnippet:        textmetrics.Truncate(d.Content, MaxSnippetLength),
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
