package scoring

import (
	"fmt"
	"math"

	"github.com/dtnitsch/veritas/models"
)

// Criterion names, numbered by dimension.
const (
	criterionCorrections    = "1.1 Corrections Policy"
	criterionOwnership      = "1.2 Ownership Disclosure"
	criterionAuthorship     = "2.1 Identifiable Authorship"
	criterionAuthorBio      = "2.2 Author Biography"
	criterionExternalLinks  = "3.1 External Sourcing"
	criterionInternalLinks  = "3.2 Internal Linking"
	criterionOpinion        = "3.3 Opinion Labeling"
	criterionLoadedLanguage = "4.1 Loaded Language"
	criterionPunctuation    = "4.2 Sensational Punctuation"
	criterionHeadlineCaps   = "4.3 Headline Capitalization"
	criterionPublication    = "5.1 Publication Date"
	criterionAdvertising    = "5.2 Advertising Density"
	criterionReadability    = "5.3 Readability"
)

func scoreTransparency(c *scorecard, w *Weights, d models.AnalysisData) {
	if d.CorrectionsPolicyFound {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionTransparency,
			Criterion: criterionCorrections,
			Factor:    "Corrections policy found",
			Change:    w.CorrectionsFound,
			Reason:    "The site links to a corrections or errata policy.",
			Severity:  models.SeverityMajor,
			Tag:       "corrections-policy-found",
		})
	} else {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionTransparency,
			Criterion: criterionCorrections,
			Factor:    "No corrections policy",
			Change:    -w.CorrectionsMissing,
			Reason:    "No link to a corrections or errata policy was found.",
			Severity:  models.SeverityMajor,
			Tag:       "corrections-policy-missing",
		})
	}

	if d.OwnershipDisclosureFound {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionTransparency,
			Criterion: criterionOwnership,
			Factor:    "Ownership disclosure found",
			Change:    w.OwnershipFound,
			Reason:    "The site links to ownership, funding or about-us information.",
			Severity:  models.SeverityMinor,
			Tag:       "ownership-disclosed",
		})
	} else {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionTransparency,
			Criterion: criterionOwnership,
			Factor:    "No ownership disclosure",
			Change:    -w.OwnershipMissing,
			Reason:    "No ownership, funding or about-us information was linked.",
			Severity:  models.SeverityMinor,
			Tag:       "ownership-undisclosed",
		})
	}
}

func scoreAuthority(c *scorecard, w *Weights, d models.AnalysisData) {
	switch author := d.AuthorName(); {
	case author != "" && !d.AuthorIsGeneric:
		c.add(models.ScoreModifier{
			Dimension: models.DimensionAuthority,
			Criterion: criterionAuthorship,
			Factor:    "Identifiable author",
			Change:    w.AuthorIdentified,
			Reason:    fmt.Sprintf("The content is attributed to %s.", author),
			Severity:  models.SeverityCritical,
			Tag:       "author-identified",
		})
	case author != "":
		c.add(models.ScoreModifier{
			Dimension: models.DimensionAuthority,
			Criterion: criterionAuthorship,
			Factor:    "Generic author",
			Change:    -w.AuthorMissing,
			Reason:    fmt.Sprintf("The byline %q is a role or desk label, not an identifiable author.", author),
			Severity:  models.SeverityCritical,
			Tag:       "author-generic",
		})
	default:
		c.add(models.ScoreModifier{
			Dimension: models.DimensionAuthority,
			Criterion: criterionAuthorship,
			Factor:    "No author",
			Change:    -w.AuthorMissing,
			Reason:    "No author could be identified.",
			Severity:  models.SeverityCritical,
			Tag:       "author-missing",
		})
	}

	if d.HasAuthorBioLink {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionAuthority,
			Criterion: criterionAuthorBio,
			Factor:    "Author biography linked",
			Change:    w.AuthorBioLink,
			Reason:    "The page links to a biography of the author.",
			Severity:  models.SeverityMinor,
			Tag:       "author-bio",
		})
	}
}

func scoreAccuracy(c *scorecard, w *Weights, d models.AnalysisData) {
	if d.ExternalLinkCount == 0 {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionAccuracy,
			Criterion: criterionExternalLinks,
			Factor:    "No external sources",
			Change:    -w.NoExternalLinks,
			Reason:    "The content does not link to any external source.",
			Severity:  models.SeverityMajor,
			Tag:       "sources-missing",
		})
	} else {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionAccuracy,
			Criterion: criterionExternalLinks,
			Factor:    "External sources",
			Change:    math.Min(w.ExternalLinkEach*float64(d.ExternalLinkCount), w.ExternalLinkCap),
			Reason:    fmt.Sprintf("The content links to %d external source(s).", d.ExternalLinkCount),
			Severity:  models.SeverityVariable,
			Tag:       "sources-external",
		})
	}

	if d.InternalLinkCount > 0 {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionAccuracy,
			Criterion: criterionInternalLinks,
			Factor:    "Internal links",
			Change:    math.Min(w.InternalLinkEach*float64(d.InternalLinkCount), w.InternalLinkCap),
			Reason:    fmt.Sprintf("The content links to %d related page(s) on the same site.", d.InternalLinkCount),
			Severity:  models.SeverityVariable,
			Tag:       "links-internal",
		})
	}

	if d.IsOpinionOrEditorial {
		if d.OpinionLabelDetected {
			c.add(models.ScoreModifier{
				Dimension: models.DimensionAccuracy,
				Criterion: criterionOpinion,
				Factor:    "Opinion clearly labeled",
				Change:    0,
				Reason:    "The content is opinion and is labeled as such.",
				Severity:  models.SeverityMinor,
				Tag:       "opinion-labeled",
			})
		} else {
			c.add(models.ScoreModifier{
				Dimension: models.DimensionAccuracy,
				Criterion: criterionOpinion,
				Factor:    "Unlabeled opinion",
				Change:    -w.UnlabeledOpinion,
				Reason:    "The content reads as opinion but carries no opinion or editorial label.",
				Severity:  models.SeverityMajor,
				Tag:       "opinion-unlabeled",
			})
		}
	}
}

func scoreObjectivity(c *scorecard, w *Weights, d models.AnalysisData) {
	if d.LoadedLanguageCount > 0 {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionObjectivity,
			Criterion: criterionLoadedLanguage,
			Factor:    "Loaded language",
			Change:    -math.Min(w.LoadedLanguageEach*float64(d.LoadedLanguageCount), w.LoadedLanguageCap),
			Reason:    fmt.Sprintf("Found %d emotionally loaded term(s).", d.LoadedLanguageCount),
			Severity:  models.SeverityVariable,
			Tag:       "tone-loaded",
		})
	}

	if d.ExcessivePunctuationCount > 0 {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionObjectivity,
			Criterion: criterionPunctuation,
			Factor:    "Sensational punctuation",
			Change:    -w.PunctuationEach * float64(d.ExcessivePunctuationCount),
			Reason:    fmt.Sprintf("Found %d run(s) of repeated exclamation or question marks.", d.ExcessivePunctuationCount),
			Severity:  models.SeverityVariable,
			Tag:       "tone-punctuation",
		})
	}

	if d.HeadlineAllCapsRatio > w.AllCapsThreshold {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionObjectivity,
			Criterion: criterionHeadlineCaps,
			Factor:    "Shouting headline",
			Change:    -w.AllCapsPenalty,
			Reason:    fmt.Sprintf("%.0f%% of the headline letters are capitals.", d.HeadlineAllCapsRatio*100),
			Severity:  models.SeverityMinor,
			Tag:       "tone-caps",
		})
	}
}

func scorePresentation(c *scorecard, w *Weights, d models.AnalysisData) {
	switch {
	case d.HasValidPublicationDate():
		c.add(models.ScoreModifier{
			Dimension: models.DimensionPresentation,
			Criterion: criterionPublication,
			Factor:    "Publication date",
			Change:    w.DateValid,
			Reason:    fmt.Sprintf("Published %s.", *d.PublicationDate),
			Severity:  models.SeverityMajor,
			Tag:       "date-present",
		})
	case d.PublicationDate != nil:
		c.add(models.ScoreModifier{
			Dimension: models.DimensionPresentation,
			Criterion: criterionPublication,
			Factor:    "Unreadable publication date",
			Change:    -w.DateMissing,
			Reason:    fmt.Sprintf("The publication date %q could not be parsed.", *d.PublicationDate),
			Severity:  models.SeverityMajor,
			Tag:       "date-invalid",
		})
	default:
		c.add(models.ScoreModifier{
			Dimension: models.DimensionPresentation,
			Criterion: criterionPublication,
			Factor:    "No publication date",
			Change:    -w.DateMissing,
			Reason:    "No publication date was found.",
			Severity:  models.SeverityMajor,
			Tag:       "date-missing",
		})
	}

	if d.AdvertisementDensity > w.AdDensityThreshold {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionPresentation,
			Criterion: criterionAdvertising,
			Factor:    "Heavy advertising",
			Change:    -w.AdDensityPenalty,
			Reason:    fmt.Sprintf("%d ad element(s), density %.2f relative to content.", d.AdCount, d.AdvertisementDensity),
			Severity:  models.SeverityMinor,
			Tag:       "ads-heavy",
		})
	}

	if d.ReadabilityScore < w.ReadabilityThreshold {
		c.add(models.ScoreModifier{
			Dimension: models.DimensionPresentation,
			Criterion: criterionReadability,
			Factor:    "Hard to read",
			Change:    -w.ReadabilityPenalty,
			Reason:    fmt.Sprintf("Flesch reading ease %.2f is below %.0f.", d.ReadabilityScore, w.ReadabilityThreshold),
			Severity:  models.SeverityMinor,
			Tag:       "readability-low",
		})
	}
}
