package scoring

import (
	"fmt"
	"slices"
	"strings"
)

// Weights holds every rule constant. Magnitudes are non-negative; each rule
// applies its own sign. Thresholds keep the direction of the rule they belong
// to: a penalty fires above AllCapsThreshold and AdDensityThreshold and below
// ReadabilityThreshold.
type Weights struct {
	Baseline float64 `yaml:"baseline"`

	CorrectionsFound     float64 `yaml:"corrections_found"`
	CorrectionsMissing   float64 `yaml:"corrections_missing"`
	OwnershipFound       float64 `yaml:"ownership_found"`
	OwnershipMissing     float64 `yaml:"ownership_missing"`
	AuthorIdentified     float64 `yaml:"author_identified"`
	AuthorMissing        float64 `yaml:"author_missing"`
	AuthorBioLink        float64 `yaml:"author_bio_link"`
	NoExternalLinks      float64 `yaml:"no_external_links"`
	ExternalLinkEach     float64 `yaml:"external_link_each"`
	ExternalLinkCap      float64 `yaml:"external_link_cap"`
	InternalLinkEach     float64 `yaml:"internal_link_each"`
	InternalLinkCap      float64 `yaml:"internal_link_cap"`
	UnlabeledOpinion     float64 `yaml:"unlabeled_opinion"`
	LoadedLanguageEach   float64 `yaml:"loaded_language_each"`
	LoadedLanguageCap    float64 `yaml:"loaded_language_cap"`
	PunctuationEach      float64 `yaml:"punctuation_each"`
	AllCapsPenalty       float64 `yaml:"all_caps_penalty"`
	AllCapsThreshold     float64 `yaml:"all_caps_threshold"`
	DateValid            float64 `yaml:"date_valid"`
	DateMissing          float64 `yaml:"date_missing"`
	AdDensityPenalty     float64 `yaml:"ad_density_penalty"`
	AdDensityThreshold   float64 `yaml:"ad_density_threshold"`
	ReadabilityPenalty   float64 `yaml:"readability_penalty"`
	ReadabilityThreshold float64 `yaml:"readability_threshold"`
}

// DefaultWeights returns the standard rule constants.
func DefaultWeights() Weights {
	return Weights{
		Baseline: 100,

		CorrectionsFound:   10,
		CorrectionsMissing: 10,
		OwnershipFound:     5,
		OwnershipMissing:   5,

		AuthorIdentified: 10,
		AuthorMissing:    15,
		AuthorBioLink:    5,

		NoExternalLinks:  10,
		ExternalLinkEach: 1.5,
		ExternalLinkCap:  15,
		InternalLinkEach: 0.5,
		InternalLinkCap:  5,
		UnlabeledOpinion: 8,

		LoadedLanguageEach: 1.5,
		LoadedLanguageCap:  20,
		PunctuationEach:    3,
		AllCapsPenalty:     5,
		AllCapsThreshold:   0.3,

		DateValid:            5,
		DateMissing:          10,
		AdDensityPenalty:     5,
		AdDensityThreshold:   0.4,
		ReadabilityPenalty:   5,
		ReadabilityThreshold: 30,
	}
}

// Validate rejects negative magnitudes and thresholds outside the range of
// the signal they are compared against.
func (w Weights) Validate() error {
	var bad []string
	magnitudes := map[string]float64{
		"baseline":             w.Baseline,
		"corrections_found":    w.CorrectionsFound,
		"corrections_missing":  w.CorrectionsMissing,
		"ownership_found":      w.OwnershipFound,
		"ownership_missing":    w.OwnershipMissing,
		"author_identified":    w.AuthorIdentified,
		"author_missing":       w.AuthorMissing,
		"author_bio_link":      w.AuthorBioLink,
		"no_external_links":    w.NoExternalLinks,
		"external_link_each":   w.ExternalLinkEach,
		"external_link_cap":    w.ExternalLinkCap,
		"internal_link_each":   w.InternalLinkEach,
		"internal_link_cap":    w.InternalLinkCap,
		"unlabeled_opinion":    w.UnlabeledOpinion,
		"loaded_language_each": w.LoadedLanguageEach,
		"loaded_language_cap":  w.LoadedLanguageCap,
		"punctuation_each":     w.PunctuationEach,
		"all_caps_penalty":     w.AllCapsPenalty,
		"date_valid":           w.DateValid,
		"date_missing":         w.DateMissing,
		"ad_density_penalty":   w.AdDensityPenalty,
		"readability_penalty":  w.ReadabilityPenalty,
	}
	for name, v := range magnitudes {
		if v < 0 {
			bad = append(bad, fmt.Sprintf("%s must be non-negative", name))
		}
	}
	if w.AllCapsThreshold < 0 || w.AllCapsThreshold > 1 {
		bad = append(bad, "all_caps_threshold must be in [0,1]")
	}
	if w.AdDensityThreshold < 0 || w.AdDensityThreshold > 1 {
		bad = append(bad, "ad_density_threshold must be in [0,1]")
	}
	if w.ReadabilityThreshold < 0 || w.ReadabilityThreshold > 100 {
		bad = append(bad, "readability_threshold must be in [0,100]")
	}
	if len(bad) > 0 {
		slices.Sort(bad)
		return fmt.Errorf("invalid scoring weights: %s", strings.Join(bad, "; "))
	}
	return nil
}
