package models

// Dimension groups related modifiers.
type Dimension string

const (
	DimensionTransparency Dimension = "Transparency & Accountability"
	DimensionAuthority    Dimension = "Authority & Sourcing"
	DimensionAccuracy     Dimension = "Accuracy & Verifiability"
	DimensionObjectivity  Dimension = "Objectivity & Tone"
	DimensionPresentation Dimension = "Presentation & Currency"
)

// Dimensions lists the dimensions in evaluation order.
var Dimensions = []Dimension{
	DimensionTransparency,
	DimensionAuthority,
	DimensionAccuracy,
	DimensionObjectivity,
	DimensionPresentation,
}

// Severity labels how strongly a modifier should be weighed by a reader.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityMajor    Severity = "Major"
	SeverityMinor    Severity = "Minor"
	SeverityVariable Severity = "Variable"
)

// ScoreModifier is one signed, justified contribution to the score.
type ScoreModifier struct {
	Dimension Dimension `json:"dimension" yaml:"dimension"`
	Criterion string    `json:"criterion" yaml:"criterion"` // e.g. "2.1 Identifiable Authorship"
	Factor    string    `json:"factor" yaml:"factor"`
	Change    float64   `json:"change" yaml:"change"`
	Reason    string    `json:"reason" yaml:"reason"`
	Severity  Severity  `json:"severity" yaml:"severity"`
	// Tag is a stable symbol the presentation layer maps to an icon.
	Tag string `json:"tag" yaml:"tag"`
}

// AnalysisResult is the scored outcome for one AnalysisData record.
type AnalysisResult struct {
	Score     int             `json:"score" yaml:"score"`
	Modifiers []ScoreModifier `json:"modifiers" yaml:"modifiers"`
	Data      AnalysisData    `json:"data" yaml:"data"`
}

// NetChange sums the modifier changes for one dimension.
func (r AnalysisResult) NetChange(d Dimension) float64 {
	total := 0.0
	for _, m := range r.Modifiers {
		if m.Dimension == d {
			total += m.Change
		}
	}
	return total
}

// ModifiersFor returns the modifiers of one dimension in emission order.
func (r AnalysisResult) ModifiersFor(d Dimension) []ScoreModifier {
	var out []ScoreModifier
	for _, m := range r.Modifiers {
		if m.Dimension == d {
			out = append(out, m)
		}
	}
	return out
}
