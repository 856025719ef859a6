// Package scoring turns AnalysisData into a 0-100 credibility score with an
// itemised list of modifiers. Scoring is a pure function of its input.
package scoring

import (
	"fmt"
	"math"

	"github.com/dtnitsch/veritas/models"
)

const (
	minScore = 0
	maxScore = 100
)

// Engine applies a fixed set of Weights. It holds no mutable state and may be
// shared between goroutines.
type Engine struct {
	w Weights
}

// New returns an Engine for w.
func New(w Weights) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Engine{w: w}, nil
}

// Default returns an Engine with DefaultWeights.
func Default() *Engine {
	return &Engine{w: DefaultWeights()}
}

// Weights returns a copy of the engine's weights.
func (e *Engine) Weights() Weights {
	return e.w
}

// Score validates data and scores it. A record failing validation is
// rejected with an error wrapping models.ErrInvalidAnalysisData; no partial
// result is returned.
func (e *Engine) Score(data models.AnalysisData) (models.AnalysisResult, error) {
	if err := data.Validate(); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("cannot score %q: %w", data.URL, err)
	}

	card := &scorecard{}
	for _, dim := range dimensionRules {
		dim(card, &e.w, data)
	}

	total := e.w.Baseline
	for _, m := range card.modifiers {
		total += m.Change
	}

	return models.AnalysisResult{
		Score:     int(math.Round(clamp(total, minScore, maxScore))),
		Modifiers: card.modifiers,
		Data:      data,
	}, nil
}

// Score scores data with the default weights.
func Score(data models.AnalysisData) (models.AnalysisResult, error) {
	return Default().Score(data)
}

// scorecard collects modifiers in emission order.
type scorecard struct {
	modifiers []models.ScoreModifier
}

func (c *scorecard) add(m models.ScoreModifier) {
	m.Change = round2(m.Change)
	c.modifiers = append(c.modifiers, m)
}

// dimensionRule appends the modifiers of one dimension.
type dimensionRule func(c *scorecard, w *Weights, d models.AnalysisData)

// dimensionRules is in models.Dimensions order.
var dimensionRules = []dimensionRule{
	scoreTransparency,
	scoreAuthority,
	scoreAccuracy,
	scoreObjectivity,
	scorePresentation,
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
