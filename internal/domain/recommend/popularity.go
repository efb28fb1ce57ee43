package recommend

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/okian/eventrank/internal/domain/lexicon"
	"github.com/okian/eventrank/internal/domain/model"
)

// Confidence labels of a popularity estimate.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// PopularityWeights controls PredictPopularity.
type PopularityWeights struct {
	Categories       lexicon.Weights
	WeekendBonus     float64
	LongDescBonus    float64
	LongDescLen      int
	MediumDescBonus  float64
	MediumDescLen    int
	SocietyBonus     float64
	RegistrationsPer float64
	HighAbove        float64
	MediumAbove      float64
}

// DefaultPopularityWeights returns the built-in popularity weights.
func DefaultPopularityWeights() PopularityWeights {
	return PopularityWeights{
		Categories: lexicon.Weights{
			Values: map[string]float64{
				string(model.CategoryTechnical): 0.9,
				string(model.CategoryCultural):  0.85,
				string(model.CategorySports):    0.8,
				string(model.CategoryAcademic):  0.7,
				string(model.CategoryGeneral):   0.6,
			},
			Default: 0.6,
		},
		WeekendBonus:     0.1,
		LongDescBonus:    0.05,
		LongDescLen:      200,
		MediumDescBonus:  0.03,
		MediumDescLen:    100,
		SocietyBonus:     0.05,
		RegistrationsPer: 2,
		HighAbove:        70,
		MediumAbove:      50,
	}
}

// PredictPopularity estimates interest in an event from its category,
// weekday, description length and organizer.
func (r *Recommender) PredictPopularity(ev model.EventRecord) model.PopularityReport {
	w := r.popularity
	base := w.Categories.Get(strings.ToLower(strings.TrimSpace(ev.Category)))

	if d, ok := model.ParseDate(ev.Date, r.now().Location()); ok && model.IsWeekend(d) {
		base += w.WeekendBonus
	}

	switch n := utf8.RuneCountInString(ev.Description); {
	case n > w.LongDescLen:
		base += w.LongDescBonus
	case n > w.MediumDescLen:
		base += w.MediumDescBonus
	}

	if ev.Society != "" {
		base += w.SocietyBonus
	}

	score := math.Min(base*100, 100)
	confidence := ConfidenceLow
	switch {
	case score > w.HighAbove:
		confidence = ConfidenceHigh
	case score > w.MediumAbove:
		confidence = ConfidenceMedium
	}

	return model.PopularityReport{
		PopularityScore:        Round1(score),
		PredictedRegistrations: int(score * w.RegistrationsPer),
		Confidence:             confidence,
	}
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
