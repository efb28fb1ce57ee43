package success

import (
	"github.com/okian/eventrank/internal/domain/lexicon"
	"github.com/okian/eventrank/internal/domain/model"
)

// ComponentWeights weights the six sub-scores. They sum to 1.
type ComponentWeights struct {
	Category    float64
	Timing      float64
	Description float64
	Organizer   float64
	Venue       float64
	EventType   float64
}

// Sum returns the total weight.
func (w ComponentWeights) Sum() float64 {
	return w.Category + w.Timing + w.Description + w.Organizer + w.Venue + w.EventType
}

// Tables holds every lookup table of the predictor.
type Tables struct {
	Weights           ComponentWeights
	Categories        lexicon.Weights
	EventTypes        lexicon.Weights
	EventTypeKeywords lexicon.Table
	PopularOrganizers []string
	GoodVenues        []string
	RegistrationBase  lexicon.Weights
}

// DefaultTables returns the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Weights: ComponentWeights{
			Category:    0.25,
			Timing:      0.20,
			Description: 0.20,
			Organizer:   0.15,
			Venue:       0.10,
			EventType:   0.10,
		},
		Categories: lexicon.Weights{
			Values: map[string]float64{
				string(model.CategoryTechnical): 0.85,
				string(model.CategoryCultural):  0.80,
				string(model.CategorySports):    0.75,
				string(model.CategoryAcademic):  0.70,
				string(model.CategoryGeneral):   0.65,
			},
			Default: 0.65,
		},
		EventTypes: lexicon.Weights{
			Values: map[string]float64{
				"hackathon":   0.90,
				"workshop":    0.85,
				"seminar":     0.80,
				"competition": 0.85,
				"festival":    0.85,
				"conference":  0.75,
				"lecture":     0.70,
				"meetup":      0.75,
			},
			Default: 0.75,
		},
		EventTypeKeywords: lexicon.Table{
			{Name: "hackathon", Keywords: []string{"hackathon", "hack", "coding competition"}},
			{Name: "workshop", Keywords: []string{"workshop", "hands-on", "practical"}},
			{Name: "seminar", Keywords: []string{"seminar", "talk", "presentation"}},
			{Name: "competition", Keywords: []string{"competition", "contest", "tournament"}},
			{Name: "festival", Keywords: []string{"festival", "fest", "celebration"}},
			{Name: "conference", Keywords: []string{"conference", "summit", "convention"}},
			{Name: "lecture", Keywords: []string{"lecture", "guest lecture", "keynote"}},
			{Name: "meetup", Keywords: []string{"meetup", "networking", "social"}},
		},
		PopularOrganizers: []string{
			"coding", "tech", "technical", "cs", "computer",
			"cultural", "dance", "music", "drama",
			"sports", "cricket", "football",
		},
		GoodVenues: []string{"auditorium", "hall", "stadium", "ground", "center", "centre"},
		RegistrationBase: lexicon.Weights{
			Values: map[string]float64{
				string(model.CategoryTechnical): 50,
				string(model.CategoryCultural):  80,
				string(model.CategorySports):    60,
				string(model.CategoryAcademic):  40,
				string(model.CategoryGeneral):   30,
			},
			Default: 30,
		},
	}
}
