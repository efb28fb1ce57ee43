// Package success estimates how well an event draft will do before it runs.
package success

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/okian/eventrank/internal/domain/lexicon"
	"github.com/okian/eventrank/internal/domain/model"
)

// GeneralEventType is reported when no event-type keyword matches.
const GeneralEventType = "general"

const (
	maxRecommendations = 3
	minRegistrations   = 10
	registrationNorm   = 70.0
	neutralTiming      = 0.5
	emptyDescription   = 0.3
	descriptionNorm    = 200.0
)

// Recommendation texts, in priority order.
const (
	RecommendTiming      = "Consider scheduling on a weekend or Friday for better attendance"
	RecommendDescription = "Improve event description with more details about what, when, where, and why"
	RecommendOrganizer   = "Mention the organizing society/club to build trust"
	RecommendVenue       = "Specify a clear venue location"
	RecommendOverall     = "Overall: Consider improving timing, description quality, or event type to increase success probability"
)

// Option applies a configuration option to the Predictor.
type Option func(*Predictor)

// WithClock sets the time source used for date distances.
func WithClock(now func() time.Time) Option {
	return func(p *Predictor) {
		if now != nil {
			p.now = now
		}
	}
}

// WithTables replaces every lookup table.
func WithTables(t Tables) Option {
	return func(p *Predictor) {
		p.tables = t
	}
}

// WithCategoryScores overrides category popularity entries.
func WithCategoryScores(overrides map[string]float64) Option {
	return func(p *Predictor) {
		p.tables.Categories = p.tables.Categories.With(overrides)
	}
}

// WithEventTypeScores overrides event-type entries.
func WithEventTypeScores(overrides map[string]float64) Option {
	return func(p *Predictor) {
		p.tables.EventTypes = p.tables.EventTypes.With(overrides)
	}
}

// WithRegistrationBase overrides base registration counts per category.
func WithRegistrationBase(overrides map[string]float64) Option {
	return func(p *Predictor) {
		p.tables.RegistrationBase = p.tables.RegistrationBase.With(overrides)
	}
}

// Predictor combines weighted sub-scores into a success estimate.
type Predictor struct {
	now    func() time.Time
	tables Tables
}

// New creates a Predictor with default tables and the wall clock.
func New(opts ...Option) *Predictor {
	p := &Predictor{now: time.Now, tables: DefaultTables()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Components are the raw sub-scores, each in [0,1].
type Components struct {
	Category    float64
	Timing      float64
	Description float64
	Organizer   float64
	Venue       float64
	EventType   float64
}

// PredictSuccess scores ev. quality, when given, supplies the description
// sub-score; otherwise a length proxy is used.
func (p *Predictor) PredictSuccess(ev model.EventRecord, quality *model.QualityReport) model.SuccessReport {
	category := strings.ToLower(strings.TrimSpace(ev.Category))
	if category == "" {
		category = string(model.CategoryGeneral)
	}

	c := Components{
		Category:    p.tables.Categories.Get(category),
		Timing:      p.Timing(ev.Date, ev.Time),
		Description: DescriptionScore(ev.Description, quality),
		Organizer:   p.Organizer(ev.Society),
		Venue:       p.Venue(ev.Venue),
		EventType:   p.tables.EventTypes.Get(p.EventType(ev.Title, ev.Description)),
	}

	w := p.tables.Weights
	score := 100 * (c.Category*w.Category +
		c.Timing*w.Timing +
		c.Description*w.Description +
		c.Organizer*w.Organizer +
		c.Venue*w.Venue +
		c.EventType*w.EventType)
	score = math.Max(0, math.Min(100, score))

	level, color := Level(score)
	return model.SuccessReport{
		SuccessScore:           round1(score),
		Level:                  level,
		Color:                  color,
		PredictedRegistrations: p.registrations(score, category),
		ComponentScores: map[string]float64{
			model.ComponentCategory:    round1(c.Category * 100),
			model.ComponentTiming:      round1(c.Timing * 100),
			model.ComponentDescription: round1(c.Description * 100),
			model.ComponentOrganizer:   round1(c.Organizer * 100),
			model.ComponentVenue:       round1(c.Venue * 100),
			model.ComponentEventType:   round1(c.EventType * 100),
		},
		Recommendations: recommendations(c, score),
	}
}

// Level maps a success score to its level and display color.
func Level(score float64) (model.SuccessLevel, string) {
	switch {
	case score >= 85:
		return model.LevelExcellent, "green"
	case score >= 75:
		return model.LevelVeryGood, "blue"
	case score >= 65:
		return model.LevelGood, "yellow"
	case score >= 55:
		return model.LevelFair, "orange"
	default:
		return model.LevelNeedsImprovement, "red"
	}
}

// Timing scores the date and time slot. An empty or unparseable date is
// neutral.
func (p *Predictor) Timing(date, clock string) float64 {
	now := p.now()
	d, ok := model.ParseDate(date, now.Location())
	if !ok {
		return neutralTiming
	}

	score := neutralTiming
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		score += 0.2
	case time.Friday:
		score += 0.1
	}

	switch days := model.DaysUntil(d, now); {
	case days >= 7 && days <= 30:
		score += 0.2
	case days >= 3 && days < 7:
		score += 0.1
	case days < 3:
		score -= 0.1
	case days > 60:
		score -= 0.1
	}

	if hour, ok := model.ParseHour(clock); ok {
		switch {
		case hour >= 10 && hour <= 18:
			score += 0.1
		case hour < 9 || hour > 20:
			score -= 0.1
		}
	}
	return math.Max(0, math.Min(1, score))
}

// DescriptionScore uses the quality report when present, else the length of
// description relative to 200 characters.
func DescriptionScore(description string, quality *model.QualityReport) float64 {
	if quality != nil {
		return float64(quality.Score) / 100
	}
	if description == "" {
		return emptyDescription
	}
	return math.Min(float64(utf8.RuneCountInString(description))/descriptionNorm, 1)
}

// Organizer scores the organizing group by name recognition.
func (p *Predictor) Organizer(society string) float64 {
	if society == "" {
		return 0.6
	}
	if lexicon.ContainsAny(strings.ToLower(society), p.tables.PopularOrganizers) {
		return 0.8
	}
	if utf8.RuneCountInString(society) > 3 {
		return 0.7
	}
	return 0.6
}

// Venue scores the venue by kind.
func (p *Predictor) Venue(venue string) float64 {
	if venue == "" {
		return 0.5
	}
	if lexicon.ContainsAny(strings.ToLower(venue), p.tables.GoodVenues) {
		return 0.8
	}
	if utf8.RuneCountInString(venue) > 5 {
		return 0.7
	}
	return 0.5
}

// EventType detects the kind of event from its title and description.
func (p *Predictor) EventType(title, description string) string {
	if name, ok := p.tables.EventTypeKeywords.FirstMatch(title + " " + description); ok {
		return name
	}
	return GeneralEventType
}

func (p *Predictor) registrations(score float64, category string) int {
	base := p.tables.RegistrationBase.Get(category)
	return max(minRegistrations, int(base*(score/registrationNorm)))
}

func recommendations(c Components, score float64) []string {
	out := make([]string, 0, maxRecommendations)
	add := func(cond bool, text string) {
		if cond && len(out) < maxRecommendations {
			out = append(out, text)
		}
	}
	add(c.Timing < 0.6, RecommendTiming)
	add(c.Description < 0.7, RecommendDescription)
	add(c.Organizer < 0.7, RecommendOrganizer)
	add(c.Venue < 0.7, RecommendVenue)
	add(score < 70, RecommendOverall)
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
