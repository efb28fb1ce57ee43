// Package quality grades event descriptions against a rubric of length,
// informational elements, engagement language and readability.
package quality

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/okian/eventrank/internal/domain/lexicon"
	"github.com/okian/eventrank/internal/domain/model"
)

const (
	maxSuggestions = 5
	maxEnhanced    = 500
	enhanceRatio   = 1.2

	emptySuggestion = "Add a description to help attendees understand your event"
	callToAction    = "Register now to secure your spot!"
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// ElementCheck describes how one informational element is detected and
// what its absence costs.
type ElementCheck struct {
	Element    model.Element
	Keywords   []string
	Penalty    int
	Suggestion string
}

// Rubric holds every threshold, keyword list and penalty of the scorer.
type Rubric struct {
	MinLength     int
	OptimalLength int
	MaxLength     int

	ShortPenalty int
	BriefPenalty int
	LongPenalty  int

	Elements []ElementCheck

	EngagementWords   []string
	EngagementPenalty int

	RegistrationWords   []string
	RegistrationPenalty int

	MinSentences         int
	MaxSentences         int
	FewSentencesPenalty  int
	ManySentencesPenalty int
}

// DefaultRubric returns the built-in rubric.
func DefaultRubric() Rubric {
	return Rubric{
		MinLength:     50,
		OptimalLength: 150,
		MaxLength:     500,
		ShortPenalty:  30,
		BriefPenalty:  10,
		LongPenalty:   15,
		Elements: []ElementCheck{
			{model.ElementWhat, []string{"what", "about", "event", "activity", "workshop", "seminar"}, 20,
				"Mention what the event is about"},
			{model.ElementWhen, []string{"when", "date", "time", "schedule", "duration"}, 15,
				"Include when the event takes place (date/time)"},
			{model.ElementWhere, []string{"where", "venue", "location", "place", "address"}, 15,
				"Mention where the event will be held (venue/location)"},
			{model.ElementWho, []string{"who", "organizer", "society", "club", "committee", "speaker"}, 10,
				"Include who is organizing or speaking at the event"},
			{model.ElementWhy, []string{"why", "benefit", "learn", "gain", "skill", "opportunity"}, 10,
				"Explain why attendees should come (benefits, learning outcomes)"},
		},
		EngagementWords:      []string{"join", "participate", "learn", "explore", "discover", "experience", "connect", "network"},
		EngagementPenalty:    5,
		RegistrationWords:    []string{"register", "registration"},
		RegistrationPenalty:  5,
		MinSentences:         2,
		MaxSentences:         8,
		FewSentencesPenalty:  10,
		ManySentencesPenalty: 5,
	}
}

// Input is a description plus the structured fields known about the event.
// Date and Venue suppress the matching suggestions when set.
type Input struct {
	Description string
	Title       string
	Category    string
	Date        string
	Venue       string
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithRubric replaces the rubric.
func WithRubric(r Rubric) Option {
	return func(s *Scorer) {
		s.rubric = r
	}
}

// Scorer evaluates descriptions against a rubric.
type Scorer struct {
	rubric Rubric
}

// New creates a Scorer with the default rubric.
func New(opts ...Option) *Scorer {
	s := &Scorer{rubric: DefaultRubric()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreDescription grades in. An empty description yields a zero report;
// a whitespace-only one is graded like any other text.
func (s *Scorer) ScoreDescription(in Input) model.QualityReport {
	if in.Description == "" {
		return emptyReport()
	}

	r := s.rubric
	lower := strings.ToLower(in.Description)
	score := 100
	var suggestions, strengths []string
	missing := []model.Element{}

	length := utf8.RuneCountInString(in.Description)
	switch {
	case length < r.MinLength:
		score -= r.ShortPenalty
		suggestions = append(suggestions, fmt.Sprintf("Description is too short (%d chars). Aim for at least %d characters to provide enough information.", length, r.MinLength))
	case length < r.OptimalLength:
		score -= r.BriefPenalty
		suggestions = append(suggestions, fmt.Sprintf("Description could be more detailed (%d chars). Consider adding more information (aim for %d+ characters).", length, r.OptimalLength))
	case length > r.MaxLength:
		score -= r.LongPenalty
		suggestions = append(suggestions, fmt.Sprintf("Description is quite long (%d chars). Consider making it more concise while keeping key information.", length))
	default:
		strengths = append(strengths, fmt.Sprintf("Good description length (%d characters)", length))
	}

	for _, el := range r.Elements {
		if lexicon.ContainsAny(lower, el.Keywords) {
			strengths = append(strengths, fmt.Sprintf("Good: Includes %s information", el.Element))
			continue
		}
		missing = append(missing, el.Element)
		score -= el.Penalty
		if !suppliedStructurally(in, el.Element) {
			suggestions = append(suggestions, el.Suggestion)
		}
	}

	if lexicon.ContainsAny(lower, r.EngagementWords) {
		strengths = append(strengths, "Includes engaging language")
	} else {
		score -= r.EngagementPenalty
		suggestions = append(suggestions, "Add engaging action words (e.g., 'join', 'learn', 'explore') to encourage participation")
	}

	if !lexicon.ContainsAny(lower, r.RegistrationWords) {
		score -= r.RegistrationPenalty
		suggestions = append(suggestions, "Mention how to register or get more information")
	}

	sentences := CountSentences(in.Description)
	switch {
	case sentences < r.MinSentences:
		score -= r.FewSentencesPenalty
		suggestions = append(suggestions, "Break description into multiple sentences for better readability")
	case sentences > r.MaxSentences:
		score -= r.ManySentencesPenalty
		suggestions = append(suggestions, "Consider breaking long description into shorter paragraphs")
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	if strengths == nil {
		strengths = []string{}
	}

	score = clamp(score, 0, 100)
	return model.QualityReport{
		Score:               score,
		Grade:               GradeFor(score),
		Suggestions:         suggestions,
		Strengths:           strengths,
		MissingElements:     missing,
		EnhancedDescription: enhance(in, missing),
		Length:              length,
		SentenceCount:       sentences,
	}
}

// GradeFor maps a score to a letter grade.
func GradeFor(score int) model.Grade {
	switch {
	case score >= 90:
		return model.GradeA
	case score >= 80:
		return model.GradeB
	case score >= 70:
		return model.GradeC
	case score >= 60:
		return model.GradeD
	default:
		return model.GradeF
	}
}

// CountSentences counts non-blank fragments between sentence terminators.
func CountSentences(text string) int {
	n := 0
	for _, part := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}

func suppliedStructurally(in Input, el model.Element) bool {
	switch el {
	case model.ElementWhen:
		return in.Date != ""
	case model.ElementWhere:
		return in.Venue != ""
	default:
		return false
	}
}

// enhance appends synthesized sentences for missing elements and a call to
// action. The rewrite is returned only when it grew enough or an element
// was missing.
func enhance(in Input, missing []model.Element) *string {
	var parts []string
	if current := strings.TrimSpace(in.Description); current != "" {
		parts = append(parts, current)
	}

	isMissing := func(el model.Element) bool {
		for _, m := range missing {
			if m == el {
				return true
			}
		}
		return false
	}

	var additions []string
	if isMissing(model.ElementWhat) && in.Title != "" {
		kind := in.Category
		if kind == "" {
			kind = "event"
		}
		additions = append(additions, fmt.Sprintf("This %s is about %s.", kind, strings.ToLower(in.Title)))
	}
	if isMissing(model.ElementWhen) && in.Date != "" {
		additions = append(additions, fmt.Sprintf("The event will take place on %s.", in.Date))
	}
	if isMissing(model.ElementWhere) && in.Venue != "" {
		additions = append(additions, fmt.Sprintf("Location: %s.", in.Venue))
	}
	if isMissing(model.ElementWhy) {
		additions = append(additions, "Don't miss this opportunity to learn, network, and grow!")
	}
	if len(additions) > 0 {
		parts = append(parts, strings.Join(additions, " "))
	}
	if !strings.Contains(strings.ToLower(in.Description), "register") {
		parts = append(parts, callToAction)
	}

	out := strings.Join(parts, " ")
	original := utf8.RuneCountInString(in.Description)
	if float64(utf8.RuneCountInString(out)) < float64(original)*enhanceRatio && len(missing) == 0 {
		return nil
	}
	if runes := []rune(out); len(runes) > maxEnhanced {
		out = string(runes[:maxEnhanced])
	}
	return &out
}

func emptyReport() model.QualityReport {
	return model.QualityReport{
		Score:           0,
		Grade:           model.GradeF,
		Suggestions:     []string{emptySuggestion},
		Strengths:       []string{},
		MissingElements: model.AllElements(),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
