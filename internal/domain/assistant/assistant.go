// Package assistant turns a free-text event request into a structured
// analysis and a templated auto-response.
package assistant

import (
	"strings"
	"unicode/utf8"

	"github.com/okian/eventrank/internal/domain/classify"
	"github.com/okian/eventrank/internal/domain/extract"
	"github.com/okian/eventrank/internal/domain/model"
)

const (
	// PlaceholderEventType stands in for extractions shorter than minEventTypeLen.
	PlaceholderEventType = "this type of event"
	// AskForGroup is appended when the request names no organizing group.
	AskForGroup = " Could you please mention which society or club you're representing? This helps us route your request to the right team!"

	eventTypeToken  = "{event_type}"
	minEventTypeLen = 3
)

// DefaultTemplates returns the response templates keyed by category. The
// general entry is the fallback for any category without its own template.
func DefaultTemplates() map[model.Category]string {
	return map[model.Category]string{
		model.CategoryTechnical: "Thank you for your interest in technical events! We've noted your request for a {event_type} event. Our technical societies are always planning exciting hackathons, coding competitions, and tech talks. We'll keep you updated when similar events are scheduled!",
		model.CategoryCultural:  "Great to hear you're interested in cultural events! We've received your request for a {event_type} event. Our cultural committee organizes various festivals, competitions, and performances throughout the year. Stay tuned for upcoming cultural events!",
		model.CategorySports:    "Thanks for your sports event request! We've noted your interest in {event_type}. Our sports department regularly organizes tournaments and competitions. We'll notify you when similar sports events are announced!",
		model.CategoryAcademic:  "Thank you for your academic event request! We've recorded your interest in {event_type}. Our academic departments frequently host seminars, workshops, and conferences. You'll be notified about upcoming academic events!",
		model.CategoryGeneral:   "Thank you for your event request! We've received your message about {event_type} and forwarded it to the relevant committee. Our event organizers will review your request and consider it for future planning. Stay tuned for updates!",
	}
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithClassifier sets the category classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(a *Analyzer) {
		if c != nil {
			a.classifier = c
		}
	}
}

// WithSentimentTagger sets the sentiment tagger.
func WithSentimentTagger(s *classify.SentimentTagger) Option {
	return func(a *Analyzer) {
		if s != nil {
			a.sentiment = s
		}
	}
}

// WithExtractor sets the entity extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(a *Analyzer) {
		if e != nil {
			a.extractor = e
		}
	}
}

// WithTemplates overrides response templates per category. Templates use
// {event_type} as the interpolation token.
func WithTemplates(templates map[model.Category]string) Option {
	return func(a *Analyzer) {
		for k, v := range templates {
			a.templates[k] = v
		}
	}
}

// Analyzer composes the classifier, sentiment tagger and extractor.
type Analyzer struct {
	classifier *classify.Classifier
	sentiment  *classify.SentimentTagger
	extractor  *extract.Extractor
	templates  map[model.Category]string
}

// New creates an Analyzer with default components.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		classifier: classify.NewClassifier(),
		sentiment:  classify.NewSentimentTagger(),
		extractor:  extract.New(),
		templates:  DefaultTemplates(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ClassifyAndRespond analyzes a request. Callers reject empty text before
// calling; the analysis is still well formed if they do not.
func (a *Analyzer) ClassifyAndRespond(text string) model.RequestAnalysis {
	category := a.classifier.Classify(text)
	eventType := a.extractor.EventType(text)

	out := model.RequestAnalysis{
		Category:           category,
		Sentiment:          a.sentiment.Tag(text),
		ExtractedEventType: eventType,
		AutoResponse:       a.respond(category, eventType),
	}
	if group, ok := a.extractor.GroupName(text); ok {
		out.ExtractedGroupName = &group
	} else {
		out.AutoResponse += AskForGroup
	}
	return out
}

func (a *Analyzer) respond(category model.Category, eventType string) string {
	if utf8.RuneCountInString(eventType) < minEventTypeLen {
		eventType = PlaceholderEventType
	}
	tmpl, ok := a.templates[category]
	if !ok {
		tmpl = a.templates[model.CategoryGeneral]
	}
	return strings.ReplaceAll(tmpl, eventTypeToken, eventType)
}
