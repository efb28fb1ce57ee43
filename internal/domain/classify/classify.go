// Package classify maps free text to a category and a coarse sentiment.
package classify

import (
	"strings"

	"github.com/okian/eventrank/internal/domain/lexicon"
	"github.com/okian/eventrank/internal/domain/model"
)

// DefaultCategories returns the built-in category keyword table in
// tie-break order.
func DefaultCategories() lexicon.Table {
	return lexicon.Table{
		{Name: string(model.CategoryTechnical), Keywords: []string{
			"hackathon", "coding", "programming", "tech", "software", "ai", "ml", "data science",
			"cyber security", "web development", "app development", "coding competition", "tech talk",
		}},
		{Name: string(model.CategoryCultural), Keywords: []string{
			"music", "dance", "singing", "drama", "theater", "art", "painting", "cultural", "festival",
			"cultural fest", "music festival", "dance competition", "talent show", "cultural event",
		}},
		{Name: string(model.CategorySports), Keywords: []string{
			"sports", "cricket", "football", "basketball", "volleyball", "badminton", "tennis", "athletics",
			"tournament", "sports meet", "competition", "match", "game",
		}},
		{Name: string(model.CategoryAcademic), Keywords: []string{
			"seminar", "workshop", "lecture", "conference", "research", "paper presentation", "academic",
			"guest lecture", "symposium", "panel discussion", "academic event",
		}},
	}
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithCategories replaces the category keyword table.
func WithCategories(table lexicon.Table) Option {
	return func(c *Classifier) {
		if len(table) > 0 {
			c.categories = table.Clone()
		}
	}
}

// Classifier scores text against each category's keyword phrases.
type Classifier struct {
	categories lexicon.Table
}

// NewClassifier creates a classifier with the default table unless overridden.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{categories: DefaultCategories()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the category with the most keyword hits. Ties go to the
// earlier declared category and zero hits yield general.
func (c *Classifier) Classify(text string) model.Category {
	name, score := c.categories.BestMatch(text)
	if score == 0 {
		return model.CategoryGeneral
	}
	return model.Category(name)
}

// Categories returns the configured category names in tie-break order.
func (c *Classifier) Categories() []string {
	return c.categories.Names()
}

// SentimentTagger counts positive and negative cue words.
type SentimentTagger struct {
	positive []string
	negative []string
}

// SentimentOption applies a configuration option to the SentimentTagger.
type SentimentOption func(*SentimentTagger)

// WithSentimentWords replaces the cue word lists.
func WithSentimentWords(positive, negative []string) SentimentOption {
	return func(s *SentimentTagger) {
		s.positive = lowerAll(positive)
		s.negative = lowerAll(negative)
	}
}

// NewSentimentTagger creates a tagger with the built-in word lists.
func NewSentimentTagger(opts ...SentimentOption) *SentimentTagger {
	s := &SentimentTagger{
		positive: []string{"want", "need", "hope", "wish", "excited", "looking forward", "interested", "love", "like"},
		negative: []string{"disappointed", "sad", "frustrated", "angry", "hate", "dislike"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tag returns positive or negative when one side has strictly more cue
// words present, neutral otherwise.
func (s *SentimentTagger) Tag(text string) model.Sentiment {
	lower := strings.ToLower(text)
	pos := lexicon.Count(lower, s.positive)
	neg := lexicon.Count(lower, s.negative)
	switch {
	case pos > neg:
		return model.SentimentPositive
	case neg > pos:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
