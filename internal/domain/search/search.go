// Package search ranks events against a free-text query.
//
// Two strategies exist. Keyword matching is always available. Semantic
// matching uses an external Encoder that is built lazily on the first
// search; if building it fails the engine stays on keyword matching for
// its whole lifetime. A failure while encoding falls back for that call
// only. Callers never see an error from Search.
package search

import (
	"context"
	"sort"
	"time"

	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/pkg/logger"
	"github.com/okian/eventrank/pkg/metrics"
)

// Query is a search request. Text must be non-empty. Limit <= 0 returns
// every match. Category and DateFrom narrow the corpus before scoring.
type Query struct {
	Text     string
	Limit    int
	Category string
	DateFrom string
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithEncoderFactory enables the semantic strategy.
func WithEncoderFactory(f EncoderFactory) Option {
	return func(e *Engine) {
		e.factory = f
	}
}

// WithDenominator selects the keyword score normalizer.
func WithDenominator(d Denominator) Option {
	return func(e *Engine) {
		e.denominator = d
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine runs searches and owns the encoder state.
type Engine struct {
	factory     EncoderFactory
	denominator Denominator
	log         logger.Logger
	cell        *EncoderCell
}

// NewEngine creates an Engine. Without an encoder factory every search is
// a keyword search.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		denominator: DenominatorQuery,
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cell = NewEncoderCell(e.factory, e.log)
	return e
}

// EncoderState reports whether semantic search is in use.
func (e *Engine) EncoderState() EncoderState {
	return e.cell.State()
}

// Search filters corpus, scores it and returns results by descending
// relevance. Equal scores keep corpus order.
func (e *Engine) Search(ctx context.Context, q Query, corpus []model.EventRecord) []model.ScoredEvent {
	start := time.Now()
	events := Filter(corpus, q.Category, q.DateFrom)
	if len(events) == 0 {
		return []model.ScoredEvent{}
	}

	matchType := model.MatchKeyword
	var out []model.ScoredEvent
	if enc, ok := e.cell.Get(ctx); ok {
		res, err := Semantic(ctx, enc, q.Text, events, q.Limit)
		if err == nil {
			out, matchType = res, model.MatchSemantic
		} else {
			metrics.RecordEncoderFallback()
			e.log.Warn(ctx, "semantic search failed, falling back to keyword matching", logger.Error(err))
		}
	}
	if out == nil {
		out = Lexical(q.Text, events, q.Limit, e.denominator)
	}

	metrics.RecordSearch(string(matchType), float64(time.Since(start).Microseconds())/1000)
	e.log.Debug(ctx, "search completed",
		logger.String("matchType", string(matchType)),
		logger.Int("candidates", len(events)),
		logger.Int("results", len(out)),
	)
	return out
}

// Filter keeps events of the given category dated on or after dateFrom.
// Empty arguments do not filter. Dates compare as ISO strings.
func Filter(corpus []model.EventRecord, category, dateFrom string) []model.EventRecord {
	if category == "" && dateFrom == "" {
		return corpus
	}
	out := make([]model.EventRecord, 0, len(corpus))
	for _, ev := range corpus {
		if category != "" && ev.Category != category {
			continue
		}
		if dateFrom != "" && ev.Date < dateFrom {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func rank(events []model.ScoredEvent, limit int) []model.ScoredEvent {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].RelevanceScore > events[j].RelevanceScore
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
