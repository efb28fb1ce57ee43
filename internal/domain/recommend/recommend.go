// Package recommend ranks upcoming events per user, estimates event
// popularity and summarizes category demand.
//
// Every function is a pure function of its arguments and the injected
// clock; history and events are snapshots supplied by the caller.
package recommend

import (
	"sort"
	"time"

	"github.com/okian/eventrank/internal/domain/model"
)

// AffinityWeights controls per-user scoring.
type AffinityWeights struct {
	CategoryMatch   float64
	PerRequest      float64
	WeekBonus       float64
	MonthBonus      float64
	WeekDays        int
	MonthDays       int
	ConfidenceScale float64
}

// DefaultAffinityWeights returns the built-in recommendation weights.
func DefaultAffinityWeights() AffinityWeights {
	return AffinityWeights{
		CategoryMatch:   2.0,
		PerRequest:      0.5,
		WeekBonus:       1.0,
		MonthBonus:      0.5,
		WeekDays:        7,
		MonthDays:       30,
		ConfidenceScale: 3.0,
	}
}

// Option applies a configuration option to the Recommender.
type Option func(*Recommender)

// WithClock sets the time source. Dates are parsed in the clock's location.
func WithClock(now func() time.Time) Option {
	return func(r *Recommender) {
		if now != nil {
			r.now = now
		}
	}
}

// WithAffinityWeights replaces the recommendation weights.
func WithAffinityWeights(w AffinityWeights) Option {
	return func(r *Recommender) {
		r.affinity = w
	}
}

// WithPopularityWeights replaces the popularity weights.
func WithPopularityWeights(w PopularityWeights) Option {
	return func(r *Recommender) {
		r.popularity = w
	}
}

// WithTrendThresholds replaces the trend labelling rules.
func WithTrendThresholds(t TrendThresholds) Option {
	return func(r *Recommender) {
		r.trend = t
	}
}

// Recommender holds the weight tables and clock.
type Recommender struct {
	now        func() time.Time
	affinity   AffinityWeights
	popularity PopularityWeights
	trend      TrendThresholds
}

// New creates a Recommender with default tables and the wall clock.
func New(opts ...Option) *Recommender {
	r := &Recommender{
		now:        time.Now,
		affinity:   DefaultAffinityWeights(),
		popularity: DefaultPopularityWeights(),
		trend:      DefaultTrendThresholds(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Affinity counts a user's requests per category.
func Affinity(userID string, history []model.CategoryRequest) map[string]int {
	out := make(map[string]int)
	for _, h := range history {
		if h.UserID == userID && h.Category != "" {
			out[h.Category]++
		}
	}
	return out
}

// Recommend scores upcoming events for userID. upcoming is expected in
// ascending date order; equal scores keep that order. limit <= 0 returns
// every event.
func (r *Recommender) Recommend(userID string, limit int, history []model.CategoryRequest, upcoming []model.EventRecord) []model.Recommendation {
	affinity := Affinity(userID, history)
	now := r.now()
	w := r.affinity

	out := make([]model.Recommendation, 0, len(upcoming))
	for _, ev := range upcoming {
		score := 0.0
		if n := affinity[ev.Category]; n > 0 {
			score += w.CategoryMatch
			score += float64(n) * w.PerRequest
		}
		if d, ok := model.ParseDate(ev.Date, now.Location()); ok {
			switch days := model.DaysUntil(d, now); {
			case days <= w.WeekDays:
				score += w.WeekBonus
			case days <= w.MonthDays:
				score += w.MonthBonus
			}
		}

		confidence := 0.0
		if w.ConfidenceScale > 0 {
			confidence = min(score/w.ConfidenceScale, 1.0)
		}
		out = append(out, model.Recommendation{EventRecord: ev, Score: score, Confidence: confidence})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
