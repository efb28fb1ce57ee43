package recommend

import (
	"sort"
	"time"

	"github.com/okian/eventrank/internal/domain/model"
)

// TrendThresholds controls TrendingCategories.
type TrendThresholds struct {
	RequestWeight int
	HotAbove      int
	RisingAbove   int
}

// DefaultTrendThresholds returns the built-in trend rules.
func DefaultTrendThresholds() TrendThresholds {
	return TrendThresholds{RequestWeight: 2, HotAbove: 10, RisingAbove: 5}
}

// TrendLabel maps a trend score to hot, rising or stable.
func (t TrendThresholds) TrendLabel(score int) string {
	switch {
	case score > t.HotAbove:
		return model.TrendHot
	case score > t.RisingAbove:
		return model.TrendRising
	default:
		return model.TrendStable
	}
}

type categoryCount struct {
	category string
	count    int
}

// countByCategory groups names by first appearance and orders them by
// descending count.
func countByCategory(names []string) []categoryCount {
	idx := make(map[string]int)
	var out []categoryCount
	for _, n := range names {
		if n == "" {
			continue
		}
		if i, ok := idx[n]; ok {
			out[i].count++
			continue
		}
		idx[n] = len(out)
		out = append(out, categoryCount{category: n, count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	return out
}

// TrendingCategories combines request demand in the trailing days window
// with the number of upcoming events per category. Categories seen in
// requests come first, then the rest, before sorting by trend score.
func (r *Recommender) TrendingCategories(days int, history []model.CategoryRequest, upcoming []model.EventRecord) []model.TrendEntry {
	since := r.now().Add(-time.Duration(days) * 24 * time.Hour)

	var requested []string
	for _, h := range history {
		if !h.CreatedAt.Before(since) {
			requested = append(requested, h.Category)
		}
	}
	scheduled := make([]string, 0, len(upcoming))
	for _, ev := range upcoming {
		scheduled = append(scheduled, ev.Category)
	}

	idx := make(map[string]int)
	var out []model.TrendEntry
	entry := func(category string) *model.TrendEntry {
		if i, ok := idx[category]; ok {
			return &out[i]
		}
		idx[category] = len(out)
		out = append(out, model.TrendEntry{Category: category})
		return &out[len(out)-1]
	}
	for _, c := range countByCategory(requested) {
		entry(c.category).RequestCount = c.count
	}
	for _, c := range countByCategory(scheduled) {
		entry(c.category).EventCount = c.count
	}

	for i := range out {
		out[i].TrendScore = out[i].RequestCount*r.trend.RequestWeight + out[i].EventCount
		out[i].Trend = r.trend.TrendLabel(out[i].TrendScore)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TrendScore > out[j].TrendScore })
	if out == nil {
		out = []model.TrendEntry{}
	}
	return out
}
