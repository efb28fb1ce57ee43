package search

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/okian/eventrank/internal/domain/model"
)

const semanticCategoryBoost = 0.1

// SemanticText is the text embedded for an event.
func SemanticText(ev model.EventRecord) string {
	return ev.Title + ". " + ev.Description
}

// Cosine returns the cosine similarity of a and b, or 0 when either has
// zero magnitude. Extra trailing dimensions of the longer vector are ignored.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, ma, mb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		ma += v * v
	}
	for _, v := range b {
		mb += v * v
	}
	if ma == 0 || mb == 0 {
		return 0
	}
	return dot / (math.Sqrt(ma) * math.Sqrt(mb))
}

// Semantic ranks corpus by embedding similarity to query. The query and all
// event texts are encoded in one call. Any encoder failure, including a
// panic, is returned as an error.
func Semantic(ctx context.Context, enc Encoder, query string, corpus []model.EventRecord, limit int) (_ []model.ScoredEvent, err error) {
	if enc == nil {
		return nil, ErrEncoderUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrEncoderPanic, r)
		}
	}()

	texts := make([]string, 0, len(corpus)+1)
	texts = append(texts, query)
	for _, ev := range corpus {
		texts = append(texts, SemanticText(ev))
	}

	vecs, err := enc.Encode(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrEmbeddingMismatch, len(vecs), len(texts))
	}

	q := strings.ToLower(query)
	out := make([]model.ScoredEvent, len(corpus))
	for i, ev := range corpus {
		score := Cosine(vecs[0], vecs[i+1])
		if categoryNamed(q, ev.Category) {
			score += semanticCategoryBoost
		}
		out[i] = model.ScoredEvent{
			EventRecord:    ev,
			RelevanceScore: clamp01(score),
			MatchType:      model.MatchSemantic,
		}
	}
	return rank(out, limit), nil
}
