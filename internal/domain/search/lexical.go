package search

import (
	"regexp"
	"strings"

	"github.com/okian/eventrank/internal/domain/model"
)

// Denominator selects the normalizer of the word-overlap score.
type Denominator int

const (
	// DenominatorQuery divides the overlap by the number of distinct query
	// words, so the score is the fraction of query words found.
	DenominatorQuery Denominator = iota
	// DenominatorUnion divides by the union of query and event words
	// (true Jaccard).
	DenominatorUnion
)

const (
	verbatimBoost        = 0.3
	lexicalCategoryBoost = 0.2
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Words returns the distinct lower-cased word tokens of text.
func Words(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		out[w] = struct{}{}
	}
	return out
}

// LexicalText is the searchable text of an event for keyword matching.
func LexicalText(ev model.EventRecord) string {
	return strings.ToLower(ev.Title + " " + ev.Description + " " + ev.Category + " " + ev.Venue)
}

// LexicalScore rates one event against query by word overlap plus boosts
// for a verbatim query hit and a category named in the query.
func LexicalScore(query string, ev model.EventRecord, d Denominator) float64 {
	q := strings.ToLower(query)
	text := LexicalText(ev)
	qWords := Words(q)
	tWords := Words(text)

	inter := 0
	for w := range qWords {
		if _, ok := tWords[w]; ok {
			inter++
		}
	}

	denom := len(qWords)
	if d == DenominatorUnion {
		denom = len(qWords) + len(tWords) - inter
	}

	var score float64
	if denom > 0 {
		score = float64(inter) / float64(denom)
	}
	if strings.Contains(text, q) {
		score += verbatimBoost
	}
	if categoryNamed(q, ev.Category) {
		score += lexicalCategoryBoost
	}
	return clamp01(score)
}

// Lexical ranks corpus by LexicalScore.
func Lexical(query string, corpus []model.EventRecord, limit int, d Denominator) []model.ScoredEvent {
	out := make([]model.ScoredEvent, len(corpus))
	for i, ev := range corpus {
		out[i] = model.ScoredEvent{
			EventRecord:    ev,
			RelevanceScore: LexicalScore(query, ev, d),
			MatchType:      model.MatchKeyword,
		}
	}
	return rank(out, limit)
}

func categoryNamed(lowerQuery, category string) bool {
	cat := strings.ToLower(category)
	return cat != "" && strings.Contains(lowerQuery, cat)
}
