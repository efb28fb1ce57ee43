// Package lexicon holds ordered keyword tables and the substring matching
// rules shared by the text scorers.
//
// All matching is case-insensitive substring matching: "ai" matches inside
// "said". Callers that need word boundaries must tokenize first.
package lexicon

import "strings"

// Group is a named set of keyword phrases.
type Group struct {
	Name     string
	Keywords []string
}

// Table is an ordered list of groups. Declaration order is significant:
// it breaks ties in BestMatch and decides the winner in FirstMatch.
type Table []Group

// Keywords returns the phrases of the named group.
func (t Table) Keywords(name string) ([]string, bool) {
	for _, g := range t {
		if g.Name == name {
			return g.Keywords, true
		}
	}
	return nil, false
}

// Names returns group names in declaration order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, g := range t {
		names[i] = g.Name
	}
	return names
}

// BestMatch returns the group with the most phrases present in text.
// Groups with zero hits never win; ties go to the earlier group.
func (t Table) BestMatch(text string) (string, int) {
	lower := strings.ToLower(text)
	best, bestScore := "", 0
	for _, g := range t {
		if n := Count(lower, g.Keywords); n > bestScore {
			best, bestScore = g.Name, n
		}
	}
	return best, bestScore
}

// FirstMatch returns the first group having at least one phrase in text.
func (t Table) FirstMatch(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, g := range t {
		if ContainsAny(lower, g.Keywords) {
			return g.Name, true
		}
	}
	return "", false
}

// Clone returns a deep copy so callers can mutate a table safely.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for i, g := range t {
		out[i] = Group{Name: g.Name, Keywords: append([]string(nil), g.Keywords...)}
	}
	return out
}

// Count returns how many phrases occur in lower. lower must already be
// lower-cased; phrases are expected in lower case.
func Count(lower string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			n++
		}
	}
	return n
}

// ContainsAny reports whether any phrase occurs in lower.
func ContainsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Weights maps a key to a score with a fallback for unknown keys.
type Weights struct {
	Values  map[string]float64
	Default float64
}

// Get returns the weight for key, or the default.
func (w Weights) Get(key string) float64 {
	if v, ok := w.Values[key]; ok {
		return v
	}
	return w.Default
}

// With returns a copy of w with overrides applied on top.
func (w Weights) With(overrides map[string]float64) Weights {
	out := Weights{Values: make(map[string]float64, len(w.Values)+len(overrides)), Default: w.Default}
	for k, v := range w.Values {
		out.Values[k] = v
	}
	for k, v := range overrides {
		out.Values[k] = v
	}
	return out
}
