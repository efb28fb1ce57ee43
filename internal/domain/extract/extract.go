// Package extract pulls an event-type phrase and an organizing group name
// out of free-text requests.
//
// Both extractions are ordered rule chains evaluated with early return. The
// event-type chain always ends in a fallback rule, so it never comes back
// empty-handed; the group chain has no fallback and absence is meaningful.
package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Minimum lengths a candidate must exceed to be accepted.
const (
	minEventTypeLen = 3
	minGroupLen     = 2
	fallbackWords   = 5
)

// Rule is one step of an extraction chain.
type Rule struct {
	Name  string
	Match func(text string) (string, bool)
}

var fillerWords = regexp.MustCompile(`\b(a|an|the|for|in|on|at|to|of)\b`)

// RegexRule builds a rule from a pattern whose first group is the candidate.
// When lower is set the pattern runs against the lower-cased text. clean
// post-processes the capture; nil keeps it as is. The result must be longer
// than minLen runes.
func RegexRule(name, pattern string, lower bool, clean func(string) string, minLen int) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Name: name,
		Match: func(text string) (string, bool) {
			if lower {
				text = strings.ToLower(text)
			}
			m := re.FindStringSubmatch(text)
			if m == nil {
				return "", false
			}
			out := strings.TrimSpace(m[1])
			if clean != nil {
				out = clean(out)
			}
			if utf8.RuneCountInString(out) <= minLen {
				return "", false
			}
			return out, true
		},
	}
}

// FirstWordsRule returns the first n whitespace-separated words, lower-cased.
func FirstWordsRule(n int) Rule {
	return Rule{
		Name: "first_words",
		Match: func(text string) (string, bool) {
			words := strings.Fields(text)
			if len(words) > n {
				words = words[:n]
			}
			return strings.ToLower(strings.Join(words, " ")), true
		},
	}
}

// PhraseListRule matches known phrases case-insensitively and returns the
// first hit in title case.
func PhraseListRule(name string, phrases []string) Rule {
	return Rule{
		Name: name,
		Match: func(text string) (string, bool) {
			lower := strings.ToLower(text)
			for _, p := range phrases {
				if strings.Contains(lower, p) {
					return TitleCase(p), true
				}
			}
			return "", false
		},
	}
}

// StripFillers removes articles and short prepositions and trims the rest.
func StripFillers(s string) string {
	return strings.TrimSpace(fillerWords.ReplaceAllString(s, ""))
}

// TitleCase upper-cases the first letter of every letter run.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}

// DefaultEventTypeRules returns the event-type chain: cue-word phrases,
// phrases before an event noun, then the first five words.
func DefaultEventTypeRules() []Rule {
	return []Rule{
		RegexRule("after_cue",
			`(?:want|need|looking for|interested in|hope for|wish for)\s+(?:a|an|the)?\s*([^.!?]+)`,
			true, StripFillers, minEventTypeLen),
		RegexRule("before_noun",
			`([a-z]+(?:\s+[a-z]+)?)\s+(?:event|competition|festival|workshop|seminar)`,
			true, StripFillers, minEventTypeLen),
		FirstWordsRule(fallbackWords),
	}
}

// DefaultCommonGroups lists well-known group names matched as a last resort.
func DefaultCommonGroups() []string {
	return []string{
		"coding club", "tech society", "cultural committee", "sports committee",
		"dance club", "music society", "drama club", "art society", "photography club",
		"debate society", "literary club", "robotics club", "ai club", "cyber security club",
	}
}

const capitalized = `([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`

// DefaultGroupRules returns the group-name chain. The capitalized patterns
// run against the original text; the known-name list is case-insensitive.
func DefaultGroupRules() []Rule {
	return []Rule{
		RegexRule("introduced_group", `(?:from|by|for|with)\s+`+capitalized+`\s+(?:society|club|committee)`, false, nil, minGroupLen),
		RegexRule("before_group_noun", capitalized+`\s+(?:society|club|committee|association)`, false, nil, minGroupLen),
		RegexRule("after_group_noun", `(?:society|club|committee)\s+`+capitalized, false, nil, minGroupLen),
		PhraseListRule("common_groups", DefaultCommonGroups()),
	}
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithEventTypeRules replaces the event-type chain. The chain should end in
// a rule that always matches.
func WithEventTypeRules(rules ...Rule) Option {
	return func(e *Extractor) {
		if len(rules) > 0 {
			e.eventType = rules
		}
	}
}

// WithGroupRules replaces the group-name chain.
func WithGroupRules(rules ...Rule) Option {
	return func(e *Extractor) {
		if len(rules) > 0 {
			e.group = rules
		}
	}
}

// Extractor runs the two extraction chains.
type Extractor struct {
	eventType []Rule
	group     []Rule
}

// New creates an Extractor with the default chains.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		eventType: DefaultEventTypeRules(),
		group:     DefaultGroupRules(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EventType returns the first accepted candidate of the event-type chain.
func (e *Extractor) EventType(text string) string {
	out, _ := run(e.eventType, text)
	return out
}

// GroupName returns the organizing group, or false when none is mentioned.
func (e *Extractor) GroupName(text string) (string, bool) {
	return run(e.group, text)
}

func run(rules []Rule, text string) (string, bool) {
	for _, r := range rules {
		if out, ok := r.Match(text); ok {
			return out, true
		}
	}
	return "", false
}
