// Package model contains domain models passed between layers.
package model

import "time"

// Category is the coarse topical tag of an event or a request.
type Category string

// Known categories. General is the catch-all when nothing else matches.
const (
	CategoryTechnical Category = "technical"
	CategoryCultural  Category = "cultural"
	CategorySports    Category = "sports"
	CategoryAcademic  Category = "academic"
	CategoryGeneral   Category = "general"
)

// EventRecord is a read-only view of an event row supplied by the store.
// Date uses YYYY-MM-DD and Time uses HH:MM, both as free text.
type EventRecord struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Venue           string `json:"venue"`
	Society         string `json:"society"`
	PosterURL       string `json:"poster_url,omitempty"`
	RegistrationURL string `json:"registration_url,omitempty"`
}

// CategoryRequest is one historical request of a user, reduced to the
// category the analyzer detected for it.
type CategoryRequest struct {
	UserID    string    `json:"user_id"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchKind tells which search strategy produced a result.
type MatchKind string

// Search strategies.
const (
	MatchSemantic MatchKind = "semantic"
	MatchKeyword  MatchKind = "keyword"
)

// ScoredEvent is an event annotated with its relevance to a query.
type ScoredEvent struct {
	EventRecord
	RelevanceScore float64   `json:"relevance_score"`
	MatchType      MatchKind `json:"match_type"`
}

// Recommendation is an upcoming event ranked for a specific user.
type Recommendation struct {
	EventRecord
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}
