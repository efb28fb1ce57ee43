package model

// SuccessLevel buckets a success score.
type SuccessLevel string

// Success levels from best to worst.
const (
	LevelExcellent        SuccessLevel = "Excellent"
	LevelVeryGood         SuccessLevel = "Very Good"
	LevelGood             SuccessLevel = "Good"
	LevelFair             SuccessLevel = "Fair"
	LevelNeedsImprovement SuccessLevel = "Needs Improvement"
)

// Component score names reported by the success predictor.
const (
	ComponentCategory    = "category"
	ComponentTiming      = "timing"
	ComponentDescription = "description"
	ComponentOrganizer   = "organizer"
	ComponentVenue       = "venue"
	ComponentEventType   = "event_type"
)

// SuccessReport is the composite engagement estimate for an event draft.
type SuccessReport struct {
	SuccessScore           float64            `json:"success_score"`
	Level                  SuccessLevel       `json:"level"`
	Color                  string             `json:"color"`
	PredictedRegistrations int                `json:"predicted_registrations"`
	ComponentScores        map[string]float64 `json:"component_scores"`
	Recommendations        []string           `json:"recommendations"`
}

// PopularityReport is the output of the stateless popularity estimate.
type PopularityReport struct {
	PopularityScore        float64 `json:"popularity_score"`
	PredictedRegistrations int     `json:"predicted_registrations"`
	Confidence             string  `json:"confidence"`
}

// Trend labels.
const (
	TrendHot    = "hot"
	TrendRising = "rising"
	TrendStable = "stable"
)

// TrendEntry aggregates demand and supply for one category.
type TrendEntry struct {
	Category     string `json:"category"`
	RequestCount int    `json:"request_count"`
	EventCount   int    `json:"event_count"`
	TrendScore   int    `json:"trend_score"`
	Trend        string `json:"trend"`
}
