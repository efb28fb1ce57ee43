package model

// Sentiment is the coarse polarity of a free-text request.
type Sentiment string

// Sentiment values.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// RequestAnalysis is the structured outcome of analyzing a student request.
// GroupName is nil when no organizing group could be found in the text.
type RequestAnalysis struct {
	Category           Category  `json:"category"`
	Sentiment          Sentiment `json:"sentiment"`
	ExtractedEventType string    `json:"extracted_event_type"`
	ExtractedGroupName *string   `json:"extracted_group_name"`
	AutoResponse       string    `json:"auto_response"`
}

// Element is one of the informational elements a description should cover.
type Element string

// Informational elements in rubric order.
const (
	ElementWhat  Element = "what"
	ElementWhen  Element = "when"
	ElementWhere Element = "where"
	ElementWho   Element = "who"
	ElementWhy   Element = "why"
)

// AllElements lists the elements in the order they are checked.
func AllElements() []Element {
	return []Element{ElementWhat, ElementWhen, ElementWhere, ElementWho, ElementWhy}
}

// Grade is the letter grade of a description.
type Grade string

// Grades from best to worst.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// QualityReport is the rubric evaluation of an event description.
type QualityReport struct {
	Score               int       `json:"score"`
	Grade               Grade     `json:"grade"`
	Suggestions         []string  `json:"suggestions"`
	Strengths           []string  `json:"strengths"`
	MissingElements     []Element `json:"missing_elements"`
	EnhancedDescription *string   `json:"enhanced_description"`
	Length              int       `json:"length"`
	SentenceCount       int       `json:"sentence_count"`
}
