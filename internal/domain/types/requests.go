package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/okian/eventrank/internal/domain/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Validate checks v against its validate tags and reports the first failing
// field.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
			return fmt.Errorf("validation error: %s - %s", ves[0].Field(), ves[0].Tag())
		}
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// AnalyzeRequest is the body of a synchronous request analysis.
type AnalyzeRequest struct {
	Text string `json:"text" validate:"notblank"`
}

// SubmitRequest is the body of an asynchronous intake submission. RequestID
// is generated when omitted.
type SubmitRequest struct {
	RequestID string `json:"request_id,omitempty" validate:"omitempty,max=128"`
	UserID    string `json:"user_id" validate:"notblank,max=128"`
	Text      string `json:"text" validate:"notblank"`
}

// DescriptionRequest is the body of a description scoring call. An empty
// description is allowed and yields an empty report.
type DescriptionRequest struct {
	Description string `json:"description"`
	Title       string `json:"title,omitempty"`
	Category    string `json:"category,omitempty"`
	Date        string `json:"date,omitempty"`
	Venue       string `json:"venue,omitempty"`
}

// SearchRequest carries the query string parameters of a search.
type SearchRequest struct {
	Query    string `validate:"notblank"`
	Limit    int    `validate:"gte=0"`
	Category string
	DateFrom string `validate:"omitempty,datetime=2006-01-02"`
}

// EventRequest is an event row or draft supplied by a client. Dates are not
// checked here since the scorers treat malformed dates as unknown.
type EventRequest struct {
	ID              string `json:"id,omitempty" validate:"omitempty,max=128"`
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Venue           string `json:"venue"`
	Society         string `json:"society"`
	PosterURL       string `json:"poster_url,omitempty" validate:"omitempty,url"`
	RegistrationURL string `json:"registration_url,omitempty" validate:"omitempty,url"`
}

// Record converts the request into the domain event row.
func (r EventRequest) Record() model.EventRecord {
	return model.EventRecord{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Category:        r.Category,
		Date:            r.Date,
		Time:            r.Time,
		Venue:           r.Venue,
		Society:         r.Society,
		PosterURL:       r.PosterURL,
		RegistrationURL: r.RegistrationURL,
	}
}

// SuccessBatchRequest is the body of a batch success prediction.
type SuccessBatchRequest struct {
	Events []EventRequest `json:"events" validate:"required,min=1,max=100,dive"`
}

// PopularityRequest is the body of a popularity estimate. Date, description
// and society add bonuses on top of the category base.
type PopularityRequest struct {
	Category    string `json:"category" validate:"notblank"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Society     string `json:"society,omitempty"`
}

// Record converts the request into the domain event row.
func (r PopularityRequest) Record() model.EventRecord {
	return model.EventRecord{
		Category:    r.Category,
		Date:        r.Date,
		Description: r.Description,
		Society:     r.Society,
	}
}
