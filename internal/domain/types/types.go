// Package types contains request and response records shared by the intake
// pipeline and the HTTP API.
package types

import (
	"time"

	"github.com/okian/eventrank/internal/domain/model"
)

// RequestStatus is the lifecycle state of a submitted student request.
type RequestStatus string

// Request states.
const (
	StatusQueued   RequestStatus = "queued"
	StatusAnalyzed RequestStatus = "analyzed"
	StatusRejected RequestStatus = "rejected"
)

// StoredRequest is a student request as kept by the store. Analysis is nil
// until a worker has processed it.
type StoredRequest struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Text      string                 `json:"text"`
	Status    RequestStatus          `json:"status"`
	Analysis  *model.RequestAnalysis `json:"analysis,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// CategoryRequest reduces an analyzed request to the history row the
// recommender consumes. ok is false while the request is still queued.
func (r StoredRequest) CategoryRequest() (model.CategoryRequest, bool) {
	if r.Analysis == nil {
		return model.CategoryRequest{}, false
	}
	return model.CategoryRequest{
		UserID:    r.UserID,
		Category:  string(r.Analysis.Category),
		CreatedAt: r.CreatedAt,
	}, true
}

// SubmitResponse acknowledges an intake submission.
type SubmitResponse struct {
	RequestID string        `json:"request_id"`
	Status    RequestStatus `json:"status"`
	Duplicate bool          `json:"duplicate"`
}
