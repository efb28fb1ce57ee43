// Package repository holds the read model the scorers work from: event rows
// and the category history of analyzed student requests.
package repository

import (
	"context"
	"time"

	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/internal/domain/types"
)

// Store provides read/write access to events and student requests.
type Store interface {
	// AddEvent inserts or replaces an event row by id.
	AddEvent(ctx context.Context, ev model.EventRecord) error

	// Events returns every event ordered by date ascending.
	Events(ctx context.Context) []model.EventRecord

	// UpcomingEvents returns events dated on or after today (YYYY-MM-DD),
	// ordered by date ascending.
	UpcomingEvents(ctx context.Context, today string) []model.EventRecord

	// SaveRequest inserts or replaces a student request by id.
	SaveRequest(ctx context.Context, req types.StoredRequest) error

	// Request returns a stored request or ErrNotFound.
	Request(ctx context.Context, id string) (types.StoredRequest, error)

	// UserHistory returns the analyzed requests of one user.
	UserHistory(ctx context.Context, userID string) []model.CategoryRequest

	// RequestsSince returns analyzed requests created at or after since.
	RequestsSince(ctx context.Context, since time.Time) []model.CategoryRequest

	// Count returns the number of events and requests held.
	Count(ctx context.Context) (events, requests int)
}
