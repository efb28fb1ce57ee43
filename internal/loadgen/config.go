// Package loadgen drives a running ranking service over HTTP: it submits
// generated student requests, waits for the workers to analyze them and
// checks the analyses and the trending report against what was sent.
package loadgen

import (
	"time"

	"github.com/okian/eventrank/internal/domain/model"
)

// Config holds configuration for a load run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumRequests int           // Number of requests to generate
	Users       int           // Number of distinct user ids
	Workers     int           // Number of concurrent HTTP workers
	Timeout     time.Duration // HTTP request timeout
	WaitFor     time.Duration // How long to poll for analyses
	PollEvery   time.Duration // Poll interval while waiting
	Duplicates  int           // Requests re-submitted with the same id
	OutputFile  string        // Optional JSON dump of the generated requests
}

// Request is a generated submission and the category it was written for.
type Request struct {
	RequestID string         `json:"request_id"`
	UserID    string         `json:"user_id"`
	Text      string         `json:"text"`
	Expected  model.Category `json:"-"`
}

// Stats holds run statistics.
type Stats struct {
	Generated     int
	Accepted      int
	Duplicate     int
	Rejected      int
	Failed        int
	Analyzed      int
	Mismatched    int
	TrendRequests int
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}
