package types

// ServiceStats is the operational snapshot served on GET /stats. Store and
// intake fields stay zero until the service has started.
type ServiceStats struct {
	Started      bool   `json:"started"`
	EncoderState string `json:"encoder_state"`

	Workers        int   `json:"workers"`
	QueueCapacity  int   `json:"queue_capacity"`
	QueueLength    int   `json:"queue_length"`
	DedupeCapacity int   `json:"dedupe_capacity"`
	DedupeEntries  int   `json:"dedupe_entries"`
	Processed      int64 `json:"processed"`

	Events   int `json:"events"`
	Requests int `json:"requests"`

	RequestsByStatus   map[RequestStatus]int `json:"requests_by_status,omitempty"`
	RequestsByCategory map[string]int        `json:"requests_by_category,omitempty"`
	EventsByCategory   map[string]int        `json:"events_by_category,omitempty"`
}

// RequestTally counts stored requests by lifecycle state and, for analyzed
// ones, by detected category.
type RequestTally struct {
	ByStatus   map[RequestStatus]int
	ByCategory map[string]int
}
