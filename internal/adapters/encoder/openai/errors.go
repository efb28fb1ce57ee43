package openai

import "errors"

// Sentinel kinds for encoder errors.
var (
	ErrMissingAPIKey = errors.New("embeddings api key is not set")
	ErrBadResponse   = errors.New("embeddings response does not match input")
)
