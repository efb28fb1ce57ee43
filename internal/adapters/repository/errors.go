package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("request not found")
	ErrInvalidEvent = errors.New("invalid event")
	ErrInvalidID    = errors.New("invalid request id")
)
