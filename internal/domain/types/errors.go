package types

import "errors"

// Sentinel kinds shared by the service and its transports.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrBackpressure = errors.New("request queue is full")
)
