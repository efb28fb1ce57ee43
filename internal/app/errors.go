package service

import "github.com/okian/eventrank/internal/domain/types"

// Sentinel kinds for service errors.
var (
	ErrNotStarted   = types.ErrNotStarted
	ErrBackpressure = types.ErrBackpressure
)
