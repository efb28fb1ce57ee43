package search

import "errors"

// Sentinel errors of the semantic path. They never reach Engine callers;
// the engine converts them into a keyword fallback.
var (
	ErrEncoderUnavailable = errors.New("semantic encoder unavailable")
	ErrEmbeddingMismatch  = errors.New("encoder returned unexpected embeddings")
	ErrEncoderPanic       = errors.New("encoder panicked")
)
