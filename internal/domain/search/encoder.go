package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/eventrank/pkg/logger"
	"github.com/okian/eventrank/pkg/metrics"
)

// initTimeout bounds the encoder build, which is detached from the
// triggering caller's cancellation.
const initTimeout = 30 * time.Second

// Encoder turns texts into fixed-length embeddings, one per input, in order.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float64, error)
}

// EncoderFactory builds an Encoder. It is called at most once per Engine.
type EncoderFactory func(ctx context.Context) (Encoder, error)

// EncoderState is the availability of the semantic strategy.
type EncoderState int

// Encoder states.
const (
	StateUninitialized EncoderState = iota
	StateAvailable
	StateUnavailable
)

func (s EncoderState) String() string {
	switch s {
	case StateAvailable:
		return "available"
	case StateUnavailable:
		return "unavailable"
	default:
		return "uninitialized"
	}
}

// EncoderCell holds the lazily built encoder. The first Get runs the
// factory; the outcome is kept for the lifetime of the cell.
type EncoderCell struct {
	factory EncoderFactory
	log     logger.Logger

	once  sync.Once
	mu    sync.RWMutex
	state EncoderState
	enc   Encoder
}

// NewEncoderCell creates a cell. A nil factory makes the cell unavailable
// on first use.
func NewEncoderCell(factory EncoderFactory, log logger.Logger) *EncoderCell {
	if log == nil {
		log = logger.Discard()
	}
	return &EncoderCell{factory: factory, log: log}
}

// Get returns the encoder, initializing it on the first call.
func (c *EncoderCell) Get(ctx context.Context) (Encoder, bool) {
	c.once.Do(func() { c.init(ctx) })

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enc, c.state == StateAvailable
}

// State reports the current state without triggering initialization.
func (c *EncoderCell) State() EncoderState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *EncoderCell) init(parent context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), initTimeout)
	defer cancel()
	enc, err := buildEncoder(ctx, c.factory)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateUnavailable
		metrics.UpdateEncoderState(metrics.EncoderUnavailable)
		c.log.Warn(ctx, "semantic search disabled, using keyword matching", logger.Error(err))
		return
	}
	c.enc = enc
	c.state = StateAvailable
	metrics.UpdateEncoderState(metrics.EncoderAvailable)
	c.log.Info(ctx, "semantic search enabled")
}

func buildEncoder(ctx context.Context, factory EncoderFactory) (enc Encoder, err error) {
	if factory == nil {
		return nil, ErrEncoderUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			enc, err = nil, fmt.Errorf("%w: %v", ErrEncoderPanic, r)
		}
	}()
	enc, err = factory(ctx)
	if err == nil && enc == nil {
		err = ErrEncoderUnavailable
	}
	return enc, err
}
