// Package openai implements the semantic search encoder on top of the
// OpenAI embeddings API.
package openai

import (
	"context"
	"fmt"
	neturl "net/url"
	"strings"
	"time"

	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	"golang.org/x/time/rate"

	"github.com/okian/eventrank/internal/domain/search"
	"github.com/okian/eventrank/pkg/logger"
)

const (
	defaultModel   = "text-embedding-3-small"
	defaultTimeout = 10 * time.Second
	defaultRPM     = 600
	defaultBurst   = 10
	probeText      = "campus event"
)

// Config holds the embeddings endpoint settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
	RPM        int
	Burst      int
	Timeout    time.Duration
}

// Cache stores embeddings keyed by model and text.
type Cache interface {
	Get(ctx context.Context, model, text string) ([]float64, bool)
	Set(ctx context.Context, model, text string, vec []float64) error
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithCache sets the embedding cache.
func WithCache(c Cache) Option {
	return func(e *Encoder) {
		e.cache = c
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Encoder) {
		if l != nil {
			e.log = l
		}
	}
}

// Encoder calls the embeddings API, throttled by a token bucket.
type Encoder struct {
	client     openaiclient.Client
	model      string
	dimensions int
	timeout    time.Duration
	limiter    *rate.Limiter
	cache      Cache
	log        logger.Logger
}

var _ search.Encoder = (*Encoder)(nil)

// New builds an encoder. It fails with ErrMissingAPIKey when cfg has no key.
func New(cfg Config, opts ...Option) (*Encoder, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RPM <= 0 {
		cfg.RPM = defaultRPM
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}

	ropts := []openaioption.RequestOption{
		openaioption.WithAPIKey(cfg.APIKey),
		openaioption.WithMaxRetries(0),
	}
	if base := normalizeBaseURL(cfg.BaseURL); base != "" {
		ropts = append(ropts, openaioption.WithBaseURL(base))
	}

	e := &Encoder{
		client:     openaiclient.NewClient(ropts...),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		timeout:    cfg.Timeout,
		limiter:    rate.NewLimiter(rate.Limit(float64(cfg.RPM)/60.0), cfg.Burst),
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Factory returns a search.EncoderFactory that builds an encoder and probes
// the endpoint once, so an unreachable or misconfigured API is detected at
// initialization rather than on every search.
func Factory(cfg Config, opts ...Option) search.EncoderFactory {
	return func(ctx context.Context) (search.Encoder, error) {
		e, err := New(cfg, opts...)
		if err != nil {
			return nil, err
		}
		if _, err := e.Encode(ctx, []string{probeText}); err != nil {
			return nil, fmt.Errorf("probe embeddings endpoint: %w", err)
		}
		return e, nil
	}
}

// Encode returns one embedding per text, in order. Cached texts are not sent.
func (e *Encoder) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	var missing []int
	for i, t := range texts {
		if e.cache != nil {
			if vec, ok := e.cache.Get(ctx, e.model, t); ok {
				out[i] = vec
				continue
			}
		}
		missing = append(missing, i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	batch := make([]string, len(missing))
	for j, i := range missing {
		batch[j] = texts[i]
	}
	vecs, err := e.embed(ctx, batch)
	if err != nil {
		return nil, err
	}

	for j, i := range missing {
		out[i] = vecs[j]
		if e.cache != nil {
			if err := e.cache.Set(ctx, e.model, texts[i], vecs[j]); err != nil {
				e.log.Warn(ctx, "embedding cache write failed", logger.Error(err))
			}
		}
	}
	return out, nil
}

func (e *Encoder) embed(ctx context.Context, batch []string) ([][]float64, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embeddings rate limit: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	params := openaiclient.EmbeddingNewParams{
		Input:          openaiclient.EmbeddingNewParamsInputUnion{OfArrayOfStrings: batch},
		Model:          openaiclient.EmbeddingModel(e.model),
		EncodingFormat: openaiclient.EmbeddingNewParamsEncodingFormatFloat,
	}
	if e.dimensions > 0 {
		params.Dimensions = openaiclient.Int(int64(e.dimensions))
	}

	start := time.Now()
	resp, err := e.client.Embeddings.New(callCtx, params)
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(batch) {
		return nil, fmt.Errorf("%w: want %d embeddings, got %d", ErrBadResponse, len(batch), len(resp.Data))
	}

	vecs := make([][]float64, len(batch))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(batch) || vecs[d.Index] != nil {
			return nil, fmt.Errorf("%w: bad index %d", ErrBadResponse, d.Index)
		}
		vecs[d.Index] = d.Embedding
	}

	e.log.Debug(ctx, "embeddings created",
		logger.Int("count", len(batch)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return vecs, nil
}

// normalizeBaseURL makes sure an OpenAI-compatible endpoint ends with /v1/.
func normalizeBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/") + "/"
	}
	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path + "/"
	return parsed.String()
}
