// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: json or text.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory request queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of request-analysis workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets how many request ids are remembered for idempotency.
	DedupeSize int `koanf:"dedupe_size"`

	// MetricsEnabled controls whether Prometheus metrics are exported.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsRefreshS is the gauge refresh period in seconds.
	MetricsRefreshS int `koanf:"metrics_refresh_s"`

	DefaultSearchLimit    int `koanf:"default_search_limit"`
	MaxSearchLimit        int `koanf:"max_search_limit"`
	DefaultRecommendLimit int `koanf:"default_recommend_limit"`
	MaxRecommendLimit     int `koanf:"max_recommend_limit"`

	// TrendingDays is the default trailing window of GET /trending.
	TrendingDays int `koanf:"trending_days"`

	// Encoder settings. The semantic path is disabled unless EncoderEnabled
	// is set and an API key is present.
	EncoderEnabled    bool   `koanf:"encoder_enabled"`
	EncoderAPIKey     string `koanf:"encoder_api_key"`
	EncoderBaseURL    string `koanf:"encoder_base_url"`
	EncoderModel      string `koanf:"encoder_model"`
	EncoderDimensions int    `koanf:"encoder_dimensions"`
	EncoderRPM        int    `koanf:"encoder_rpm"`
	EncoderBurst      int    `koanf:"encoder_burst"`
	EncoderTimeoutMS  int    `koanf:"encoder_timeout_ms"`

	// RedisURL enables the embedding cache when non-empty.
	RedisURL string `koanf:"redis_url"`

	// EmbeddingCacheTTLS is the embedding cache entry lifetime in seconds.
	EmbeddingCacheTTLS int `koanf:"embedding_cache_ttl_s"`

	// LexicalTrueUnion normalizes keyword overlap by the union of query and
	// event words instead of the query words.
	LexicalTrueUnion bool `koanf:"lexical_true_union"`

	// Weight-table overrides keyed by category or event type.
	CategoryScores    map[string]float64 `koanf:"category_scores"`
	EventTypeScores   map[string]float64 `koanf:"event_type_scores"`
	PopularityWeights map[string]float64 `koanf:"popularity_weights"`
	RegistrationBase  map[string]float64 `koanf:"registration_base"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "json",
		Addr:                  ":9080",
		QueueSize:             10_000,
		WorkerCount:           runtime.NumCPU(),
		DedupeSize:            50_000,
		MetricsEnabled:        true,
		MetricsRefreshS:       5,
		DefaultSearchLimit:    10,
		MaxSearchLimit:        100,
		DefaultRecommendLimit: 5,
		MaxRecommendLimit:     50,
		TrendingDays:          30,
		EncoderModel:          "text-embedding-3-small",
		EncoderRPM:            3000,
		EncoderBurst:          10,
		EncoderTimeoutMS:      10_000,
		EmbeddingCacheTTLS:    86_400,
	}
}

// EncoderTimeout returns the per-call encoder timeout.
func (c *Config) EncoderTimeout() time.Duration {
	return time.Duration(c.EncoderTimeoutMS) * time.Millisecond
}

// EmbeddingCacheTTL returns the embedding cache entry lifetime.
func (c *Config) EmbeddingCacheTTL() time.Duration {
	return time.Duration(c.EmbeddingCacheTTLS) * time.Second
}

// MetricsRefresh returns the gauge refresh period.
func (c *Config) MetricsRefresh() time.Duration {
	return time.Duration(c.MetricsRefreshS) * time.Second
}

// SemanticEnabled reports whether the embedding encoder should be wired.
func (c *Config) SemanticEnabled() bool {
	return c.EncoderEnabled && c.EncoderAPIKey != ""
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	limits := []struct {
		name string
		val  int
	}{
		{"default_search_limit", c.DefaultSearchLimit},
		{"max_search_limit", c.MaxSearchLimit},
		{"default_recommend_limit", c.DefaultRecommendLimit},
		{"max_recommend_limit", c.MaxRecommendLimit},
		{"trending_days", c.TrendingDays},
		{"metrics_refresh_s", c.MetricsRefreshS},
	}
	for _, l := range limits {
		if l.val <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, l.name)
		}
	}
	if c.DefaultSearchLimit > c.MaxSearchLimit {
		return fmt.Errorf("%w: default_search_limit exceeds max_search_limit", ErrInvalidConfig)
	}
	if c.DefaultRecommendLimit > c.MaxRecommendLimit {
		return fmt.Errorf("%w: default_recommend_limit exceeds max_recommend_limit", ErrInvalidConfig)
	}
	for name, table := range map[string]map[string]float64{
		"category_scores":    c.CategoryScores,
		"event_type_scores":  c.EventTypeScores,
		"popularity_weights": c.PopularityWeights,
	} {
		for key, w := range table {
			if w < 0 || w > 1 {
				return fmt.Errorf("%w: %s.%s must be in [0,1]", ErrInvalidConfig, name, key)
			}
		}
	}
	for key, n := range c.RegistrationBase {
		if n < 0 {
			return fmt.Errorf("%w: registration_base.%s must not be negative", ErrInvalidConfig, key)
		}
	}
	return nil
}
