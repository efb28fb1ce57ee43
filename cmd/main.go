package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/okian/eventrank/internal/adapters/encoder/cache"
	"github.com/okian/eventrank/internal/adapters/encoder/openai"
	"github.com/okian/eventrank/internal/adapters/http/api"
	"github.com/okian/eventrank/internal/adapters/http/swagger"
	app "github.com/okian/eventrank/internal/app"
	"github.com/okian/eventrank/internal/config"
	"github.com/okian/eventrank/internal/domain/recommend"
	"github.com/okian/eventrank/internal/domain/search"
	"github.com/okian/eventrank/internal/domain/success"
	"github.com/okian/eventrank/pkg/logger"
	"github.com/okian/eventrank/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger format comes from the config, so it is not available yet.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Configure(
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithRefreshInterval(cfg.MetricsRefresh()),
	)

	svc, cleanup := buildService(ctx, cfg, log)
	defer cleanup()

	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// buildService turns the configuration into service options. The returned
// cleanup releases the embedding cache connection.
func buildService(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, func()) {
	cleanup := func() {}

	searchOpts := []search.Option{search.WithLogger(log.Named("search"))}
	if cfg.LexicalTrueUnion {
		searchOpts = append(searchOpts, search.WithDenominator(search.DenominatorUnion))
	}
	if cfg.SemanticEnabled() {
		encOpts := []openai.Option{openai.WithLogger(log.Named("encoder"))}
		if cfg.RedisURL != "" {
			c, err := cache.Connect(ctx, cfg.RedisURL, cache.WithTTL(cfg.EmbeddingCacheTTL()))
			if err != nil {
				// Encoding still works uncached.
				log.Warn(ctx, "embedding cache unavailable", logger.Error(err))
			} else {
				encOpts = append(encOpts, openai.WithCache(c))
				cleanup = func() { _ = c.Close() }
			}
		}
		searchOpts = append(searchOpts, search.WithEncoderFactory(openai.Factory(openai.Config{
			APIKey:     cfg.EncoderAPIKey,
			BaseURL:    cfg.EncoderBaseURL,
			Model:      cfg.EncoderModel,
			Dimensions: cfg.EncoderDimensions,
			RPM:        cfg.EncoderRPM,
			Burst:      cfg.EncoderBurst,
			Timeout:    cfg.EncoderTimeout(),
		}, encOpts...)))
	}

	var recommendOpts []recommend.Option
	if len(cfg.PopularityWeights) > 0 {
		w := recommend.DefaultPopularityWeights()
		w.Categories = w.Categories.With(cfg.PopularityWeights)
		recommendOpts = append(recommendOpts, recommend.WithPopularityWeights(w))
	}

	successOpts := []success.Option{
		success.WithCategoryScores(cfg.CategoryScores),
		success.WithEventTypeScores(cfg.EventTypeScores),
		success.WithRegistrationBase(cfg.RegistrationBase),
	}

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithTrendingDays(cfg.TrendingDays),
		app.WithSearchOptions(searchOpts...),
		app.WithRecommendOptions(recommendOpts...),
		app.WithSuccessOptions(successOpts...),
	)
	return svc, cleanup
}

// newMux registers the API and documentation routes.
func newMux(ctx context.Context, cfg *config.Config, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)

	limits := api.DefaultLimits()
	limits.DefaultSearch = cfg.DefaultSearchLimit
	limits.MaxSearch = cfg.MaxSearchLimit
	limits.DefaultRecommend = cfg.DefaultRecommendLimit
	limits.MaxRecommend = cfg.MaxRecommendLimit
	api.NewServer(svc, svc, api.WithLimits(limits)).Register(ctx, mux)
	return mux
}

// startServiceMetricsUpdater refreshes service gauges until ctx is done.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(metrics.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(ctx, svc)
		}
	}
}

// updateServiceMetrics publishes the gauges derived from service stats.
func updateServiceMetrics(ctx context.Context, svc *app.Service) {
	stats := svc.Stats(ctx)
	if !stats.Started {
		return
	}
	metrics.UpdateQueueSize(stats.QueueLength)
	metrics.UpdateWorkerCount(stats.Workers)
}
