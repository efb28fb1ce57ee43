package service

import (
	"time"

	"github.com/okian/eventrank/internal/domain/recommend"
	"github.com/okian/eventrank/internal/domain/search"
	"github.com/okian/eventrank/internal/domain/success"
	"github.com/okian/eventrank/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of request-analysis workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the request queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many request ids are remembered for idempotency.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithTrendingDays sets the default trailing window of the trending report.
func WithTrendingDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.trendingDays = days
		}
	}
}

// WithBatchConcurrency bounds the parallelism of batch success prediction.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source shared by every date-dependent scorer.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSearchOptions passes options to the search engine.
func WithSearchOptions(opts ...search.Option) Option {
	return func(s *Service) {
		s.searchOpts = append(s.searchOpts, opts...)
	}
}

// WithRecommendOptions passes options to the recommender.
func WithRecommendOptions(opts ...recommend.Option) Option {
	return func(s *Service) {
		s.recommendOpts = append(s.recommendOpts, opts...)
	}
}

// WithSuccessOptions passes options to the success predictor.
func WithSuccessOptions(opts ...success.Option) Option {
	return func(s *Service) {
		s.successOpts = append(s.successOpts, opts...)
	}
}
