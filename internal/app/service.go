// Package service wires the scorers, the request intake pipeline and the
// store into the operations the HTTP API and the CLI expose.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/eventrank/internal/adapters/mq/queue"
	workerpool "github.com/okian/eventrank/internal/adapters/mq/worker"
	"github.com/okian/eventrank/internal/adapters/repository"
	"github.com/okian/eventrank/internal/domain/assistant"
	"github.com/okian/eventrank/internal/domain/dedupe"
	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/internal/domain/quality"
	"github.com/okian/eventrank/internal/domain/recommend"
	"github.com/okian/eventrank/internal/domain/search"
	"github.com/okian/eventrank/internal/domain/success"
	"github.com/okian/eventrank/internal/domain/types"
	"github.com/okian/eventrank/pkg/logger"
	"github.com/okian/eventrank/pkg/metrics"
)

const dateLayout = "2006-01-02"

// Service implements the API dependencies of the ranking engine.
type Service struct {
	mu sync.RWMutex

	// Scorers are stateless and usable before Start.
	analyzer    *assistant.Analyzer
	quality     *quality.Scorer
	search      *search.Engine
	recommender *recommend.Recommender
	predictor   *success.Predictor

	// Intake pipeline and store, built by Start.
	store   *repository.MemoryStore
	deduper dedupe.Deduper
	queue   eventqueue.Queue
	pool    *workerpool.Pool

	workerCount      int
	queueSize        int
	dedupeSize       int
	trendingDays     int
	batchConcurrency int

	searchOpts    []search.Option
	recommendOpts []recommend.Option
	successOpts   []success.Option

	now     func() time.Time
	started bool
	logger  logger.Logger
}

// New constructs a Service. The scorers are ready immediately; the store and
// the intake pipeline are created by Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      runtime.NumCPU(),
		queueSize:        10000,
		dedupeSize:       dedupe.DefaultMaxSize,
		trendingDays:     30,
		batchConcurrency: runtime.NumCPU(),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.analyzer = assistant.New()
	s.quality = quality.New()
	s.search = search.NewEngine(append([]search.Option{search.WithLogger(s.logger.Named("search"))}, s.searchOpts...)...)
	s.recommender = recommend.New(append([]recommend.Option{recommend.WithClock(s.now)}, s.recommendOpts...)...)
	s.predictor = success.New(append([]success.Option{success.WithClock(s.now)}, s.successOpts...)...)
	return s
}

// Start creates the store and starts the request workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting ranking service...")

	s.store = repository.NewMemoryStore(ctx,
		repository.WithMetricsUpdateInterval(metrics.RefreshInterval()),
	)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.analyzer, s.store,
		workerpool.WithClock(s.now),
		workerpool.WithLogger(s.logger.Named("worker")),
	)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "ranking service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop drains the request queue and closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping ranking service...")

	if s.pool != nil {
		if err := s.pool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "worker pool shutdown failed", logger.Error(err))
		}
	}
	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "ranking service stopped")
}

// running returns the store when the service has been started.
func (s *Service) running() (*repository.MemoryStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

func (s *Service) today() string {
	return s.now().Format(dateLayout)
}

// AnalyzeRequest classifies a request text synchronously.
func (s *Service) AnalyzeRequest(ctx context.Context, text string) model.RequestAnalysis {
	a := s.analyzer.ClassifyAndRespond(text)
	metrics.RecordRequestAnalyzed(string(a.Category))
	s.logger.Debug(ctx, "request analyzed",
		logger.String("category", string(a.Category)),
		logger.String("sentiment", string(a.Sentiment)),
	)
	return a
}

// Submit queues a request for asynchronous analysis. A request id already
// seen is acknowledged as a duplicate without being queued again.
func (s *Service) Submit(ctx context.Context, req types.SubmitRequest) (types.SubmitResponse, error) {
	store, err := s.running()
	if err != nil {
		return types.SubmitResponse{}, err
	}
	id := req.RequestID
	if id == "" {
		id = uuid.NewString()
	}

	if s.deduper.SeenAndRecord(ctx, id) {
		metrics.RecordRequestDuplicate()
		status := types.StatusQueued
		if prev, err := store.Request(ctx, id); err == nil {
			status = prev.Status
		}
		return types.SubmitResponse{RequestID: id, Status: status, Duplicate: true}, nil
	}

	job := types.StoredRequest{
		ID:        id,
		UserID:    req.UserID,
		Text:      req.Text,
		Status:    types.StatusQueued,
		CreatedAt: s.now(),
	}
	if err := store.SaveRequest(ctx, job); err != nil {
		s.deduper.Unrecord(ctx, id)
		return types.SubmitResponse{}, fmt.Errorf("save request: %w", err)
	}
	if !s.queue.Enqueue(ctx, job) {
		s.deduper.Unrecord(ctx, id)
		job.Status = types.StatusRejected
		_ = store.SaveRequest(ctx, job)
		return types.SubmitResponse{}, ErrBackpressure
	}
	return types.SubmitResponse{RequestID: id, Status: types.StatusQueued}, nil
}

// Request returns a submitted request by id.
func (s *Service) Request(ctx context.Context, id string) (types.StoredRequest, error) {
	store, err := s.running()
	if err != nil {
		return types.StoredRequest{}, err
	}
	return store.Request(ctx, id)
}

// ScoreDescription grades an event description.
func (s *Service) ScoreDescription(_ context.Context, req types.DescriptionRequest) model.QualityReport {
	report := s.quality.ScoreDescription(quality.Input{
		Description: req.Description,
		Title:       req.Title,
		Category:    req.Category,
		Date:        req.Date,
		Venue:       req.Venue,
	})
	if report.Length > 0 {
		metrics.RecordDescriptionGrade(string(report.Grade))
	}
	return report
}

// Search ranks the stored events against a query.
func (s *Service) Search(ctx context.Context, req types.SearchRequest) ([]model.ScoredEvent, error) {
	store, err := s.running()
	if err != nil {
		return nil, err
	}
	return s.search.Search(ctx, search.Query{
		Text:     req.Query,
		Limit:    req.Limit,
		Category: req.Category,
		DateFrom: req.DateFrom,
	}, store.Events(ctx)), nil
}

// EncoderState reports whether semantic search is in use.
func (s *Service) EncoderState() search.EncoderState {
	return s.search.EncoderState()
}

// Recommend ranks upcoming events for a user.
func (s *Service) Recommend(ctx context.Context, userID string, limit int) ([]model.Recommendation, error) {
	store, err := s.running()
	if err != nil {
		return nil, err
	}
	recs := s.recommender.Recommend(userID, limit, store.UserHistory(ctx, userID), store.UpcomingEvents(ctx, s.today()))
	metrics.RecordRecommendations(len(recs))
	return recs, nil
}

// PredictPopularity estimates interest in a single event.
func (s *Service) PredictPopularity(_ context.Context, ev model.EventRecord) model.PopularityReport {
	metrics.RecordPopularityEstimate()
	return s.recommender.PredictPopularity(ev)
}

// Trending reports category demand over the trailing days. days <= 0 uses
// the configured default.
func (s *Service) Trending(ctx context.Context, days int) ([]model.TrendEntry, error) {
	store, err := s.running()
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = s.trendingDays
	}
	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	return s.recommender.TrendingCategories(days, store.RequestsSince(ctx, since), store.UpcomingEvents(ctx, s.today())), nil
}

// AddEvent loads an event row into the store. An id is generated when the
// row has none.
func (s *Service) AddEvent(ctx context.Context, ev model.EventRecord) (model.EventRecord, error) {
	store, err := s.running()
	if err != nil {
		return model.EventRecord{}, err
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if err := store.AddEvent(ctx, ev); err != nil {
		return model.EventRecord{}, fmt.Errorf("add event: %w", err)
	}
	return ev, nil
}

// Stats reports intake, store and encoder state.
func (s *Service) Stats(ctx context.Context) types.ServiceStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := types.ServiceStats{
		Started:        s.started,
		EncoderState:   s.search.EncoderState().String(),
		Workers:        s.workerCount,
		QueueCapacity:  s.queueSize,
		DedupeCapacity: s.dedupeSize,
	}
	if !s.started {
		return stats
	}
	stats.QueueLength = s.queue.Len(ctx)
	stats.DedupeEntries = int(s.deduper.Size())
	stats.Processed = s.pool.Processed()
	stats.Events, stats.Requests = s.store.Count(ctx)

	tally := s.store.TallyRequests(ctx)
	stats.RequestsByStatus = tally.ByStatus
	stats.RequestsByCategory = tally.ByCategory
	stats.EventsByCategory = make(map[string]int)
	for _, ev := range s.store.Events(ctx) {
		stats.EventsByCategory[ev.Category]++
	}

	metrics.UpdateStoreSize(stats.Events, stats.Requests)
	return stats
}
