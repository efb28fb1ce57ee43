package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/internal/domain/types"
	"github.com/okian/eventrank/pkg/metrics"
)

// eventSnapshot is an immutable, date-ordered copy of the event table.
// Readers load it without taking the store lock.
type eventSnapshot struct {
	events []model.EventRecord
}

// MemoryStore is an in-memory Store. Event writes republish a sorted
// snapshot; requests are kept in insertion order under a RWMutex.
type MemoryStore struct {
	mu       sync.RWMutex
	byID     map[string]model.EventRecord
	seq      map[string]int // insertion order, tie-breaker for equal dates
	nextSeq  int
	requests map[string]types.StoredRequest
	order    []string

	snapshot atomic.Pointer[eventSnapshot]

	metricsUpdateInterval time.Duration
	wg                    sync.WaitGroup
	stopChan              chan struct{}
	closeOnce             sync.Once
}

// NewMemoryStore constructs a store and starts its metrics updater, which
// stops when ctx is done or Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:                  make(map[string]model.EventRecord),
		seq:                   make(map[string]int),
		requests:              make(map[string]types.StoredRequest),
		metricsUpdateInterval: 5 * time.Second,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snapshot.Store(&eventSnapshot{})
	s.startMetricsUpdater(ctx)
	return s
}

// Close stops the background metrics updater. It is safe to call more than
// once and from several goroutines.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

func (s *MemoryStore) AddEvent(_ context.Context, ev model.EventRecord) error {
	if ev.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seq[ev.ID]; !ok {
		s.seq[ev.ID] = s.nextSeq
		s.nextSeq++
	}
	s.byID[ev.ID] = ev
	s.publishSnapshotLocked()
	return nil
}

// publishSnapshotLocked rebuilds the event snapshot. Caller holds s.mu.
func (s *MemoryStore) publishSnapshotLocked() {
	events := make([]model.EventRecord, 0, len(s.byID))
	for _, ev := range s.byID {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return s.seq[events[i].ID] < s.seq[events[j].ID]
	})
	s.snapshot.Store(&eventSnapshot{events: events})
}

func (s *MemoryStore) Events(_ context.Context) []model.EventRecord {
	snap := s.snapshot.Load()
	out := make([]model.EventRecord, len(snap.events))
	copy(out, snap.events)
	return out
}

func (s *MemoryStore) UpcomingEvents(_ context.Context, today string) []model.EventRecord {
	snap := s.snapshot.Load()
	i := sort.Search(len(snap.events), func(i int) bool {
		return snap.events[i].Date >= today
	})
	out := make([]model.EventRecord, len(snap.events)-i)
	copy(out, snap.events[i:])
	return out
}

func (s *MemoryStore) SaveRequest(_ context.Context, req types.StoredRequest) error {
	if req.ID == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[req.ID]; !ok {
		s.order = append(s.order, req.ID)
	}
	s.requests[req.ID] = req
	return nil
}

func (s *MemoryStore) Request(_ context.Context, id string) (types.StoredRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return types.StoredRequest{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return req, nil
}

func (s *MemoryStore) UserHistory(_ context.Context, userID string) []model.CategoryRequest {
	return s.history(func(r types.StoredRequest) bool { return r.UserID == userID })
}

func (s *MemoryStore) RequestsSince(_ context.Context, since time.Time) []model.CategoryRequest {
	return s.history(func(r types.StoredRequest) bool { return !r.CreatedAt.Before(since) })
}

// history returns analyzed requests accepted by keep, in insertion order.
func (s *MemoryStore) history(keep func(types.StoredRequest) bool) []model.CategoryRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.CategoryRequest
	for _, id := range s.order {
		req := s.requests[id]
		if !keep(req) {
			continue
		}
		if row, ok := req.CategoryRequest(); ok {
			out = append(out, row)
		}
	}
	return out
}

// TallyRequests counts requests by status and analyzed requests by category.
func (s *MemoryStore) TallyRequests(_ context.Context) types.RequestTally {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := types.RequestTally{
		ByStatus:   make(map[types.RequestStatus]int),
		ByCategory: make(map[string]int),
	}
	for _, req := range s.requests {
		t.ByStatus[req.Status]++
		if row, ok := req.CategoryRequest(); ok {
			t.ByCategory[row.Category]++
		}
	}
	return t
}

func (s *MemoryStore) Count(_ context.Context) (events, requests int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), len(s.requests)
}

// startMetricsUpdater periodically publishes the store size gauges.
func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics(ctx)
			}
		}
	}()
}

func (s *MemoryStore) updateMetrics(ctx context.Context) {
	events, requests := s.Count(ctx)
	metrics.UpdateStoreSize(events, requests)
}
