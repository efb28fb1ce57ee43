package worker_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/eventrank/internal/adapters/mq/queue"
	worker "github.com/okian/eventrank/internal/adapters/mq/worker"
	"github.com/okian/eventrank/internal/domain/assistant"
	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/internal/domain/types"
	logging "github.com/okian/eventrank/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logging.Init(logging.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

type mockQueue struct {
	jobs chan queue.Job
	once sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{jobs: make(chan queue.Job, 10)}
}

func (mq *mockQueue) Dequeue(context.Context) <-chan queue.Job { return mq.jobs }

func (mq *mockQueue) Close() error {
	mq.once.Do(func() { close(mq.jobs) })
	return nil
}

type mockRecorder struct {
	mu    sync.Mutex
	saved map[string]types.StoredRequest
	fail  map[string]error
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{saved: map[string]types.StoredRequest{}, fail: map[string]error{}}
}

func (r *mockRecorder) SaveRequest(_ context.Context, req types.StoredRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.fail[req.ID]; ok {
		return err
	}
	r.saved[req.ID] = req
	return nil
}

func (r *mockRecorder) get(id string) (types.StoredRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.saved[id]
	return req, ok
}

func (r *mockRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestInMemoryWorker(t *testing.T) {
	Convey("Given a worker over a queue of requests", t, func() {
		q := newMockQueue()
		rec := newMockRecorder()
		fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		w := worker.NewInMemoryWorker(q, assistant.New(), rec,
			worker.WithName("test-worker"),
			worker.WithLogger(logging.Discard()),
			worker.WithClock(func() time.Time { return fixed }),
		)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		Convey("When a technical request arrives", func() {
			q.jobs <- queue.Job{ID: "r1", UserID: "u1", Text: "Can we get a coding hackathon?", Status: types.StatusQueued}

			Convey("Then it is analyzed and recorded", func() {
				So(waitFor(func() bool { _, ok := rec.get("r1"); return ok }), ShouldBeTrue)
				req, _ := rec.get("r1")
				So(req.Status, ShouldEqual, types.StatusAnalyzed)
				So(req.Analysis, ShouldNotBeNil)
				So(req.Analysis.Category, ShouldEqual, model.CategoryTechnical)
				So(req.CreatedAt, ShouldEqual, fixed)
				So(w.Processed(), ShouldEqual, 1)
			})
		})

		Convey("When saving fails", func() {
			rec.fail["bad"] = errors.New("disk full")
			q.jobs <- queue.Job{ID: "bad", UserID: "u1", Text: "football match"}
			q.jobs <- queue.Job{ID: "good", UserID: "u1", Text: "football match"}

			Convey("Then the worker keeps going", func() {
				So(waitFor(func() bool { _, ok := rec.get("good"); return ok }), ShouldBeTrue)
				_, ok := rec.get("bad")
				So(ok, ShouldBeFalse)
				So(w.Processed(), ShouldEqual, 1)
			})
		})

		Convey("When the worker is shut down", func() {
			err := w.Shutdown(context.Background())

			Convey("Then it stops without error and a second shutdown is safe", func() {
				So(err, ShouldBeNil)
				So(w.Shutdown(context.Background()), ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a pool of workers", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		rec := newMockRecorder()
		p := worker.NewPool(4, q, assistant.New(), rec, worker.WithLogger(logging.Discard()))
		ctx := context.Background()
		p.Start(ctx)

		So(p.Size(), ShouldEqual, 4)

		Convey("When many requests are enqueued and the pool shuts down", func() {
			for i := 0; i < 50; i++ {
				So(q.Enqueue(ctx, queue.Job{ID: fmt.Sprintf("r%d", i), UserID: "u1", Text: "dance night"}), ShouldBeTrue)
			}
			So(waitFor(func() bool { return rec.count() == 50 }), ShouldBeTrue)
			err := p.Shutdown(ctx)

			Convey("Then every request is recorded once", func() {
				So(err, ShouldBeNil)
				So(p.Processed(), ShouldEqual, 50)
				So(q.IsClosed(), ShouldBeTrue)
			})
		})
	})
}
