package loadgen

import (
	"context"
	"net/http"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/okian/eventrank/internal/domain/types"
	"github.com/okian/eventrank/pkg/logger"
)

type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeDuplicate
	outcomeRejected
	outcomeFailed
)

// submit posts every request, then re-posts the first cfg.Duplicates of
// them with the same ids, and records the outcomes in stats.
func submit(ctx context.Context, c *httpClient, cfg *Config, reqs []Request, stats *Stats) {
	log := logger.Get()
	log.Info(ctx, "submitting requests", logger.Int("count", len(reqs)), logger.Int("workers", cfg.Workers))

	var accepted, duplicate, rejected, failed int64
	count := func(o outcome) {
		switch o {
		case outcomeAccepted:
			atomic.AddInt64(&accepted, 1)
		case outcomeDuplicate:
			atomic.AddInt64(&duplicate, 1)
		case outcomeRejected:
			atomic.AddInt64(&rejected, 1)
		default:
			atomic.AddInt64(&failed, 1)
		}
	}

	fanOut(ctx, c, cfg.Workers, reqs, count)
	if n := min(cfg.Duplicates, len(reqs)); n > 0 {
		// Re-submissions follow the originals.
		fanOut(ctx, c, cfg.Workers, reqs[:n], count)
	}

	stats.Accepted = int(accepted)
	stats.Duplicate = int(duplicate)
	stats.Rejected = int(rejected)
	stats.Failed = int(failed)
	log.Info(ctx, "submission completed",
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed))
}

func submitOne(ctx context.Context, c *httpClient, r Request) outcome {
	var ack types.SubmitResponse
	status, err := c.post(ctx, "/requests", r, &ack)
	if err != nil {
		return outcomeFailed
	}
	switch status {
	case http.StatusAccepted:
		return outcomeAccepted
	case http.StatusOK:
		if ack.Duplicate {
			return outcomeDuplicate
		}
		return outcomeAccepted
	case http.StatusTooManyRequests:
		return outcomeRejected
	default:
		return outcomeFailed
	}
}

func fanOut(ctx context.Context, c *httpClient, workers int, reqs []Request, count func(outcome)) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for _, r := range reqs {
		g.Go(func() error {
			count(submitOne(gctx, c, r))
			return nil
		})
	}
	_ = g.Wait()
}
