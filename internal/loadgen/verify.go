package loadgen

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/internal/domain/types"
	"github.com/okian/eventrank/pkg/logger"
)

// awaitAnalyses polls GET /requests/{id} until every accepted request is
// analyzed or cfg.WaitFor elapses. It counts analyses whose category differs
// from the one the text was written for.
func awaitAnalyses(ctx context.Context, c *httpClient, cfg *Config, reqs []Request, stats *Stats) error {
	deadline := time.Now().Add(cfg.WaitFor)
	pending := make(map[int]struct{}, len(reqs))
	for i := range reqs {
		pending[i] = struct{}{}
	}

	for {
		for i := range pending {
			var stored types.StoredRequest
			status, err := c.get(ctx, "/requests/"+reqs[i].RequestID, &stored)
			if status == http.StatusNotFound {
				// Never stored: the submission itself failed.
				delete(pending, i)
				continue
			}
			if err != nil || status != http.StatusOK {
				continue
			}
			switch stored.Status {
			case types.StatusAnalyzed:
				delete(pending, i)
				stats.Analyzed++
				if stored.Analysis == nil || stored.Analysis.Category != reqs[i].Expected {
					stats.Mismatched++
				}
			case types.StatusRejected:
				delete(pending, i)
			}
		}
		if len(pending) == 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%d requests still pending after %s", len(pending), cfg.WaitFor)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.PollEvery):
		}
	}
}

// checkTrending confirms the trending report counts the analyzed requests.
func checkTrending(ctx context.Context, c *httpClient, stats *Stats) error {
	var entries []model.TrendEntry
	status, err := c.get(ctx, "/trending?days=1", &entries)
	if err != nil {
		return fmt.Errorf("trending: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("trending returned status %d", status)
	}
	for _, e := range entries {
		stats.TrendRequests += e.RequestCount
	}
	if stats.TrendRequests < stats.Analyzed {
		return fmt.Errorf("trending counts %d requests, %d were analyzed", stats.TrendRequests, stats.Analyzed)
	}
	logger.Get().Info(ctx, "trending report verified", logger.Int("requests", stats.TrendRequests))
	return nil
}
