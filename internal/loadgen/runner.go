package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/eventrank/pkg/logger"
)

const directoryPermission = 0o750

// Run executes a complete load run and returns its statistics. Analyses
// that disagree with the generated category are reported, not fatal.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()
	log.Info(ctx, "starting load run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.NumRequests),
		logger.Int("workers", cfg.Workers))

	c := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	if status, err := c.get(ctx, "/healthz", nil); err != nil || status != http.StatusOK {
		return stats, fmt.Errorf("service health check failed: status %d: %v", status, err)
	}

	reqs := Generate(ctx, cfg.NumRequests, cfg.Users)
	stats.Generated = len(reqs)

	submit(ctx, c, cfg, reqs, stats)

	if err := awaitAnalyses(ctx, c, cfg, reqs, stats); err != nil {
		return stats, fmt.Errorf("waiting for analyses: %w", err)
	}
	if err := checkTrending(ctx, c, stats); err != nil {
		return stats, err
	}

	if cfg.OutputFile != "" {
		if err := saveRequests(cfg.OutputFile, reqs); err != nil {
			log.Warn(ctx, "failed to save requests", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Int("analyzed", stats.Analyzed),
		logger.Int("mismatched", stats.Mismatched),
		logger.Duration("duration", stats.Duration))
	return stats, nil
}

func saveRequests(path string, reqs []Request) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(reqs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
