package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/okian/eventrank/internal/domain/model"
	"github.com/okian/eventrank/internal/domain/quality"
	"github.com/okian/eventrank/pkg/metrics"
)

// PredictSuccess scores an event draft. The draft's description is graded
// first so the description sub-score reflects the rubric.
func (s *Service) PredictSuccess(_ context.Context, ev model.EventRecord) model.SuccessReport {
	report := s.quality.ScoreDescription(quality.Input{
		Description: ev.Description,
		Title:       ev.Title,
		Category:    ev.Category,
		Date:        ev.Date,
		Venue:       ev.Venue,
	})
	var q *model.QualityReport
	if report.Length > 0 {
		q = &report
	}
	res := s.predictor.PredictSuccess(ev, q)
	metrics.RecordSuccessPrediction(string(res.Level))
	return res
}

// PredictSuccessBatch scores many drafts concurrently. Results keep the
// order of drafts. It fails only when ctx is cancelled.
func (s *Service) PredictSuccessBatch(ctx context.Context, drafts []model.EventRecord) ([]model.SuccessReport, error) {
	out := make([]model.SuccessReport, len(drafts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i := range drafts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = s.PredictSuccess(gctx, drafts[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch success prediction: %w", err)
	}
	return out, nil
}
