package controller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AI-Gajendra/traffic-backend/internal/signals"
)

// automaticProgram alternates an evaluation phase (sample every lane,
// allocate green times) with an execution phase (serve the lanes in
// allocation order). A sampler failure degrades that lane to an empty
// count rather than aborting the evaluation.
type automaticProgram struct {
	driver  signals.Driver
	sampler Sampler
	lanes   []Lane

	yellow time.Duration
	settle time.Duration

	budget   int
	minGreen int
	maxGreen int
}

func (p *automaticProgram) run(ctx context.Context) error {
	for {
		samples, err := p.evaluate(ctx)
		if err != nil {
			return err
		}

		timings := Allocate(samples, p.budget, p.minGreen, p.maxGreen)
		for _, t := range timings {
			logger.With(
				zap.String("lane", t.Lane),
				zap.Int("greenSeconds", t.GreenSeconds)).
				Info("automatic: allocated green time")
		}

		for _, t := range timings {
			if err := ctx.Err(); err != nil {
				return err
			}
			green := time.Duration(t.GreenSeconds) * time.Second
			if err := serveLane(ctx, p.driver, t.Lane, green, p.yellow); err != nil {
				return err
			}
		}

		logger.With(zap.Stringer("settle", p.settle)).Info("automatic: pass complete")
		if err := wait(ctx, p.settle); err != nil {
			return err
		}
	}
}

// evaluate samples every lane once. Each Sample call blocks for one
// sampling window; cancellation is only observed between lanes.
func (p *automaticProgram) evaluate(ctx context.Context) ([]Sample, error) {
	logger.Info("automatic: evaluating traffic density")
	samples := make([]Sample, 0, len(p.lanes))
	for _, lane := range p.lanes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		count, err := p.sampler.Sample(lane.ID)
		if err != nil {
			logger.With(zap.Error(err), zap.String("lane", lane.ID)).
				Warn("automatic: sampling failed, assuming empty lane")
			count = 0
		}
		samples = append(samples, Sample{Lane: lane.ID, Count: count})
	}
	return samples, ctx.Err()
}
