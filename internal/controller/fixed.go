package controller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AI-Gajendra/traffic-backend/internal/signals"
)

// fixedProgram cycles the lanes in their configured order with their
// configured green times, forever.
type fixedProgram struct {
	driver signals.Driver
	lanes  []Lane
	yellow time.Duration
}

func (p *fixedProgram) run(ctx context.Context) error {
	for {
		for _, lane := range p.lanes {
			if err := ctx.Err(); err != nil {
				return err
			}
			logger.With(
				zap.String("lane", lane.ID),
				zap.Stringer("green", lane.Green)).
				Info("fixed: serving lane")
			if err := serveLane(ctx, p.driver, lane.ID, lane.Green, p.yellow); err != nil {
				return err
			}
		}
	}
}
