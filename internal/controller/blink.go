package controller

import (
	"context"
	"time"

	"github.com/AI-Gajendra/traffic-backend/internal/signals"
)

// blinkProgram is the caution mode: every lane's yellow flashes on and
// off together. Red and green are never asserted.
type blinkProgram struct {
	driver   signals.Driver
	lanes    []Lane
	interval time.Duration
}

func (p *blinkProgram) run(ctx context.Context) error {
	for {
		if err := p.setAll(true); err != nil {
			return err
		}
		if err := wait(ctx, p.interval); err != nil {
			return err
		}

		if err := p.setAll(false); err != nil {
			return err
		}
		if err := wait(ctx, p.interval); err != nil {
			return err
		}
	}
}

func (p *blinkProgram) setAll(yellow bool) error {
	for _, lane := range p.lanes {
		if err := p.driver.SetLights(lane.ID, false, yellow, false); err != nil {
			return err
		}
	}
	return nil
}
