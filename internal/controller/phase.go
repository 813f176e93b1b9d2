package controller

import (
	"context"
	"time"

	"github.com/AI-Gajendra/traffic-backend/internal/signals"
)

// wait blocks for d or until ctx is canceled, whichever comes first.
// Cancellation wakes the wait immediately; programs never poll.
func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// serveLane runs one lane through Green -> Yellow -> Red. Every lane
// goes red first, so two lanes are never green at once.
func serveLane(ctx context.Context, d signals.Driver, lane string, green, yellow time.Duration) error {
	if err := d.AllRedExcept(""); err != nil {
		return err
	}
	if err := d.SetLights(lane, false, false, true); err != nil {
		return err
	}
	if err := wait(ctx, green); err != nil {
		return err
	}

	if err := d.SetLights(lane, false, true, false); err != nil {
		return err
	}
	if err := wait(ctx, yellow); err != nil {
		return err
	}

	return d.SetLights(lane, true, false, false)
}
