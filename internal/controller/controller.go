// Package controller owns the single active signal-timing program and
// serializes transitions between them. The safety-critical property is
// join-before-launch: a new program never starts until the old one has
// fully stopped and every output has been forced off, so no two
// programs can ever drive the intersection at the same time.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AI-Gajendra/traffic-backend/internal/logging"
	"github.com/AI-Gajendra/traffic-backend/internal/signals"
)

var logger = logging.New("controller")

// Sampler measures the vehicle count on one lane. A call blocks for a
// bounded window; "no detections" is 0, not an error.
type Sampler interface {
	Sample(lane string) (int, error)
}

// Lane is a lane as the controller sees it: an identifier plus the
// green time it receives in fixed mode. Hardware pins and camera
// streams stay behind the Driver and Sampler.
type Lane struct {
	ID    string
	Green time.Duration
}

type Config struct {
	Lanes []Lane

	Yellow time.Duration
	Blink  time.Duration
	Settle time.Duration

	// ShutdownGrace bounds how long a mode switch waits for the
	// outgoing program to stop before escalating.
	ShutdownGrace time.Duration

	CycleBudgetSeconds int
	MinGreenSeconds    int
	MaxGreenSeconds    int
}

// program is one cooperative signal-timing loop. run returns ctx.Err()
// on cancellation or the first hardware error.
type program interface {
	run(ctx context.Context) error
}

type Controller struct {
	cfg     Config
	driver  signals.Driver
	sampler Sampler

	mu     sync.Mutex
	mode   Mode
	cancel context.CancelFunc
	done   chan struct{}
}

func New(cfg Config, driver signals.Driver, sampler Sampler) *Controller {
	return &Controller{
		cfg:     cfg,
		driver:  driver,
		sampler: sampler,
		mode:    ModeNone,
	}
}

// CurrentMode returns the mode of the active program, or ModeNone.
func (c *Controller) CurrentMode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// RequestMode stops the running program, waits for it to terminate,
// and launches the program for mode on its own goroutine. It returns
// once the new program is running. Callers may block for up to one
// sampling window if an automatic evaluation is mid-flight, plus the
// shutdown grace in the worst case.
func (c *Controller) RequestMode(mode Mode) error {
	if !mode.runnable() {
		return fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if mode == c.mode {
		return fmt.Errorf("%w: %s", ErrAlreadyRunning, mode)
	}
	if err := c.stopLocked(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	prog := c.newProgram(mode)

	c.mode = mode
	c.cancel = cancel
	c.done = done
	go c.runProgram(ctx, prog, mode, done)
	return nil
}

// Stop forces the rest state: no program, all outputs off.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopLocked()
}

// stopLocked cancels the active program and joins its goroutine before
// forcing every output off. Join-before-launch lives here: callers
// hold the transition lock, so nothing can start until this returns.
func (c *Controller) stopLocked() error {
	if c.done != nil {
		c.cancel()

		grace := time.NewTimer(c.cfg.ShutdownGrace)
		defer grace.Stop()
		select {
		case <-c.done:
			c.cancel = nil
			c.done = nil
		case <-grace.C:
			// Last-resort safety: the old goroutine may still be
			// alive, so outputs go dark and no new program starts.
			if err := c.driver.AllOff(); err != nil {
				logger.With(zap.Error(err)).Error("failed to force outputs off")
			}
			return fmt.Errorf("%w: %s after %s", ErrStuckShutdown, c.mode, c.cfg.ShutdownGrace)
		}
	}

	if c.mode != ModeNone {
		logger.Infof("%s stopped, outputs off", c.mode)
		c.mode = ModeNone
		if err := c.driver.AllOff(); err != nil {
			return fmt.Errorf("force outputs off: %w", err)
		}
	}
	return nil
}

func (c *Controller) runProgram(ctx context.Context, prog program, mode Mode, done chan struct{}) {
	logger.Infof("%s program started", mode)
	err := prog.run(ctx)
	close(done)

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.With(zap.Error(err)).Errorf("%s program failed", mode)
		c.programFailed(done)
		return
	}
	logger.Infof("%s program finished", mode)
}

// programFailed tears the controller down to the rest state after an
// abnormal program exit, unless a newer program already took over.
func (c *Controller) programFailed(done chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done != done {
		return
	}
	c.cancel()
	c.cancel = nil
	c.done = nil
	c.mode = ModeNone
	if err := c.driver.AllOff(); err != nil {
		logger.With(zap.Error(err)).Error("failed to force outputs off after program failure")
	}
}

func (c *Controller) newProgram(mode Mode) program {
	switch mode {
	case ModeAutomatic:
		return &automaticProgram{
			driver:   c.driver,
			sampler:  c.sampler,
			lanes:    c.cfg.Lanes,
			yellow:   c.cfg.Yellow,
			settle:   c.cfg.Settle,
			budget:   c.cfg.CycleBudgetSeconds,
			minGreen: c.cfg.MinGreenSeconds,
			maxGreen: c.cfg.MaxGreenSeconds,
		}
	case ModeFixed:
		return &fixedProgram{
			driver: c.driver,
			lanes:  c.cfg.Lanes,
			yellow: c.cfg.Yellow,
		}
	case ModeBlink:
		return &blinkProgram{
			driver:   c.driver,
			lanes:    c.cfg.Lanes,
			interval: c.cfg.Blink,
		}
	default:
		panic(fmt.Sprintf("no program for mode %s", mode))
	}
}
