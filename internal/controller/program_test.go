package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlinkNeverAssertsRedOrGreen(t *testing.T) {
	driver := newRecordingDriver("81", "82")
	p := &blinkProgram{
		driver:   driver,
		lanes:    []Lane{{ID: "81"}, {ID: "82"}},
		interval: 5 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.ErrorIs(t, p.run(ctx), context.Canceled)
	}()

	time.Sleep(40 * time.Millisecond)
	cancel()
	<-done

	calls := driver.snapshot()
	require.NotEmpty(t, calls)
	sawOn, sawOff := false, false
	for _, c := range calls {
		assert.False(t, c.red, "blink asserted red on lane %s", c.lane)
		assert.False(t, c.green, "blink asserted green on lane %s", c.lane)
		if c.yellow {
			sawOn = true
		} else {
			sawOff = true
		}
	}
	assert.True(t, sawOn, "yellow was never on")
	assert.True(t, sawOff, "yellow was never off")
}

func TestFixedVisitsLanesInConfiguredOrder(t *testing.T) {
	driver := newRecordingDriver("83", "81", "82")
	p := &fixedProgram{
		driver: driver,
		lanes: []Lane{
			{ID: "83", Green: time.Millisecond},
			{ID: "81", Green: time.Millisecond},
			{ID: "82", Green: time.Millisecond},
		},
		yellow: time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.ErrorIs(t, p.run(ctx), context.Canceled)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	var greens []string
	for _, c := range driver.snapshot() {
		if c.green {
			greens = append(greens, c.lane)
		}
	}
	require.GreaterOrEqual(t, len(greens), 3)
	assert.Equal(t, []string{"83", "81", "82"}, greens[:3])
	assertSingleGreen(t, driver.snapshot())
}

func TestAutomaticServesInAllocationOrder(t *testing.T) {
	driver := newRecordingDriver("81", "82", "83", "84")
	sampler := &stubSampler{counts: map[string]int{"81": 1, "82": 9, "83": 4, "84": 0}}
	p := &automaticProgram{
		driver:   driver,
		sampler:  sampler,
		lanes:    []Lane{{ID: "81"}, {ID: "82"}, {ID: "83"}, {ID: "84"}},
		yellow:   time.Millisecond,
		settle:   time.Hour, // stop after one full pass
		budget:   4,         // 1s per lane keeps the test short
		minGreen: 0,
		maxGreen: 1,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.ErrorIs(t, p.run(ctx), context.Canceled)
	}()

	// One pass: 4 lanes x (<=1s green + 1ms yellow), then the settle
	// wait, which cancel interrupts.
	require.Eventually(t, func() bool {
		var greens []string
		for _, c := range driver.snapshot() {
			if c.green {
				greens = append(greens, c.lane)
			}
		}
		return len(greens) == 4
	}, 10*time.Second, 10*time.Millisecond)
	cancel()
	<-done

	var greens []string
	for _, c := range driver.snapshot() {
		if c.green {
			greens = append(greens, c.lane)
		}
	}
	assert.Equal(t, []string{"82", "83", "81", "84"}, greens,
		"execution order must follow descending density")
	assertSingleGreen(t, driver.snapshot())
}

func TestAutomaticDegradesSamplerFailureToZero(t *testing.T) {
	driver := newRecordingDriver("81", "82")
	sampler := &stubSampler{err: assert.AnError}
	p := &automaticProgram{
		driver:   driver,
		sampler:  sampler,
		lanes:    []Lane{{ID: "81"}, {ID: "82"}},
		yellow:   time.Millisecond,
		settle:   time.Hour,
		budget:   2,
		minGreen: 0,
		maxGreen: 1,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.ErrorIs(t, p.run(ctx), context.Canceled)
	}()

	// Both lanes degrade to zero counts: the pass still serves both,
	// tie broken by lane ID.
	require.Eventually(t, func() bool {
		var greens []string
		for _, c := range driver.snapshot() {
			if c.green {
				greens = append(greens, c.lane)
			}
		}
		return len(greens) == 2
	}, 10*time.Second, 10*time.Millisecond)
	cancel()
	<-done

	var greens []string
	for _, c := range driver.snapshot() {
		if c.green {
			greens = append(greens, c.lane)
		}
	}
	assert.Equal(t, []string{"81", "82"}, greens)
}

func TestWaitReturnsEarlyOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := wait(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
