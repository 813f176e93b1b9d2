package signals

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/AI-Gajendra/traffic-backend/internal/config"
)

type lanePins struct {
	red    rpio.Pin
	yellow rpio.Pin
	green  rpio.Pin
}

// GPIO drives BCM-numbered pins on a Raspberry Pi. Requires access to
// /dev/gpiomem (or root for /dev/mem).
type GPIO struct {
	order []string
	pins  map[string]lanePins
}

var _ Driver = (*GPIO)(nil)

func NewGPIO(lanes []config.Lane) (*GPIO, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	g := &GPIO{
		pins: make(map[string]lanePins, len(lanes)),
	}
	for _, lane := range lanes {
		p := lanePins{
			red:    rpio.Pin(lane.RedPin),
			yellow: rpio.Pin(lane.YellowPin),
			green:  rpio.Pin(lane.GreenPin),
		}
		for _, pin := range []rpio.Pin{p.red, p.yellow, p.green} {
			pin.Output()
			pin.Low()
		}
		g.order = append(g.order, lane.ID)
		g.pins[lane.ID] = p
	}
	logger.With(zap.Int("lanes", len(lanes))).Info("GPIO initialized, all outputs low")
	return g, nil
}

func (g *GPIO) SetLights(lane string, red, yellow, green bool) error {
	p, ok := g.pins[lane]
	if !ok {
		return fmt.Errorf("unknown lane %q", lane)
	}
	write(p.red, red)
	write(p.yellow, yellow)
	write(p.green, green)
	return nil
}

func (g *GPIO) AllRedExcept(lane string) error {
	var errs error
	for _, id := range g.order {
		if id == lane {
			continue
		}
		errs = multierr.Append(errs, g.SetLights(id, true, false, false))
	}
	return errs
}

func (g *GPIO) AllOff() error {
	var errs error
	for _, id := range g.order {
		errs = multierr.Append(errs, g.SetLights(id, false, false, false))
	}
	return errs
}

// Close forces every output off and releases the GPIO chip.
func (g *GPIO) Close() error {
	err := g.AllOff()
	return multierr.Append(err, rpio.Close())
}

func write(pin rpio.Pin, on bool) {
	if on {
		pin.High()
	} else {
		pin.Low()
	}
}
