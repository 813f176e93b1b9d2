package signals

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/AI-Gajendra/traffic-backend/internal/config"
)

// Noop logs every actuation instead of touching hardware. Useful for
// running the controller on a machine without GPIO.
type Noop struct {
	order []string
	known map[string]bool
}

var _ Driver = (*Noop)(nil)

func NewNoop(lanes []config.Lane) *Noop {
	n := &Noop{known: make(map[string]bool, len(lanes))}
	for _, lane := range lanes {
		n.order = append(n.order, lane.ID)
		n.known[lane.ID] = true
	}
	return n
}

func (n *Noop) SetLights(lane string, red, yellow, green bool) error {
	if !n.known[lane] {
		return fmt.Errorf("unknown lane %q", lane)
	}
	logger.With(
		zap.String("lane", lane),
		zap.Bool("red", red),
		zap.Bool("yellow", yellow),
		zap.Bool("green", green)).
		Debug("set lights")
	return nil
}

func (n *Noop) AllRedExcept(lane string) error {
	for _, id := range n.order {
		if id == lane {
			continue
		}
		if err := n.SetLights(id, true, false, false); err != nil {
			return err
		}
	}
	return nil
}

func (n *Noop) AllOff() error {
	for _, id := range n.order {
		if err := n.SetLights(id, false, false, false); err != nil {
			return err
		}
	}
	return nil
}
