// Package signals actuates the red/yellow/green outputs of each lane.
//
// Only one goroutine ever writes to a Driver at a time: either the
// currently active cycle program, or the mode controller while it is
// stopping one. Implementations therefore do not need to be safe for
// concurrent use.
package signals

import "github.com/AI-Gajendra/traffic-backend/internal/logging"

var logger = logging.New("signals")

type Driver interface {
	// SetLights drives the three outputs of one lane.
	SetLights(lane string, red, yellow, green bool) error

	// AllRedExcept turns every lane red except the named one, which is
	// left untouched. An empty lane name turns every lane red.
	AllRedExcept(lane string) error

	// AllOff turns every output of every lane off.
	AllOff() error
}
