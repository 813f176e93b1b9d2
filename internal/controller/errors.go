package controller

import "errors"

var (
	// ErrAlreadyRunning is returned when the requested mode is the one
	// currently active. No outputs are touched.
	ErrAlreadyRunning = errors.New("mode already running")

	// ErrInvalidMode is returned for a mode no program exists for.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrStuckShutdown is returned when the outgoing program fails to
	// stop within the shutdown grace. Outputs are forced off as a last
	// resort and the new program is refused.
	ErrStuckShutdown = errors.New("program did not stop within grace period")
)
