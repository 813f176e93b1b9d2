package controller

import (
	"fmt"
	"strings"
)

// Mode identifies which signal-timing program is running. ModeNone is
// the rest state: no program, all outputs off.
type Mode int

const (
	ModeNone Mode = iota
	ModeAutomatic
	ModeFixed
	ModeBlink
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "None"
	case ModeAutomatic:
		return "Automatic"
	case ModeFixed:
		return "Fixed"
	case ModeBlink:
		return "Blink"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// runnable reports whether a program exists for the mode. ModeNone is
// reached through Stop, never requested.
func (m Mode) runnable() bool {
	switch m {
	case ModeAutomatic, ModeFixed, ModeBlink:
		return true
	default:
		return false
	}
}

// ParseMode maps a wire name to a Mode. The legacy names "manual" and
// "yellow" are accepted for the fixed and blink programs.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "automatic", "auto":
		return ModeAutomatic, nil
	case "fixed", "manual":
		return ModeFixed, nil
	case "blink", "yellow":
		return ModeBlink, nil
	default:
		return ModeNone, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}
