package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

// Config holds every runtime setting of the controller daemon. All
// values come from the environment; the lane set itself is loaded
// separately (see LoadLanes) because it is structured data rather than
// a scalar.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":5000"`
	DriverType string `env:"DRIVER_TYPE" envDefault:"GPIO"`
	LaneFile   string `env:"LANE_FILE" envDefault:""`

	// InitialMode, when set, is requested at startup so the
	// intersection does not stay dark until the first command arrives.
	InitialMode string `env:"INITIAL_MODE" envDefault:""`

	YellowDuration time.Duration `env:"YELLOW_DURATION" envDefault:"3s"`
	BlinkInterval  time.Duration `env:"BLINK_INTERVAL" envDefault:"2s"`
	SettleInterval time.Duration `env:"SETTLE_INTERVAL" envDefault:"5s"`
	SampleWindow   time.Duration `env:"SAMPLE_WINDOW" envDefault:"5s"`
	ShutdownGrace  time.Duration `env:"SHUTDOWN_GRACE" envDefault:"10s"`

	CycleBudgetSeconds int `env:"CYCLE_BUDGET_SECONDS" envDefault:"140"`
	MinGreenSeconds    int `env:"MIN_GREEN_SECONDS" envDefault:"10"`
	MaxGreenSeconds    int `env:"MAX_GREEN_SECONDS" envDefault:"80"`

	// DetectCommand is the shell command launched per lane to count
	// vehicles; every occurrence of {url} is replaced with the lane's
	// stream URL before execution.
	DetectCommand string `env:"DETECT_COMMAND" envDefault:""`
}

func FromEnv() (Config, error) {
	c := Config{}
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.MinGreenSeconds <= 0 {
		return fmt.Errorf("MIN_GREEN_SECONDS must be positive, got %d", c.MinGreenSeconds)
	}
	if c.MaxGreenSeconds < c.MinGreenSeconds {
		return fmt.Errorf("MAX_GREEN_SECONDS %d is below MIN_GREEN_SECONDS %d",
			c.MaxGreenSeconds, c.MinGreenSeconds)
	}
	if c.CycleBudgetSeconds <= 0 {
		return fmt.Errorf("CYCLE_BUDGET_SECONDS must be positive, got %d", c.CycleBudgetSeconds)
	}
	if c.YellowDuration <= 0 || c.BlinkInterval <= 0 || c.SampleWindow <= 0 {
		return fmt.Errorf("phase durations must be positive")
	}
	return nil
}
