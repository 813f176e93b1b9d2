package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lane describes one approach of the intersection: its identifier, the
// BCM pin numbers of its three outputs, the camera stream observed by
// the density sampler, and the green time it receives in fixed mode.
type Lane struct {
	ID           string `yaml:"id"`
	RedPin       int    `yaml:"red_pin"`
	YellowPin    int    `yaml:"yellow_pin"`
	GreenPin     int    `yaml:"green_pin"`
	StreamURL    string `yaml:"stream_url"`
	GreenSeconds int    `yaml:"green_seconds"`
}

type laneFile struct {
	Lanes []Lane `yaml:"lanes"`
}

// DefaultLanes is the four-approach installation the controller ships
// configured for.
func DefaultLanes() []Lane {
	return []Lane{
		{ID: "81", RedPin: 16, YellowPin: 20, GreenPin: 21, StreamURL: "rtsp://192.168.29.81", GreenSeconds: 45},
		{ID: "82", RedPin: 5, YellowPin: 6, GreenPin: 13, StreamURL: "rtsp://192.168.29.82", GreenSeconds: 45},
		{ID: "83", RedPin: 17, YellowPin: 27, GreenPin: 22, StreamURL: "rtsp://192.168.29.83", GreenSeconds: 25},
		{ID: "84", RedPin: 10, YellowPin: 9, GreenPin: 11, StreamURL: "rtsp://192.168.29.84", GreenSeconds: 25},
	}
}

// LoadLanes reads the lane set from a YAML file. An empty path yields
// DefaultLanes. The declared order is the fixed-mode visitation order.
func LoadLanes(path string) ([]Lane, error) {
	if path == "" {
		return DefaultLanes(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lane file: %w", err)
	}

	var f laneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse lane file %s: %w", path, err)
	}
	if err := ValidateLanes(f.Lanes); err != nil {
		return nil, fmt.Errorf("lane file %s: %w", path, err)
	}
	return f.Lanes, nil
}

func ValidateLanes(lanes []Lane) error {
	if len(lanes) == 0 {
		return fmt.Errorf("no lanes defined")
	}

	seenIDs := make(map[string]bool, len(lanes))
	seenPins := make(map[int]string, len(lanes)*3)
	for _, lane := range lanes {
		if lane.ID == "" {
			return fmt.Errorf("lane with empty id")
		}
		if seenIDs[lane.ID] {
			return fmt.Errorf("duplicate lane id %q", lane.ID)
		}
		seenIDs[lane.ID] = true

		if lane.GreenSeconds <= 0 {
			return fmt.Errorf("lane %s: green_seconds must be positive", lane.ID)
		}
		for _, pin := range []int{lane.RedPin, lane.YellowPin, lane.GreenPin} {
			if pin <= 0 {
				return fmt.Errorf("lane %s: pins must be positive BCM numbers", lane.ID)
			}
			if other, ok := seenPins[pin]; ok {
				return fmt.Errorf("lane %s: pin %d already used by lane %s", lane.ID, pin, other)
			}
			seenPins[pin] = lane.ID
		}
	}
	return nil
}
