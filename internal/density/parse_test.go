package density

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVehicleLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		count int
		ok    bool
	}{
		{
			name:  "all classes",
			line:  "car: 12 bicycle: 1 motorcycle: 3 bus: 1 truck: 2",
			count: 19,
			ok:    true,
		},
		{
			name:  "zero detections",
			line:  "car: 0 bicycle: 0 motorcycle: 0 bus: 0 truck: 0",
			count: 0,
			ok:    true,
		},
		{
			name:  "tally embedded in pipeline noise",
			line:  "[frame 4411] car: 7 bicycle: 0 motorcycle: 0 bus: 2 truck: 0 (fps 24.8)",
			count: 9,
			ok:    true,
		},
		{
			name: "unrelated line",
			line: "Opening stream rtsp://192.168.29.81 ...",
		},
		{
			name: "incomplete tally",
			line: "car: 4 bicycle: 1",
		},
		{
			name: "empty",
			line: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, ok := ParseVehicleLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.count, count)
		})
	}
}
