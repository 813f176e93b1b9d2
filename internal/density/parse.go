package density

import (
	"regexp"
	"strconv"
)

// The detection pipeline prints a running tally on a single line, e.g.
// "car: 12 bicycle: 0 motorcycle: 3 bus: 1 truck: 2". The sample for a
// lane is the sum of all classes on the last such line seen during the
// sampling window.
var vehicleLine = regexp.MustCompile(
	`car:\s*(\d+)\s+bicycle:\s*(\d+)\s+motorcycle:\s*(\d+)\s+bus:\s*(\d+)\s+truck:\s*(\d+)`)

// ParseVehicleLine extracts the total vehicle count from one line of
// detector output. The second return is false for lines that carry no
// tally.
func ParseVehicleLine(line string) (int, bool) {
	m := vehicleLine.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	total := 0
	for _, g := range m[1:] {
		n, err := strconv.Atoi(g)
		if err != nil {
			return 0, false
		}
		total += n
	}
	return total, true
}
