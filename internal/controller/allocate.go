package controller

import (
	"sort"

	"github.com/samber/lo"
)

// Sample is one lane's vehicle count over a single sampling window.
type Sample struct {
	Lane  string
	Count int
}

// LaneTiming is the green time granted to one lane for the next pass.
type LaneTiming struct {
	Lane         string
	GreenSeconds int
}

// Allocate converts density samples into a weighted-proportional
// green-time allocation, clamped to [minGreen, maxGreen]. The returned
// order (descending count, ties by ascending lane ID) is also the
// visitation order, so busier lanes are served earlier. Deterministic
// for a given multiset of counts.
func Allocate(samples []Sample, budgetSeconds, minGreen, maxGreen int) []LaneTiming {
	ordered := make([]Sample, len(samples))
	copy(ordered, samples)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Count != ordered[j].Count {
			return ordered[i].Count > ordered[j].Count
		}
		return ordered[i].Lane < ordered[j].Lane
	})

	// Every lane weighs at least 1, so an empty lane still gets its
	// floor share and the total can never be zero.
	total := lo.SumBy(ordered, func(s Sample) int { return weight(s.Count) })
	if total < 1 {
		total = 1
	}

	return lo.Map(ordered, func(s Sample, _ int) LaneTiming {
		raw := weight(s.Count) * budgetSeconds / total
		return LaneTiming{Lane: s.Lane, GreenSeconds: clamp(raw, minGreen, maxGreen)}
	})
}

func weight(count int) int {
	if count < 1 {
		return 1
	}
	return count
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
