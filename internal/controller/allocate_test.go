package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateWeightedProportional(t *testing.T) {
	samples := []Sample{
		{Lane: "84", Count: 0},
		{Lane: "82", Count: 30},
		{Lane: "81", Count: 50},
		{Lane: "83", Count: 10},
	}

	timings := Allocate(samples, 140, 10, 80)
	require.Len(t, timings, 4)

	// Effective weights 50/30/10/1, total 91, floored shares of 140
	// are 76/46/15/1; the last is lifted to the 10s floor.
	assert.Equal(t, []LaneTiming{
		{Lane: "81", GreenSeconds: 76},
		{Lane: "82", GreenSeconds: 46},
		{Lane: "83", GreenSeconds: 15},
		{Lane: "84", GreenSeconds: 10},
	}, timings)
}

func TestAllocateAllZeroCounts(t *testing.T) {
	samples := []Sample{
		{Lane: "83", Count: 0},
		{Lane: "81", Count: 0},
		{Lane: "84", Count: 0},
		{Lane: "82", Count: 0},
	}

	timings := Allocate(samples, 140, 10, 80)
	require.Len(t, timings, 4)

	// Equal weights: equal shares, order by ascending lane ID.
	assert.Equal(t, []string{"81", "82", "83", "84"},
		[]string{timings[0].Lane, timings[1].Lane, timings[2].Lane, timings[3].Lane})
	for _, tm := range timings {
		assert.Equal(t, 35, tm.GreenSeconds)
	}
}

func TestAllocateClampsToCeiling(t *testing.T) {
	samples := []Sample{
		{Lane: "81", Count: 1000},
		{Lane: "82", Count: 1},
	}

	timings := Allocate(samples, 140, 10, 80)
	require.Len(t, timings, 2)
	assert.Equal(t, 80, timings[0].GreenSeconds)
	assert.Equal(t, 10, timings[1].GreenSeconds)
}

func TestAllocateBoundsAlwaysHold(t *testing.T) {
	counts := [][]int{
		{0, 0, 0, 0},
		{1, 2, 3, 4},
		{500, 0, 0, 0},
		{97, 13, 41, 7},
	}
	for _, set := range counts {
		samples := make([]Sample, len(set))
		for i, c := range set {
			samples[i] = Sample{Lane: string(rune('a' + i)), Count: c}
		}
		for _, tm := range Allocate(samples, 140, 10, 80) {
			assert.GreaterOrEqual(t, tm.GreenSeconds, 10)
			assert.LessOrEqual(t, tm.GreenSeconds, 80)
		}
	}
}

func TestAllocateDeterministicAndTieBroken(t *testing.T) {
	samples := []Sample{
		{Lane: "84", Count: 20},
		{Lane: "81", Count: 20},
		{Lane: "83", Count: 5},
		{Lane: "82", Count: 20},
	}

	first := Allocate(samples, 140, 10, 80)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Allocate(samples, 140, 10, 80))
	}

	// Ties resolved by ascending lane ID.
	assert.Equal(t, "81", first[0].Lane)
	assert.Equal(t, "82", first[1].Lane)
	assert.Equal(t, "84", first[2].Lane)
	assert.Equal(t, "83", first[3].Lane)
}

func TestAllocateDoesNotMutateInput(t *testing.T) {
	samples := []Sample{
		{Lane: "82", Count: 1},
		{Lane: "81", Count: 9},
	}
	Allocate(samples, 140, 10, 80)
	assert.Equal(t, "82", samples[0].Lane)
	assert.Equal(t, "81", samples[1].Lane)
}
