package fsrs

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// seqSource replays a fixed sequence of draws.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestFuzzDelta(t *testing.T) {
	tests := []struct {
		interval float64
		want     float64
	}{
		{2.0, 0},
		// [2.5, 7) partial: 0.15 * 0.5
		{3.0, 0.075},
		// [2.5, 7) full + [7, 20) partial: 0.675 + 0.3
		{10.0, 0.975},
		// all three bands: 0.675 + 1.3 + 1.5
		{50.0, 3.475},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, fuzzDelta(tt.interval), epsilon, "fuzzDelta(%v)", tt.interval)
	}
}

func TestApplyFuzzSmallIntervalUnchanged(t *testing.T) {
	src := &seqSource{vals: []float64{0.99}}
	assert.Equal(t, 1, applyFuzz(1, 36500, src))
	assert.Equal(t, 2, applyFuzz(2, 36500, src))
	assert.Zero(t, src.i, "no draw below 2.5 days")
}

func TestApplyFuzzBandEdges(t *testing.T) {
	// interval=10, delta=0.975 → [round(9.025), round(10.975)] = [9, 11]
	assert.Equal(t, 9, applyFuzz(10, 36500, &seqSource{vals: []float64{0}}))
	assert.Equal(t, 10, applyFuzz(10, 36500, &seqSource{vals: []float64{0.5}}))
	assert.Equal(t, 11, applyFuzz(10, 36500, &seqSource{vals: []float64{0.999999}}))
}

func TestApplyFuzzWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	seen := map[int]bool{}
	for range 200 {
		got := applyFuzz(10, 36500, rng)
		assert.GreaterOrEqual(t, got, 9)
		assert.LessOrEqual(t, got, 11)
		seen[got] = true
	}
	assert.Len(t, seen, 3, "every day in the band is reachable")
}

func TestApplyFuzzMaxIvlClamp(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	// interval=50, delta=3.475 → [47, 53], capped at 48.
	for range 100 {
		got := applyFuzz(50, 48, rng)
		assert.GreaterOrEqual(t, got, 47)
		assert.LessOrEqual(t, got, 48)
	}
}

func TestApplyFuzzNarrowBand(t *testing.T) {
	// interval=3, delta=0.075 → [3, 3]
	assert.Equal(t, 3, applyFuzz(3, 36500, &seqSource{vals: []float64{0, 0.999}}))
}

func TestApplyFuzzReproducible(t *testing.T) {
	rng1 := rand.New(rand.NewSource(123))
	rng2 := rand.New(rand.NewSource(123))
	for i := range 20 {
		assert.Equal(t, applyFuzz(15, 36500, rng1), applyFuzz(15, 36500, rng2), "iteration %d", i)
	}
}

func TestApplyFuzzNeverExceedsMaxIvl(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for range 200 {
		got := applyFuzz(8, 8, rng)
		assert.LessOrEqual(t, got, 8)
		assert.GreaterOrEqual(t, got, 1)
	}
}

func TestFuzzWindow(t *testing.T) {
	tests := []struct {
		days   int
		lo, hi int
	}{
		{3, 3, 3},
		{4, 4, 4},
		{10, 9, 11},
		{50, 47, 53},
		{365, 346, 384},
	}
	for _, tt := range tests {
		lo, hi := fuzzWindow(tt.days)
		assert.Equal(t, tt.lo, lo, "lo(%d)", tt.days)
		assert.Equal(t, tt.hi, hi, "hi(%d)", tt.days)
	}
}
