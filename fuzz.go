package fsrs

import "math"

// Source is the random source used for interval fuzzing.
// *math/rand.Rand and *math/rand/v2.Rand both satisfy it.
type Source interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
}

// minFuzzDays is the shortest interval that gets fuzzed.
const minFuzzDays = 2.5

// fuzzBands widen the fuzz window by ratio for every day of the interval
// that falls inside [from, to).
var fuzzBands = [...]struct{ from, to, ratio float64 }{
	{2.5, 7, 0.15},
	{7, 20, 0.10},
	{20, math.Inf(1), 0.05},
}

// fuzzDelta returns the half-width of the fuzz window, in days.
func fuzzDelta(days float64) float64 {
	var delta float64
	for _, b := range fuzzBands {
		if days <= b.from {
			break
		}
		delta += b.ratio * (min(days, b.to) - b.from)
	}
	return delta
}

// fuzzWindow returns the inclusive range of days a fuzzed interval is drawn
// from. The low end never drops below 2 days.
func fuzzWindow(days int) (lo, hi int) {
	ivl := float64(days)
	delta := fuzzDelta(ivl)
	lo = max(2, int(math.Round(ivl-delta)))
	hi = max(lo, int(math.Round(ivl+delta)))
	return lo, hi
}

// applyFuzz spreads review intervals so cards learned together do not keep
// falling due on the same day. The result stays within [1, maxIvl].
func applyFuzz(days, maxIvl int, src Source) int {
	if float64(days) < minFuzzDays {
		return days
	}
	lo, hi := fuzzWindow(days)
	n := min(lo+int(src.Float64()*float64(hi-lo+1)), hi)
	return min(max(n, 1), maxIvl)
}
