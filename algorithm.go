package fsrs

import "math"

const (
	minStability  = 0.001
	minDifficulty = 1.0
	maxDifficulty = 10.0
)

// curve is the power forgetting curve R(t) = (1 + factor·t/S)^decay.
// factor is chosen so that R(S) = 0.9 for every decay.
type curve struct {
	decay  float64
	factor float64
}

func newCurve(decayWeight float64) curve {
	decay := -decayWeight
	return curve{decay: decay, factor: math.Pow(0.9, 1/decay) - 1}
}

// retrievability is the recall probability after elapsedDays at stability.
func (c curve) retrievability(elapsedDays, stability float64) float64 {
	return math.Pow(1+c.factor*elapsedDays/stability, c.decay)
}

// nextInterval inverts the curve: the whole number of days after which
// recall falls to retention, within [1, maxIvl]. Clamping happens before the
// int conversion because the inversion diverges as retention approaches 0.
func (c curve) nextInterval(stability, retention float64, maxIvl int) int {
	ivl := stability / c.factor * (math.Pow(retention, 1/c.decay) - 1)
	if math.IsNaN(ivl) {
		return 1
	}
	return int(math.Min(float64(maxIvl), math.Max(1, math.Round(ivl))))
}

// algo evaluates the FSRS memory model for one set of weights.
type algo struct {
	curve
	w Weights
}

func newAlgo(w Weights) algo {
	return algo{curve: newCurve(w.Decay), w: w}
}

// initStability is the stability after the first review.
func (a *algo) initStability(r Rating) float64 {
	return clampS(a.w.InitialStability[r-1])
}

// initDifficulty is the difficulty after the first review. The unclamped
// value for Easy is the target of mean reversion in nextDifficulty.
func (a *algo) initDifficulty(r Rating, clamp bool) float64 {
	d := a.w.InitialDifficulty + 1 - math.Exp(a.w.InitialDifficultyExp*float64(r-1))
	if !clamp {
		return d
	}
	return clampD(d)
}

// shortTermStability updates stability for a review less than a day after
// the previous one. Good and Easy never lower it.
func (a *algo) shortTermStability(stability float64, r Rating) float64 {
	growth := math.Exp(a.w.ShortTermRating*(float64(r)-3+a.w.ShortTermOffset)) *
		math.Pow(stability, -a.w.ShortTermStabilityExp)
	if r >= Good {
		growth = math.Max(growth, 1)
	}
	return clampS(stability * growth)
}

// nextDifficulty moves d by the rating, damped as it nears 10, then pulls it
// toward the initial Easy difficulty by the mean reversion weight.
func (a *algo) nextDifficulty(d float64, r Rating) float64 {
	step := -a.w.DifficultyDelta * (float64(r) - 3)
	damped := d + step*(maxDifficulty-d)/(maxDifficulty-minDifficulty)
	target := a.initDifficulty(Easy, false)
	return clampD(a.w.MeanReversion*target + (1-a.w.MeanReversion)*damped)
}

// nextStability updates stability for a review a day or more after the
// previous one, given the retrievability r at review time.
func (a *algo) nextStability(d, s, r float64, rating Rating) float64 {
	if rating == Again {
		return clampS(a.nextForgetStability(d, s, r))
	}
	return clampS(a.nextRecallStability(d, s, r, rating))
}

// nextRecallStability grows stability after a successful recall. Growth is
// larger for easy items, low stability and low retrievability.
func (a *algo) nextRecallStability(d, s, r float64, rating Rating) float64 {
	bonus := 1.0
	switch rating {
	case Hard:
		bonus = a.w.HardPenalty
	case Easy:
		bonus = a.w.EasyBonus
	}
	growth := math.Exp(a.w.RecallGrowth) *
		(11 - d) *
		math.Pow(s, -a.w.RecallStabilityExp) *
		math.Expm1((1-r)*a.w.RecallRetrievabilityExp)
	return s * (1 + growth*bonus)
}

// nextForgetStability is the stability after a lapse. It never exceeds the
// prior stability or the short-term lapse bound.
func (a *algo) nextForgetStability(d, s, r float64) float64 {
	lapsed := a.w.ForgetScale *
		math.Pow(d, -a.w.ForgetDifficultyExp) *
		(math.Pow(s+1, a.w.ForgetStabilityExp) - 1) *
		math.Exp((1-r)*a.w.ForgetRetrievabilityExp)
	shortTerm := s / math.Exp(a.w.ShortTermRating*a.w.ShortTermOffset)
	return min(lapsed, shortTerm, s)
}

// clampS floors stability at minStability; NaN becomes the floor.
func clampS(s float64) float64 {
	if math.IsNaN(s) {
		return minStability
	}
	return math.Max(s, minStability)
}

// clampD keeps difficulty in [1, 10]; NaN becomes 10.
func clampD(d float64) float64 {
	if math.IsNaN(d) {
		return maxDifficulty
	}
	return math.Min(math.Max(d, minDifficulty), maxDifficulty)
}
