package fsrs

import (
	"fmt"
	"math"
)

// NumParameters is the length of a normalized parameter vector (FSRS-6).
const NumParameters = 21

// DefaultParameters are the FSRS-6 default parameter values
// from py-fsrs / fsrs4anki Wiki FSRS-6.
var DefaultParameters = [NumParameters]float64{
	0.212, 1.2931, 2.3065, 8.2956, // w[0..3]  initial stability S₀(G)
	6.4133, 0.8334, 3.0194, 0.001, // w[4..7]  difficulty params
	1.8722, 0.1666, 0.796, 1.4835, // w[8..11] recall stability params
	0.0614, 0.2629, 1.6483, 0.6014, // w[12..15] forget stability params
	1.8729, 0.5425, 0.0912, 0.0658, // w[16..19] easy/short-term params
	0.1542, // w[20] decay exponent (v6 trainable)
}

// LowerBounds defines the minimum trained value for each parameter.
var LowerBounds = [NumParameters]float64{
	0.001, 0.001, 0.001, 0.001,
	1.0, 0.001, 0.001, 0.001,
	0.0, 0.0, 0.001, 0.001,
	0.001, 0.001, 0.0, 0.0,
	1.0, 0.0, 0.0, 0.0,
	0.1,
}

// UpperBounds defines the maximum trained value for each parameter.
var UpperBounds = [NumParameters]float64{
	100.0, 100.0, 100.0, 100.0,
	10.0, 4.0, 4.0, 0.75,
	4.5, 0.8, 3.5, 5.0,
	0.25, 0.9, 4.0, 1.0,
	6.0, 2.0, 2.0, 0.8,
	0.8,
}

// Weights is the named form of a normalized parameter vector.
// Field comments give the position in the flat vector.
type Weights struct {
	InitialStability        [4]float64 // w[0..3], indexed by Rating-1
	InitialDifficulty       float64    // w[4]
	InitialDifficultyExp    float64    // w[5]
	DifficultyDelta         float64    // w[6]
	MeanReversion           float64    // w[7]
	RecallGrowth            float64    // w[8]
	RecallStabilityExp      float64    // w[9]
	RecallRetrievabilityExp float64    // w[10]
	ForgetScale             float64    // w[11]
	ForgetDifficultyExp     float64    // w[12]
	ForgetStabilityExp      float64    // w[13]
	ForgetRetrievabilityExp float64    // w[14]
	HardPenalty             float64    // w[15]
	EasyBonus               float64    // w[16]
	ShortTermRating         float64    // w[17]
	ShortTermOffset         float64    // w[18]
	ShortTermStabilityExp   float64    // w[19]
	Decay                   float64    // w[20], positive; the curve uses -Decay
}

// ParseWeights normalizes a flat parameter vector into Weights.
//
// 21 entries (FSRS-6) are used as is. 19 entries (FSRS-5) get w[19]=0 and
// w[20]=0.5 appended. 17 entries (FSRS-4.5) have w[4..6] converted to the
// FSRS-5 difficulty form and get 0, 0, 0, 0.5 appended. Any other length, or a
// NaN/Inf entry, returns ErrInvalidParameters.
func ParseWeights(p []float64) (Weights, error) {
	for i, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Weights{}, fmt.Errorf("%w: w[%d] = %v is not finite", ErrInvalidParameters, i, v)
		}
	}

	var a [NumParameters]float64
	switch len(p) {
	case 21:
		copy(a[:], p)
	case 19:
		copy(a[:], p)
		a[19], a[20] = 0.0, 0.5
	case 17:
		copy(a[:], p)
		a[4] = p[5]*2.0 + p[4]
		a[5] = math.Log(p[5]*3.0+1.0) / 3.0
		a[6] = p[6] + 0.5
		a[17], a[18], a[19], a[20] = 0.0, 0.0, 0.0, 0.5
	default:
		return Weights{}, fmt.Errorf("%w: got %d values, want 17, 19 or 21", ErrInvalidParameters, len(p))
	}
	return weightsFromArray(a), nil
}

func weightsFromArray(a [NumParameters]float64) Weights {
	return Weights{
		InitialStability:        [4]float64{a[0], a[1], a[2], a[3]},
		InitialDifficulty:       a[4],
		InitialDifficultyExp:    a[5],
		DifficultyDelta:         a[6],
		MeanReversion:           a[7],
		RecallGrowth:            a[8],
		RecallStabilityExp:      a[9],
		RecallRetrievabilityExp: a[10],
		ForgetScale:             a[11],
		ForgetDifficultyExp:     a[12],
		ForgetStabilityExp:      a[13],
		ForgetRetrievabilityExp: a[14],
		HardPenalty:             a[15],
		EasyBonus:               a[16],
		ShortTermRating:         a[17],
		ShortTermOffset:         a[18],
		ShortTermStabilityExp:   a[19],
		Decay:                   a[20],
	}
}

// Array returns the weights as a flat 21-entry vector.
func (w Weights) Array() [NumParameters]float64 {
	return [NumParameters]float64{
		w.InitialStability[0], w.InitialStability[1], w.InitialStability[2], w.InitialStability[3],
		w.InitialDifficulty, w.InitialDifficultyExp, w.DifficultyDelta, w.MeanReversion,
		w.RecallGrowth, w.RecallStabilityExp, w.RecallRetrievabilityExp, w.ForgetScale,
		w.ForgetDifficultyExp, w.ForgetStabilityExp, w.ForgetRetrievabilityExp, w.HardPenalty,
		w.EasyBonus, w.ShortTermRating, w.ShortTermOffset, w.ShortTermStabilityExp,
		w.Decay,
	}
}

// Slice returns the weights as a freshly allocated flat vector.
func (w Weights) Slice() []float64 {
	a := w.Array()
	return a[:]
}

// Validate checks that every weight is within [LowerBounds, UpperBounds].
func (w Weights) Validate() error {
	a := w.Array()
	for i := range NumParameters {
		if a[i] < LowerBounds[i] || a[i] > UpperBounds[i] {
			return fmt.Errorf("%w: w[%d] = %f, bounds [%f, %f]",
				ErrParametersOutOfBounds, i, a[i], LowerBounds[i], UpperBounds[i])
		}
	}
	return nil
}

// ValidateParameters normalizes p and checks it against the trained bounds.
// A malformed vector returns ErrInvalidParameters; a well-formed one with a
// value outside the bounds returns ErrParametersOutOfBounds.
//
// The Scheduler does not require parameters to be within bounds.
func ValidateParameters(p []float64) error {
	w, err := ParseWeights(p)
	if err != nil {
		return err
	}
	return w.Validate()
}
