package fsrs

import "errors"

// Sentinel errors for the fsrs package.
// Use errors.Is to check: errors.Is(err, fsrs.ErrInvalidRating)
var (
	ErrInvalidRating         = errors.New("fsrs: invalid rating")
	ErrInvalidState          = errors.New("fsrs: invalid card state")
	ErrInvalidStep           = errors.New("fsrs: negative card step")
	ErrInvalidParameters     = errors.New("fsrs: invalid parameters")
	ErrParametersOutOfBounds = errors.New("fsrs: parameters out of bounds")
	ErrInvalidRetention      = errors.New("fsrs: desired retention out of range (0, 1]")
	ErrInvalidInterval       = errors.New("fsrs: invalid maximum interval")
	ErrInvalidSteps          = errors.New("fsrs: invalid step duration")
	ErrCardIDMismatch        = errors.New("fsrs: card ID mismatch in review log")
)
