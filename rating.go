package fsrs

import (
	"encoding"
	"fmt"

	json "github.com/goccy/go-json"
)

// Rating is the learner's grade for one review.
type Rating int

const (
	Again Rating = iota + 1 // forgot
	Hard                    // recalled with serious difficulty
	Good                    // recalled after a hesitation
	Easy                    // recalled effortlessly
)

// Ratings lists every valid rating in ascending order.
var Ratings = [...]Rating{Again, Hard, Good, Easy}

var ratingEnum = enum[Rating]{
	kind:  "Rating",
	names: []string{Again: "Again", Hard: "Hard", Good: "Good", Easy: "Easy"},
	err:   ErrInvalidRating,
}

var (
	_ fmt.Stringer             = Rating(0)
	_ json.Marshaler           = Rating(0)
	_ json.Unmarshaler         = (*Rating)(nil)
	_ encoding.TextMarshaler   = Rating(0)
	_ encoding.TextUnmarshaler = (*Rating)(nil)
)

// IsValid reports whether r is Again, Hard, Good or Easy.
func (r Rating) IsValid() bool { return ratingEnum.valid(r) }

// String returns the rating name, or "Rating(n)" for invalid values.
func (r Rating) String() string { return ratingEnum.name(r) }

// ParseRating parses a rating name in any letter case ("good", "Good") or
// its number ("3").
func ParseRating(s string) (Rating, error) { return ratingEnum.parse(s) }

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) { return ratingEnum.marshalText(r) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	v, err := ratingEnum.parse(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// MarshalJSON encodes the rating as its name.
func (r Rating) MarshalJSON() ([]byte, error) { return ratingEnum.marshalJSON(r) }

// UnmarshalJSON accepts a name or a number, quoted or not.
func (r *Rating) UnmarshalJSON(data []byte) error {
	v, err := ratingEnum.unmarshalJSON(data)
	if err != nil {
		return err
	}
	*r = v
	return nil
}
