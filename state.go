package fsrs

import (
	"encoding"
	"fmt"

	json "github.com/goccy/go-json"
)

// State is the stage of a card in the learning cycle.
type State int

const (
	New        State = iota // never reviewed
	Learning                // on the learning steps
	Review                  // long-term reviews, intervals in days
	Relearning              // lapsed, on the relearning steps
)

var stateEnum = enum[State]{
	kind:  "State",
	names: []string{New: "New", Learning: "Learning", Review: "Review", Relearning: "Relearning"},
	err:   ErrInvalidState,
}

var (
	_ fmt.Stringer             = State(0)
	_ json.Marshaler           = State(0)
	_ json.Unmarshaler         = (*State)(nil)
	_ encoding.TextMarshaler   = State(0)
	_ encoding.TextUnmarshaler = (*State)(nil)
)

// IsValid reports whether s is one of the four card states.
func (s State) IsValid() bool { return stateEnum.valid(s) }

// String returns the state name, or "State(n)" for invalid values.
func (s State) String() string { return stateEnum.name(s) }

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return stateEnum.marshalText(s) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, err := stateEnum.parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON encodes the state as its name.
func (s State) MarshalJSON() ([]byte, error) { return stateEnum.marshalJSON(s) }

// UnmarshalJSON accepts a name or a number, quoted or not.
func (s *State) UnmarshalJSON(data []byte) error {
	v, err := stateEnum.unmarshalJSON(data)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
