package fsrs

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// enum maps the values of a small integer enumeration to their names.
// Review logs exported by other FSRS tools store ratings and states as
// numbers, so every decoder also accepts the decimal value.
type enum[T ~int] struct {
	kind  string   // type name used for invalid values, e.g. "Rating(7)"
	names []string // indexed by value; "" marks an unused value
	err   error
}

func (e enum[T]) valid(v T) bool {
	return v >= 0 && int(v) < len(e.names) && e.names[v] != ""
}

func (e enum[T]) name(v T) string {
	if e.valid(v) {
		return e.names[v]
	}
	return fmt.Sprintf("%s(%d)", e.kind, int(v))
}

// parse accepts a name in any letter case or the decimal value.
func (e enum[T]) parse(s string) (T, error) {
	s = strings.TrimSpace(s)
	for i, n := range e.names {
		if n != "" && strings.EqualFold(n, s) {
			return T(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && e.valid(T(n)) {
		return T(n), nil
	}
	return 0, fmt.Errorf("%w: %q", e.err, s)
}

func (e enum[T]) marshalText(v T) ([]byte, error) {
	if !e.valid(v) {
		return nil, fmt.Errorf("%w: %d", e.err, int(v))
	}
	return []byte(e.names[v]), nil
}

func (e enum[T]) marshalJSON(v T) ([]byte, error) {
	text, err := e.marshalText(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// unmarshalJSON accepts a JSON string holding a name or number, or a bare
// JSON number.
func (e enum[T]) unmarshalJSON(data []byte) (T, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return 0, fmt.Errorf("%w: %s", e.err, data)
		}
		s = strconv.Itoa(n)
	}
	return e.parse(s)
}
