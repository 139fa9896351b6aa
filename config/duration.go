package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sky-flux/fsrs"
)

// ParseDurationField parses a step duration. Besides time.ParseDuration
// syntax it accepts a "d" suffix for days ("1d", "1.5d").
// path names the field in error messages.
func ParseDurationField(path, raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%s: empty duration", path)
	}

	var d time.Duration
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.ParseFloat(days, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: invalid duration %q: %w", path, raw, err)
		}
		d = time.Duration(n * float64(fsrs.Day))
	} else {
		var err error
		if d, err = time.ParseDuration(s); err != nil {
			return 0, fmt.Errorf("%s: invalid duration %q: %w", path, raw, err)
		}
	}

	if d <= 0 {
		return 0, fmt.Errorf("%s: duration must be > 0", path)
	}
	return d, nil
}

// ParseDurationList parses every entry of raw with ParseDurationField.
func ParseDurationList(path string, raw []string) ([]time.Duration, error) {
	out := make([]time.Duration, 0, len(raw))
	for i, r := range raw {
		d, err := ParseDurationField(fmt.Sprintf("%s[%d]", path, i), r)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
