package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/sky-flux/fsrs"
	"github.com/sky-flux/fsrs/config"
)

// parseRatings parses a comma separated list of ratings in fsrs.ParseRating
// syntax ("good", "Good" or "3").
func parseRatings(s string) ([]fsrs.Rating, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []fsrs.Rating
	for i, tok := range strings.Split(s, ",") {
		r, err := fsrs.ParseRating(tok)
		if err != nil {
			return nil, fmt.Errorf("ratings[%d]: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// parseElapsed parses a comma separated list of elapsed times.
// "0" means a review at the same instant; other entries use
// config.ParseDurationField syntax ("10m", "3d").
func parseElapsed(s string) ([]time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []time.Duration
	for i, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "0" {
			out = append(out, 0)
			continue
		}
		d, err := config.ParseDurationField(fmt.Sprintf("elapsed[%d]", i), tok)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// formatInterval prints whole-day intervals as "12d" and anything else as a
// time.Duration.
func formatInterval(d time.Duration) string {
	if d >= fsrs.Day && d%fsrs.Day == 0 {
		return fmt.Sprintf("%dd", d/fsrs.Day)
	}
	return d.String()
}
