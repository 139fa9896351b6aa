// Package config loads scheduler settings from YAML or JSON files.
//
// Every field is optional; omitted fields keep the values of
// fsrs.DefaultSchedulerConfig. Unknown fields and trailing data are rejected.
//
//	parameters: [0.212, 1.2931, ...]   # 17, 19 or 21 entries
//	desired_retention: 0.9
//	learning_steps: ["1m", "10m"]      # [] disables learning steps
//	relearning_steps: ["10m"]
//	maximum_interval: 36500            # days
//	enable_fuzzing: true
//	seed: 42                           # fixes the fuzz RNG
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/sky-flux/fsrs"
)

// File is the decoded form of a scheduler file.
// Nil fields were not present in the file.
type File struct {
	Parameters       []float64 `json:"parameters,omitempty"`
	DesiredRetention *float64  `json:"desired_retention,omitempty"`
	LearningSteps    *[]string `json:"learning_steps,omitempty"`
	RelearningSteps  *[]string `json:"relearning_steps,omitempty"`
	MaximumInterval  *int      `json:"maximum_interval,omitempty"`
	EnableFuzzing    *bool     `json:"enable_fuzzing,omitempty"`
	Seed             *int64    `json:"seed,omitempty"`
}

// Load reads and parses the scheduler file at path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, b)
}

// Parse decodes a scheduler file. The format is chosen from name's
// extension: .yaml and .yml are YAML, anything else is JSON.
func Parse(name string, data []byte) (*File, error) {
	jb, err := coerceToJSONBytes(name, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var f File
	if len(bytes.TrimSpace(jb)) == 0 {
		return &f, nil
	}

	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	// reject trailing tokens (e.g. concatenated JSON)
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("%s: invalid config: trailing data", name)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &f, nil
}

// SchedulerConfig overlays the file on fsrs.DefaultSchedulerConfig.
// Values are not validated here; fsrs.NewScheduler does that.
func (f *File) SchedulerConfig() (fsrs.SchedulerConfig, error) {
	cfg := fsrs.DefaultSchedulerConfig()
	if f.Parameters != nil {
		cfg.Parameters = f.Parameters
	}
	if f.DesiredRetention != nil {
		cfg.DesiredRetention = *f.DesiredRetention
	}
	if f.LearningSteps != nil {
		steps, err := ParseDurationList("learning_steps", *f.LearningSteps)
		if err != nil {
			return cfg, err
		}
		cfg.LearningSteps = steps
	}
	if f.RelearningSteps != nil {
		steps, err := ParseDurationList("relearning_steps", *f.RelearningSteps)
		if err != nil {
			return cfg, err
		}
		cfg.RelearningSteps = steps
	}
	if f.MaximumInterval != nil {
		cfg.MaximumInterval = *f.MaximumInterval
	}
	if f.EnableFuzzing != nil {
		cfg.EnableFuzzing = *f.EnableFuzzing
	}
	return cfg, nil
}

// NewScheduler builds a scheduler from the file, logging through logger.
// Parameters outside the trained bounds are accepted with a warning.
func (f *File) NewScheduler(logger zerolog.Logger) (*fsrs.Scheduler, error) {
	cfg, err := f.SchedulerConfig()
	if err != nil {
		return nil, err
	}

	if err := fsrs.ValidateParameters(cfg.Parameters); errors.Is(err, fsrs.ErrParametersOutOfBounds) {
		logger.Warn().Err(err).Msg("parameters outside trained bounds")
	}

	opts := []fsrs.Option{fsrs.WithLogger(logger)}
	if f.Seed != nil {
		opts = append(opts, fsrs.WithSeed(*f.Seed))
	}
	return fsrs.NewScheduler(cfg, opts...)
}
