package fsrs

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// MaxIntervalDays is the largest maximum interval a time.Duration can hold.
const MaxIntervalDays = int(math.MaxInt64 / int64(Day))

// SchedulerConfig configures a Scheduler.
// Start from DefaultSchedulerConfig and override fields as needed.
type SchedulerConfig struct {
	Parameters       []float64       `json:"parameters"`        // 17, 19 or 21 values; nil → DefaultParameters
	DesiredRetention float64         `json:"desired_retention"` // in (0, 1]
	LearningSteps    []time.Duration `json:"learning_steps"`    // empty → no learning steps
	RelearningSteps  []time.Duration `json:"relearning_steps"`  // empty → no relearning steps
	MaximumInterval  int             `json:"maximum_interval"`  // days, in [1, MaxIntervalDays]
	EnableFuzzing    bool            `json:"enable_fuzzing"`
}

// DefaultSchedulerConfig returns the published FSRS-6 defaults:
// retention 0.9, learning steps [1m, 10m], relearning steps [10m],
// a 36500 day maximum interval and fuzzing enabled.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Parameters:       slices.Clone(DefaultParameters[:]),
		DesiredRetention: 0.9,
		LearningSteps:    []time.Duration{time.Minute, 10 * time.Minute},
		RelearningSteps:  []time.Duration{10 * time.Minute},
		MaximumInterval:  36500,
		EnableFuzzing:    true,
	}
}

// Scheduler schedules card reviews using the FSRS algorithm.
//
// A Scheduler is immutable apart from its random source, which advances on
// every fuzzed review. It is not safe for concurrent use while fuzzing is
// enabled; give each goroutine its own Scheduler.
type Scheduler struct {
	algo   algo
	config SchedulerConfig
	src    Source
	log    zerolog.Logger
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithSource sets the random source used for fuzzing.
func WithSource(src Source) Option {
	return func(s *Scheduler) {
		if src != nil {
			s.src = src
		}
	}
}

// WithSeed seeds a private math/rand source for reproducible fuzzing.
func WithSeed(seed int64) Option {
	return func(s *Scheduler) {
		s.src = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger receiving one debug event per review.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scheduler) {
		s.log = log
	}
}

// NewScheduler validates cfg and creates a Scheduler.
// Parameters are only checked for length and finiteness, not against the
// trained bounds; use ValidateParameters for that.
func NewScheduler(cfg SchedulerConfig, opts ...Option) (*Scheduler, error) {
	params := cfg.Parameters
	if params == nil {
		params = DefaultParameters[:]
	}
	w, err := ParseWeights(params)
	if err != nil {
		return nil, err
	}

	dr := cfg.DesiredRetention
	if math.IsNaN(dr) || dr <= 0 || dr > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRetention, dr)
	}

	if cfg.MaximumInterval < 1 || cfg.MaximumInterval > MaxIntervalDays {
		return nil, fmt.Errorf("%w: %d days, want [1, %d]", ErrInvalidInterval, cfg.MaximumInterval, MaxIntervalDays)
	}

	if err := checkSteps("learning", cfg.LearningSteps); err != nil {
		return nil, err
	}
	if err := checkSteps("relearning", cfg.RelearningSteps); err != nil {
		return nil, err
	}

	s := &Scheduler{
		algo: newAlgo(w),
		config: SchedulerConfig{
			Parameters:       w.Slice(),
			DesiredRetention: dr,
			LearningSteps:    slices.Clone(cfg.LearningSteps),
			RelearningSteps:  slices.Clone(cfg.RelearningSteps),
			MaximumInterval:  cfg.MaximumInterval,
			EnableFuzzing:    cfg.EnableFuzzing,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s, nil
}

// maxStep is the longest learning or relearning step. Hard on the first step
// waits up to 1.5 steps, which must still fit in a time.Duration.
const maxStep = time.Duration(MaxIntervalDays) * Day / 2

func checkSteps(name string, steps []time.Duration) error {
	for i, d := range steps {
		if d <= 0 || d > maxStep {
			return fmt.Errorf("%w: %s step %d is %v, want (0, %v]", ErrInvalidSteps, name, i, d, maxStep)
		}
	}
	return nil
}

// Config returns a copy of the scheduler's normalized configuration.
// Parameters always have 21 entries.
func (s *Scheduler) Config() SchedulerConfig {
	c := s.config
	c.Parameters = slices.Clone(c.Parameters)
	c.LearningSteps = slices.Clone(c.LearningSteps)
	c.RelearningSteps = slices.Clone(c.RelearningSteps)
	return c
}

// Weights returns the normalized named parameters.
func (s *Scheduler) Weights() Weights {
	return s.algo.w
}

// ReviewCard processes a review of the card with the given rating, where
// elapsed is the real time since the card's previous review. It returns the
// updated card; the input card is not modified.
//
// Invalid ratings or states and negative steps leave the card unchanged; use
// ReviewCardChecked to get an error instead.
func (s *Scheduler) ReviewCard(card Card, rating Rating, elapsed time.Duration) Card {
	if !rating.IsValid() || !card.State.IsValid() || card.Step < 0 {
		s.log.Warn().
			Int64("card_id", card.CardID).
			Int("rating", int(rating)).
			Int("state", int(card.State)).
			Int("step", card.Step).
			Msg("review ignored")
		return card
	}

	c := s.updateMemory(card, rating, elapsed)
	c = transitions[transitionKey{from: card.State, rating: rating}](s, c)

	fuzzed := false
	if s.config.EnableFuzzing && c.State == Review {
		days := c.IntervalDays()
		if f := applyFuzz(days, s.config.MaximumInterval, s.src); f != days {
			c.Interval = time.Duration(f) * Day
			fuzzed = true
		}
	}

	s.log.Debug().
		Int64("card_id", c.CardID).
		Stringer("rating", rating).
		Stringer("from", card.State).
		Stringer("to", c.State).
		Int("step", c.Step).
		Dur("elapsed", elapsed).
		Dur("interval", c.Interval).
		Float64("stability", c.Stability).
		Float64("difficulty", c.Difficulty).
		Bool("fuzzed", fuzzed).
		Msg("card reviewed")

	return c
}

// ReviewCardChecked is ReviewCard with validation of the rating, the card's
// state and its step.
func (s *Scheduler) ReviewCardChecked(card Card, rating Rating, elapsed time.Duration) (Card, error) {
	if !rating.IsValid() {
		return card, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}
	if !card.State.IsValid() {
		return card, fmt.Errorf("%w: %d", ErrInvalidState, int(card.State))
	}
	if card.Step < 0 {
		return card, fmt.Errorf("%w: %d", ErrInvalidStep, card.Step)
	}
	return s.ReviewCard(card, rating, elapsed), nil
}

// PreviewCard returns the result of reviewing the card with each possible rating.
func (s *Scheduler) PreviewCard(card Card, elapsed time.Duration) map[Rating]Card {
	result := make(map[Rating]Card, len(Ratings))
	for _, r := range Ratings {
		result[r] = s.ReviewCard(card, r, elapsed)
	}
	return result
}

// RescheduleCard replays the given review logs on the card in order.
// Returns ErrCardIDMismatch if any log's CardID does not match the card's CardID.
func (s *Scheduler) RescheduleCard(card Card, logs []ReviewLog) (Card, error) {
	c := card
	for i, log := range logs {
		if log.CardID != c.CardID {
			return Card{}, fmt.Errorf("%w: card %d, log %d", ErrCardIDMismatch, c.CardID, log.CardID)
		}
		var err error
		if c, err = s.ReviewCardChecked(c, log.Rating, log.Elapsed); err != nil {
			return Card{}, fmt.Errorf("review log %d: %w", i, err)
		}
	}
	return c, nil
}

// CalculateNextReviewInterval returns the interval after which recall
// probability falls to the desired retention for the given stability.
// The result is a whole number of days in [1, MaximumInterval] and is never fuzzed.
func (s *Scheduler) CalculateNextReviewInterval(stability float64) time.Duration {
	days := s.algo.nextInterval(stability, s.config.DesiredRetention, s.config.MaximumInterval)
	return time.Duration(days) * Day
}

// Retrievability returns the probability of recall for the card after
// elapsed time since its last review. Returns 0 for New cards.
func (s *Scheduler) Retrievability(card Card, elapsed time.Duration) float64 {
	if card.State == New {
		return 0
	}
	return s.algo.retrievability(elapsedDays(elapsed), clampS(card.Stability))
}

// updateMemory updates the card's stability and difficulty for the review.
// New cards get the initial values; other cards use the prior stability and
// the real elapsed time.
func (s *Scheduler) updateMemory(c Card, rating Rating, elapsed time.Duration) Card {
	if c.State == New {
		c.Stability = s.algo.initStability(rating)
		c.Difficulty = s.algo.initDifficulty(rating, true)
		return c
	}

	stability := clampS(c.Stability)
	difficulty := clampD(c.Difficulty)

	if elapsed < Day {
		c.Stability = s.algo.shortTermStability(stability, rating)
	} else {
		r := s.algo.retrievability(elapsedDays(elapsed), stability)
		c.Stability = s.algo.nextStability(difficulty, stability, r, rating)
	}
	c.Difficulty = s.algo.nextDifficulty(difficulty, rating)
	return c
}

func elapsedDays(elapsed time.Duration) float64 {
	return math.Max(0, elapsed.Hours()/24.0)
}

// schedulerJSON is the serialized form of a Scheduler.
type schedulerJSON struct {
	Parameters       []float64 `json:"parameters"`
	DesiredRetention float64   `json:"desired_retention"`
	LearningSteps    []int64   `json:"learning_steps"`   // nanoseconds
	RelearningSteps  []int64   `json:"relearning_steps"` // nanoseconds
	MaximumInterval  int       `json:"maximum_interval"`
	EnableFuzzing    bool      `json:"enable_fuzzing"`
}

// MarshalJSON implements json.Marshaler.
func (s *Scheduler) MarshalJSON() ([]byte, error) {
	return json.Marshal(schedulerJSON{
		Parameters:       s.config.Parameters,
		DesiredRetention: s.config.DesiredRetention,
		LearningSteps:    durationsToNanos(s.config.LearningSteps),
		RelearningSteps:  durationsToNanos(s.config.RelearningSteps),
		MaximumInterval:  s.config.MaximumInterval,
		EnableFuzzing:    s.config.EnableFuzzing,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// It rebuilds the scheduler through NewScheduler, keeping the receiver's
// random source and logger when it already has them.
func (s *Scheduler) UnmarshalJSON(data []byte) error {
	var j schedulerJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	cfg := SchedulerConfig{
		Parameters:       j.Parameters,
		DesiredRetention: j.DesiredRetention,
		LearningSteps:    nanosToDurations(j.LearningSteps),
		RelearningSteps:  nanosToDurations(j.RelearningSteps),
		MaximumInterval:  j.MaximumInterval,
		EnableFuzzing:    j.EnableFuzzing,
	}
	rebuilt, err := NewScheduler(cfg, WithSource(s.src), WithLogger(s.log))
	if err != nil {
		return err
	}
	*s = *rebuilt
	return nil
}

func durationsToNanos(ds []time.Duration) []int64 {
	ns := make([]int64, len(ds))
	for i, d := range ds {
		ns[i] = int64(d)
	}
	return ns
}

func nanosToDurations(ns []int64) []time.Duration {
	ds := make([]time.Duration, len(ns))
	for i, n := range ns {
		ds[i] = time.Duration(n)
	}
	return ds
}
