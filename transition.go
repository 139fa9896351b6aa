package fsrs

import "time"

// transitionKey identifies one cell of the state machine. The state is the
// card's state before the review; memory has already been updated.
type transitionKey struct {
	from   State
	rating Rating
}

// transitionFunc moves a card to its next state and sets its interval.
type transitionFunc func(s *Scheduler, c Card) Card

// transitions is the complete (State, Rating) table. New cards walk the
// learning ladder exactly like Learning cards.
var transitions = map[transitionKey]transitionFunc{
	{New, Again}: (*Scheduler).restartSteps,
	{New, Hard}:  (*Scheduler).repeatStep,
	{New, Good}:  (*Scheduler).advanceStep,
	{New, Easy}:  (*Scheduler).graduate,

	{Learning, Again}: (*Scheduler).restartSteps,
	{Learning, Hard}:  (*Scheduler).repeatStep,
	{Learning, Good}:  (*Scheduler).advanceStep,
	{Learning, Easy}:  (*Scheduler).graduate,

	{Review, Again}: (*Scheduler).lapse,
	{Review, Hard}:  (*Scheduler).graduate,
	{Review, Good}:  (*Scheduler).graduate,
	{Review, Easy}:  (*Scheduler).graduate,

	{Relearning, Again}: (*Scheduler).restartSteps,
	{Relearning, Hard}:  (*Scheduler).repeatStep,
	{Relearning, Good}:  (*Scheduler).advanceStep,
	{Relearning, Easy}:  (*Scheduler).graduate,
}

// ladderState returns the state a card occupies while walking steps.
func ladderState(from State) State {
	if from == Relearning {
		return Relearning
	}
	return Learning
}

// stepsFor returns the step ladder used by cards in the given state.
func (s *Scheduler) stepsFor(state State) []time.Duration {
	switch state {
	case New, Learning:
		return s.config.LearningSteps
	case Relearning:
		return s.config.RelearningSteps
	default:
		return nil
	}
}

// restartSteps sends the card back to the first step of its ladder.
func (s *Scheduler) restartSteps(c Card) Card {
	steps := s.stepsFor(c.State)
	if len(steps) == 0 {
		return s.graduate(c)
	}
	c.State = ladderState(c.State)
	c.Step = 0
	c.Interval = steps[0]
	return c
}

// repeatStep keeps the card on its current step.
// On the first step the delay is 1.5× a single step, or the mean of the
// first two steps.
func (s *Scheduler) repeatStep(c Card) Card {
	steps := s.stepsFor(c.State)
	if c.State == New {
		c.Step = 0
	}
	if len(steps) == 0 || c.Step >= len(steps) {
		return s.graduate(c)
	}
	c.State = ladderState(c.State)

	switch {
	case c.Step == 0 && len(steps) == 1:
		c.Interval = time.Duration(float64(steps[0]) * 1.5)
	case c.Step == 0:
		c.Interval = (steps[0] + steps[1]) / 2
	default:
		c.Interval = steps[c.Step]
	}
	return c
}

// advanceStep moves the card one step forward, graduating after the last one.
func (s *Scheduler) advanceStep(c Card) Card {
	steps := s.stepsFor(c.State)
	if c.State == New {
		c.Step = 0
	}
	next := c.Step + 1
	if next >= len(steps) {
		return s.graduate(c)
	}
	c.State = ladderState(c.State)
	c.Step = next
	c.Interval = steps[next]
	return c
}

// lapse handles Again on a Review card.
func (s *Scheduler) lapse(c Card) Card {
	if len(s.config.RelearningSteps) == 0 {
		return s.graduate(c)
	}
	c.State = Relearning
	c.Step = 0
	c.Interval = s.config.RelearningSteps[0]
	return c
}

// graduate puts the card in Review with an interval from the forgetting curve.
func (s *Scheduler) graduate(c Card) Card {
	c.State = Review
	c.Step = 0
	c.Interval = s.CalculateNextReviewInterval(c.Stability)
	return c
}
