// Package fsrs implements the FSRS spaced repetition scheduling algorithm
// for a single card.
//
// A Scheduler turns a Card, a Rating and the real time elapsed since the
// card's previous review into a new Card carrying the updated stability,
// difficulty, state and the interval to wait before the next review. Cards
// are plain values; the caller stores them between reviews.
//
// Basic usage:
//
//	s, err := fsrs.NewScheduler(fsrs.DefaultSchedulerConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	card := fsrs.NewCard(1)
//	card = s.ReviewCard(card, fsrs.Good, 0)
//	// wait card.Interval, then
//	card = s.ReviewCard(card, fsrs.Good, card.Interval)
//
// Fuzzing draws from the Scheduler's random source. Pass WithSeed or
// WithSource for reproducible intervals.
package fsrs
