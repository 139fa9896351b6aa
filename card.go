package fsrs

import "time"

// Day is the time unit of stability and of long-term intervals.
const Day = 24 * time.Hour

// Card represents a flashcard with its scheduling state.
//
// Card is a plain value. Stability and Difficulty are meaningless while
// State is New; Step is only meaningful in Learning and Relearning.
type Card struct {
	CardID     int64         `json:"card_id"`
	Interval   time.Duration `json:"interval"` // time to wait before the next review
	Stability  float64       `json:"stability"`
	Difficulty float64       `json:"difficulty"`
	State      State         `json:"state"`
	Step       int           `json:"step"`
}

// NewCard creates a card in the New state with a zero interval.
func NewCard(id int64) Card {
	return Card{CardID: id}
}

// Due returns the time the card should next be shown, given when it was last reviewed.
func (c Card) Due(lastReview time.Time) time.Time {
	return lastReview.Add(c.Interval)
}

// IntervalDays returns the interval in whole days, truncated.
func (c Card) IntervalDays() int {
	return int(c.Interval / Day)
}
