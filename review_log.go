package fsrs

import "time"

// ReviewLog records a single review event for a card.
type ReviewLog struct {
	CardID  int64         `json:"card_id"`
	Rating  Rating        `json:"rating"`
	Elapsed time.Duration `json:"elapsed"` // time since the previous review, nanoseconds in JSON
}
