// internal/domain/exercise.go
package domain

import "time"

// Exercise is one logged activity, always embedded in its owning User.
type Exercise struct {
	Description string    `bson:"description" json:"description"`
	Duration    float64   `bson:"duration" json:"duration"` // Minutes, may be fractional
	Date        time.Time `bson:"date" json:"date"`         // Calendar day at UTC midnight
}

// Within reports whether the exercise date falls inside [from, to].
// A nil bound is open. Zero times are unreadable dates: a zero bound matches
// nothing, and a zero date only passes when both bounds are open.
func (e Exercise) Within(from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if e.Date.IsZero() || (from != nil && from.IsZero()) || (to != nil && to.IsZero()) {
		return false
	}
	if from != nil && e.Date.Before(*from) {
		return false
	}
	if to != nil && e.Date.After(*to) {
		return false
	}
	return true
}
