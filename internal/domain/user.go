package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is one tracked individual. Exercises are embedded and append-only.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username  string             `bson:"username" json:"username"` // Unique across all users
	Exercises []Exercise         `bson:"exercises" json:"exercises"`
	CreatedAt time.Time          `bson:"createdAt" json:"-"`
}

// ExerciseCount returns the number of logged entries.
func (u *User) ExerciseCount() int {
	return len(u.Exercises)
}
