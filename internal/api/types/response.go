// internal/api/types/response.go
package types

import (
	"time"

	"alcyxob/exercise-tracker/internal/datefmt"
	"alcyxob/exercise-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseEntry is one log line as clients see it.
type ExerciseEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// LogResponse is the body of GET /api/exercise/log and of exported log files.
// From and To are only present when the caller supplied them.
type LogResponse struct {
	ID       string          `json:"_id"`
	Username string          `json:"username"`
	From     string          `json:"from,omitempty"`
	To       string          `json:"to,omitempty"`
	Count    int             `json:"count"`
	Log      []ExerciseEntry `json:"log"`
}

// NewLogResponse formats exercises for output.
func NewLogResponse(id primitive.ObjectID, username string, from, to *time.Time, exercises []domain.Exercise) LogResponse {
	resp := LogResponse{
		ID:       id.Hex(),
		Username: username,
		Count:    len(exercises),
		Log:      make([]ExerciseEntry, len(exercises)),
	}
	if from != nil {
		resp.From = datefmt.Format(*from)
	}
	if to != nil {
		resp.To = datefmt.Format(*to)
	}
	for i, ex := range exercises {
		resp.Log[i] = ExerciseEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        datefmt.Format(ex.Date),
		}
	}
	return resp
}
