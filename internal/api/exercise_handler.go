package api

import (
	"alcyxob/exercise-tracker/internal/api/types"
	"alcyxob/exercise-tracker/internal/datefmt"
	"alcyxob/exercise-tracker/internal/service"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// looseValue accepts a JSON string, number or bool and keeps its text.
// Form values bind into it as plain strings.
type looseValue string

func (v *looseValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = looseValue(s)
		return nil
	}
	*v = looseValue(data)
	return nil
}

// AddExerciseRequest is the body of POST /api/exercise/add.
type AddExerciseRequest struct {
	UserID      string     `form:"userId" json:"userId"`
	Description string     `form:"description" json:"description"`
	Duration    looseValue `form:"duration" json:"duration"`
	Date        string     `form:"date" json:"date"`
}

// LogQuery is the query string of GET /api/exercise/log.
type LogQuery struct {
	UserID string `form:"userId"`
	From   string `form:"from"`
	To     string `form:"to"`
	Limit  string `form:"limit"`
}

// ExerciseResponse echoes a stored entry together with its owner.
type ExerciseResponse struct {
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	ID          string  `json:"_id"`
	Date        string  `json:"date"`
}

// MapExerciseResultToResponse converts an AddExercise result to its DTO.
func MapExerciseResultToResponse(res *service.ExerciseResult) ExerciseResponse {
	if res == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		Username:    res.Username,
		Description: res.Exercise.Description,
		Duration:    res.Exercise.Duration,
		ID:          res.UserID.Hex(),
		Date:        datefmt.Format(res.Exercise.Date),
	}
}

// MapExerciseLogToResponse converts a filtered log to its DTO.
func MapExerciseLogToResponse(log *service.ExerciseLog) types.LogResponse {
	if log == nil {
		return types.LogResponse{Log: []types.ExerciseEntry{}}
	}
	return types.NewLogResponse(log.UserID, log.Username, log.From, log.To, log.Exercises)
}

// --- Handler Methods ---

// AddExercise appends an entry to a user's log.
// POST /api/exercise/add
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	res, err := h.exerciseService.AddExercise(c.Request.Context(), req.UserID, service.AddExerciseInput{
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        req.Date,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.String(http.StatusOK, msgUnknownID)
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, MapExerciseResultToResponse(res))
}

// GetLog returns a user's log, optionally narrowed by from, to and limit.
// GET /api/exercise/log
func (h *ExerciseHandler) GetLog(c *gin.Context) {
	var q LogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	filter, err := service.ParseLogFilter(q.From, q.To, q.Limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	log, err := h.exerciseService.GetLog(c.Request.Context(), q.UserID, filter)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.String(http.StatusOK, msgUnknownID)
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, MapExerciseLogToResponse(log))
}
