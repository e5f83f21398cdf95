package service

import (
	"alcyxob/exercise-tracker/internal/datefmt"
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/observability"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddExerciseInput carries the loosely typed fields of an add request.
// Duration may be a number or a numeric string.
type AddExerciseInput struct {
	Description string
	Duration    any
	Date        string
}

// ExerciseResult is what AddExercise reports back: the owner plus the entry
// exactly as it was stored.
type ExerciseResult struct {
	UserID   primitive.ObjectID
	Username string
	Exercise domain.Exercise
}

// LogFilter narrows a log. Nil fields do not filter. A bound holding the zero
// time came from an unreadable date and matches nothing.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit *int
}

// ExerciseLog is a user's filtered log. From and To echo the filter.
type ExerciseLog struct {
	UserID    primitive.ObjectID
	Username  string
	From      *time.Time
	To        *time.Time
	Exercises []domain.Exercise
}

type ExerciseService interface {
	AddExercise(ctx context.Context, userID string, in AddExerciseInput) (*ExerciseResult, error)
	GetLog(ctx context.Context, userID string, filter LogFilter) (*ExerciseLog, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	userRepo repository.UserRepository
	logger   logrus.FieldLogger
	metrics  *observability.Metrics
	now      func() time.Time
}

// NewExerciseService creates a new instance of exerciseService. metrics may be nil.
func NewExerciseService(userRepo repository.UserRepository, logger logrus.FieldLogger, metrics *observability.Metrics) ExerciseService {
	return &exerciseService{
		userRepo: userRepo,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// AddExercise appends an entry to the user's log. An empty date means today.
func (s *exerciseService) AddExercise(ctx context.Context, userID string, in AddExerciseInput) (*ExerciseResult, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	date := datefmt.Day(s.now())
	if strings.TrimSpace(in.Date) != "" {
		// An unreadable date is stored as the zero time and renders as "Invalid Date"
		date, err = datefmt.Parse(in.Date)
		if err != nil {
			s.logger.WithField("date", in.Date).Debug("Unparseable exercise date")
		}
	}

	exercise := domain.Exercise{
		Description: in.Description,
		Duration:    CoerceDuration(in.Duration),
		Date:        date,
	}

	user, err := s.userRepo.AppendExercise(ctx, id, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.WithError(err).WithField("userId", userID).Error("Failed to save exercise")
		return nil, err
	}

	s.metrics.ExerciseLogged()
	s.logger.WithFields(logrus.Fields{
		"userId":    userID,
		"exercises": user.ExerciseCount(),
	}).Debug("Exercise appended")

	return &ExerciseResult{
		UserID:   id,
		Username: user.Username,
		Exercise: exercise,
	}, nil
}

// GetLog returns the user's entries in insertion order, narrowed by filter.
func (s *exerciseService) GetLog(ctx context.Context, userID string, filter LogFilter) (*ExerciseLog, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &ExerciseLog{
		UserID:    id,
		Username:  user.Username,
		From:      filter.From,
		To:        filter.To,
		Exercises: filter.Apply(user.Exercises),
	}, nil
}

// Apply keeps entries inside the date bounds, then truncates to Limit.
// Order is never changed.
func (f LogFilter) Apply(exercises []domain.Exercise) []domain.Exercise {
	out := make([]domain.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if ex.Within(f.From, f.To) {
			out = append(out, ex)
		}
	}
	if f.Limit != nil && len(out) > *f.Limit {
		out = out[:*f.Limit]
	}
	return out
}

// ParseLogFilter builds a LogFilter from raw query values. Empty values are
// treated as absent. Unreadable dates become zero-time bounds. A limit must be
// a non-negative number; fractions round down.
func ParseLogFilter(from, to, limit string) (LogFilter, error) {
	var f LogFilter

	if strings.TrimSpace(from) != "" {
		f.From = parseBound(from)
	}
	if strings.TrimSpace(to) != "" {
		f.To = parseBound(to)
	}

	if strings.TrimSpace(limit) != "" {
		n, err := cast.ToFloat64E(strings.TrimSpace(limit))
		if err != nil || math.IsNaN(n) || n < 0 {
			return f, invalid("limit", fmt.Sprintf("limit must be a non-negative number, got %q", limit))
		}
		l := math.MaxInt
		if n < float64(math.MaxInt) {
			l = int(math.Floor(n))
		}
		f.Limit = &l
	}

	return f, nil
}

func parseBound(s string) *time.Time {
	d, err := datefmt.Parse(s)
	if err != nil {
		d = time.Time{}
	}
	return &d
}

// CoerceDuration turns loosely typed input into minutes. Anything that is not
// a finite number becomes 0.
func CoerceDuration(v any) float64 {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	d, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return d
}
