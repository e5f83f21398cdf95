package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/observability"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo repository.UserRepository
	logger   logrus.FieldLogger
	metrics  *observability.Metrics
}

// NewUserService creates a new instance of userService. metrics may be nil.
func NewUserService(userRepo repository.UserRepository, logger logrus.FieldLogger, metrics *observability.Metrics) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
		metrics:  metrics,
	}
}

// CreateUser registers username. An existing user with the exact same
// username yields ErrUsernameTaken.
func (s *userService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, invalid("username", "username is required")
	}

	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	user := &domain.User{Username: username, Exercises: []domain.Exercise{}}
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// Lost a race against a concurrent registration of the same name
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.ID = userID

	s.metrics.UserRegistered()
	s.logger.WithFields(logrus.Fields{"userId": userID.Hex(), "username": username}).Info("User registered")
	return user, nil
}

// GetUser looks a user up by hex id. Malformed and unknown ids both map to
// ErrUserNotFound.
func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
