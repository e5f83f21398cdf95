package repository

import (
	"alcyxob/exercise-tracker/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create inserts a user with an empty exercise log. ErrDuplicate means the
	// username is already taken.
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns all users in creation order, without their exercises.
	List(ctx context.Context) ([]domain.User, error)
	// AppendExercise pushes an entry onto the user's log and returns the updated user.
	AppendExercise(ctx context.Context, userID primitive.ObjectID, exercise domain.Exercise) (*domain.User, error)
}
