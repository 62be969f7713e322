package userRepo

import (
	"context"
	"errors"

	"flowmaster/models"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record. It returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *models.User) error
	// SetFCMToken stores the push token of the user's device.
	SetFCMToken(ctx context.Context, id, token string) error
}
