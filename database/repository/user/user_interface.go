package userRepo

import (
	"context"

	"grambazaar/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user; a taken email yields repository.ErrDuplicate.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID, without the password hash.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by email, including the password hash.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetSummaries resolves name/email for the given ids; missing ids are omitted.
	GetSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error)
	// Search matches name or email case-insensitively, newest first. Empty q lists all.
	Search(ctx context.Context, q string) ([]models.User, error)
	UpdateProfile(ctx context.Context, id, name, phone string) (*models.User, error)
	UpdateRole(ctx context.Context, id, role string) (*models.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// Recent returns the newest users, limited to n.
	Recent(ctx context.Context, n int64) ([]models.User, error)
}
