package user

import (
	"context"
	"time"

	userRepo "grambazaar/database/repository/user"
	"grambazaar/models"
	"grambazaar/utils"
)

type UserService interface {
	// Accounts
	Register(ctx context.Context, req models.UserRegistration) (*models.User, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (models.Identity, error)

	// Profile
	GetProfile(ctx context.Context, identity models.Identity) (*models.User, error)
	UpdateProfile(ctx context.Context, identity models.Identity, update models.ProfileUpdate) (*models.User, error)

	// Admin
	ListUsers(ctx context.Context, q string) ([]models.User, error)
	UpdateRole(ctx context.Context, id, role string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	PromoteByEmail(ctx context.Context, email string) (*models.User, error)
}

// BookingCleaner and CartCleaner receive the account-deletion cascade.
type BookingCleaner interface {
	DeleteUserBookings(ctx context.Context, userID string) (int64, error)
}

type CartCleaner interface {
	DeleteUserCart(ctx context.Context, userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Sessions *utils.AuthSessionStore
	Bookings BookingCleaner
	Carts    CartCleaner
	TokenTTL time.Duration
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	Token     string       `json:"-"`
	ExpiresAt time.Time    `json:"-"`
	User      *models.User `json:"user"`
}

func (s *DefaultUserService) tokenTTL() time.Duration {
	if s.TokenTTL <= 0 {
		return utils.DefaultTokenTTL
	}
	return s.TokenTTL
}
