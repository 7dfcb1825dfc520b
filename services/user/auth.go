package user

import (
	"context"
	"errors"
	"strings"

	"grambazaar/database/repository"
	"grambazaar/models"
	"grambazaar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a customer account. The caller has already bound and
// validated req; duplicates surface as a validation failure.
func (s *DefaultUserService) Register(ctx context.Context, req models.UserRegistration) (*models.User, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, utils.Invalid("User already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.Internal("Registration failed, please try again", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Internal("Registration failed, please try again", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.Invalid("User already exists")
		}
		return nil, utils.Internal("Registration failed, please try again", err)
	}
	u.PasswordHash = ""

	utils.GetLogger().Info("User registered", zap.String("userId", u.ID))
	return u, nil
}

// Login verifies credentials and issues a session token.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, utils.Internal("Authentication failed, please try again", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, utils.Unauthorized("Invalid credentials")
	}

	ttl := s.tokenTTL()
	token, err := utils.GenerateToken(u.ID, u.Role, ttl)
	if err != nil {
		return nil, utils.Internal("Authentication failed, please try again", err)
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, utils.Internal("Authentication failed, please try again", err)
	}

	if err := s.Sessions.CacheRole(ctx, u.ID, u.Role); err != nil {
		utils.GetLogger().Warn("Login: failed to cache role", zap.String("userId", u.ID), zap.Error(err))
	}

	u.PasswordHash = ""
	return &AuthResponse{Token: token, ExpiresAt: claims.ExpiresAt, User: u}, nil
}

// Logout revokes token until it expires. Invalid tokens are ignored.
func (s *DefaultUserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil
	}
	if err := s.Sessions.Revoke(ctx, utils.HashToken(token), claims.ExpiresAt); err != nil {
		return utils.Internal("Logout failed", err)
	}
	return nil
}

// Authenticate resolves a bearer token to the caller's current identity.
// The role is read from the auth cache, then the user store, so role
// changes and deletions apply without waiting for the token to expire.
func (s *DefaultUserService) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, utils.Unauthorized("Authentication required")
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		return models.Identity{}, utils.Unauthorized("Invalid or expired token")
	}

	revoked, err := s.Sessions.IsRevoked(ctx, utils.HashToken(token))
	if err != nil {
		utils.GetLogger().Warn("Authenticate: revocation check failed", zap.Error(err))
	}
	if revoked {
		return models.Identity{}, utils.Unauthorized("Token has been revoked")
	}

	if role, ok, err := s.Sessions.CachedRole(ctx, claims.UserID); err == nil && ok {
		return models.Identity{UserID: claims.UserID, Role: role}, nil
	} else if err != nil {
		utils.GetLogger().Warn("Authenticate: auth cache read failed", zap.Error(err))
	}

	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Identity{}, utils.Unauthorized("User no longer exists")
	}
	if err != nil {
		return models.Identity{}, utils.Internal("Failed to authenticate", err)
	}
	if err := s.Sessions.CacheRole(ctx, u.ID, u.Role); err != nil {
		utils.GetLogger().Warn("Authenticate: failed to cache role", zap.Error(err))
	}
	return models.Identity{UserID: u.ID, Role: u.Role}, nil
}
