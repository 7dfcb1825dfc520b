package user

import (
	"context"
	"errors"
	"strings"

	"grambazaar/database/repository"
	"grambazaar/models"
	"grambazaar/utils"
)

func (s *DefaultUserService) GetProfile(ctx context.Context, identity models.Identity) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, identity.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("User not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to load profile", err)
	}
	return u, nil
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, identity models.Identity, update models.ProfileUpdate) (*models.User, error) {
	name, phone := strings.TrimSpace(update.Name), strings.TrimSpace(update.Phone)
	if name == "" || phone == "" {
		return nil, utils.Invalid("Name and phone are required")
	}
	u, err := s.Repo.UpdateProfile(ctx, identity.UserID, name, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("User not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to update profile", err)
	}
	return u, nil
}
