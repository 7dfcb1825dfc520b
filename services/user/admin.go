package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grambazaar/database/repository"
	"grambazaar/models"
	"grambazaar/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) ListUsers(ctx context.Context, q string) ([]models.User, error) {
	users, err := s.Repo.Search(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, utils.Internal("Failed to list users", err)
	}
	return users, nil
}

func (s *DefaultUserService) UpdateRole(ctx context.Context, id, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, utils.Invalid("Invalid role", utils.FieldIssue{
			Field: "role", Message: fmt.Sprintf("must be %q or %q", models.RoleUser, models.RoleAdmin),
		})
	}
	u, err := s.Repo.UpdateRole(ctx, id, role)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("User not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to update role", err)
	}
	if err := s.Sessions.ForgetRole(ctx, id); err != nil {
		utils.GetLogger().Warn("UpdateRole: failed to drop cached role", zap.String("userId", id), zap.Error(err))
	}
	return u, nil
}

// DeleteUser removes the account along with its bookings and cart.
func (s *DefaultUserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.Repo.GetByID(ctx, id); errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound("User not found")
	} else if err != nil {
		return utils.Internal("Failed to delete user", err)
	}

	if s.Bookings != nil {
		n, err := s.Bookings.DeleteUserBookings(ctx, id)
		if err != nil {
			return err
		}
		utils.GetLogger().Info("Deleted user bookings", zap.String("userId", id), zap.Int64("count", n))
	}
	if s.Carts != nil {
		if err := s.Carts.DeleteUserCart(ctx, id); err != nil {
			return err
		}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("User not found")
		}
		return utils.Internal("Failed to delete user", err)
	}
	if err := s.Sessions.ForgetRole(ctx, id); err != nil {
		utils.GetLogger().Warn("DeleteUser: failed to drop cached role", zap.String("userId", id), zap.Error(err))
	}
	return nil
}

// PromoteByEmail grants the admin role; used by the make-admin command.
func (s *DefaultUserService) PromoteByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("User not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to look up user", err)
	}
	return s.UpdateRole(ctx, u.ID, models.RoleAdmin)
}
