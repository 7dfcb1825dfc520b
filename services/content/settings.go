package content

import (
	"context"
	"errors"
	"strings"

	"grambazaar/database/repository"
	"grambazaar/models"
	"grambazaar/utils"
)

func (s *DefaultContentService) GetSettings(ctx context.Context) (*models.Setting, error) {
	st, err := s.Settings.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("Settings not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to fetch settings", err)
	}
	return st, nil
}

func (s *DefaultContentService) SaveSettings(ctx context.Context, input models.SettingInput) (*models.Setting, error) {
	st := &models.Setting{Name: strings.TrimSpace(input.Name), Logo: input.Logo}
	if err := s.Settings.Upsert(ctx, st); err != nil {
		return nil, utils.Internal("Failed to save settings", err)
	}
	return st, nil
}
