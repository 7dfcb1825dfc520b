package content

import (
	"context"
	"errors"
	"strings"

	"grambazaar/database/repository"
	"grambazaar/models"
	"grambazaar/services/storage"
	"grambazaar/utils"

	"github.com/google/uuid"
)

func (s *DefaultContentService) ListServices(ctx context.Context) ([]models.Service, error) {
	services, err := s.Services.List(ctx)
	if err != nil {
		return nil, utils.Internal("Failed to fetch services", err)
	}
	return services, nil
}

func (s *DefaultContentService) GetService(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("Service not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to fetch service", err)
	}
	return svc, nil
}

func (s *DefaultContentService) CreateService(ctx context.Context, input models.ServiceInput) (*models.Service, error) {
	svc := &models.Service{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		ImageID:     input.ImageID,
	}
	if err := s.Services.Create(ctx, svc); err != nil {
		return nil, utils.Internal("Failed to create service", err)
	}
	return svc, nil
}

func (s *DefaultContentService) UpdateService(ctx context.Context, id string, input models.ServiceInput) (*models.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	oldImage := svc.ImageID
	svc.Name = strings.TrimSpace(input.Name)
	svc.Description = input.Description
	svc.ImageID = input.ImageID

	if err := s.Services.Update(ctx, svc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Service not found")
		}
		return nil, utils.Internal("Failed to update service", err)
	}
	if oldImage != "" && oldImage != svc.ImageID {
		storage.DestroyBestEffort(ctx, s.Images, oldImage)
	}
	return svc, nil
}

func (s *DefaultContentService) DeleteService(ctx context.Context, id string) error {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Services.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("Service not found")
		}
		return utils.Internal("Failed to delete service", err)
	}
	storage.DestroyBestEffort(ctx, s.Images, svc.ImageID)
	return nil
}
