package content

import (
	"context"

	contentRepo "grambazaar/database/repository/content"
	"grambazaar/models"
	"grambazaar/services/storage"
)

// ContentService manages the storefront's editorial content: offered
// services, news, contact messages and site settings.
type ContentService interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	CreateService(ctx context.Context, input models.ServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, id string, input models.ServiceInput) (*models.Service, error)
	DeleteService(ctx context.Context, id string) error

	ListNews(ctx context.Context) ([]models.News, error)
	CreateNews(ctx context.Context, input models.NewsInput) (*models.News, error)
	UpdateNews(ctx context.Context, id string, input models.NewsInput) (*models.News, error)
	DeleteNews(ctx context.Context, id string) error

	SubmitMessage(ctx context.Context, input models.MessageInput) (*models.Message, error)
	ListMessages(ctx context.Context) ([]models.Message, error)
	DeleteMessage(ctx context.Context, id string) error
	DeleteMessages(ctx context.Context, ids []string) (int64, error)

	GetSettings(ctx context.Context) (*models.Setting, error)
	SaveSettings(ctx context.Context, input models.SettingInput) (*models.Setting, error)
}

// DefaultContentService is the production implementation.
type DefaultContentService struct {
	Services contentRepo.ServiceRepository
	News     contentRepo.NewsRepository
	Messages contentRepo.MessageRepository
	Settings contentRepo.SettingRepository
	Images   storage.ImageStore
}
