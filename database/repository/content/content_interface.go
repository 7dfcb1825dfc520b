package contentRepo

import (
	"context"

	"grambazaar/models"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id string) error
}

type NewsRepository interface {
	Create(ctx context.Context, n *models.News) error
	GetByID(ctx context.Context, id string) (*models.News, error)
	// List returns news ordered by date, latest first.
	List(ctx context.Context) ([]models.News, error)
	Update(ctx context.Context, n *models.News) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, n int64) ([]models.News, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error
	List(ctx context.Context) ([]models.Message, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// SettingRepository stores the single site settings document.
type SettingRepository interface {
	Get(ctx context.Context) (*models.Setting, error)
	Upsert(ctx context.Context, s *models.Setting) error
}
