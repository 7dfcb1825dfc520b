package content

import (
	"context"
	"errors"

	"grambazaar/database/repository"
	"grambazaar/models"
	"grambazaar/utils"

	"github.com/google/uuid"
)

// ListNews returns news latest first. An empty list is reported as NotFound.
func (s *DefaultContentService) ListNews(ctx context.Context) ([]models.News, error) {
	news, err := s.News.List(ctx)
	if err != nil {
		return nil, utils.Internal("Failed to fetch news", err)
	}
	if len(news) == 0 {
		return nil, utils.NotFound("No news found")
	}
	return news, nil
}

func (s *DefaultContentService) CreateNews(ctx context.Context, input models.NewsInput) (*models.News, error) {
	n := &models.News{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Link:        input.Link,
	}
	if err := s.News.Create(ctx, n); err != nil {
		return nil, utils.Internal("Failed to create news", err)
	}
	return n, nil
}

func (s *DefaultContentService) UpdateNews(ctx context.Context, id string, input models.NewsInput) (*models.News, error) {
	n, err := s.News.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("News not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to fetch news", err)
	}
	n.Title = input.Title
	n.Description = input.Description
	n.Date = input.Date
	n.Link = input.Link
	if err := s.News.Update(ctx, n); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("News not found")
		}
		return nil, utils.Internal("Failed to update news", err)
	}
	return n, nil
}

func (s *DefaultContentService) DeleteNews(ctx context.Context, id string) error {
	err := s.News.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound("News not found")
	}
	if err != nil {
		return utils.Internal("Failed to delete news", err)
	}
	return nil
}
