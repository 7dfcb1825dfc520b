package product

import (
	"context"
	"errors"
	"strings"

	"grambazaar/database/repository"
	productRepo "grambazaar/database/repository/product"
	"grambazaar/models"
	"grambazaar/services/storage"
	"grambazaar/utils"

	"github.com/google/uuid"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// DefaultProductService is the production implementation.
type DefaultProductService struct {
	Repo   productRepo.ProductRepository
	Images storage.ImageStore
}

func NewProductService(repo productRepo.ProductRepository, images storage.ImageStore) *DefaultProductService {
	return &DefaultProductService{Repo: repo, Images: images}
}

func (s *DefaultProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.Repo.List(ctx)
	if err != nil {
		return nil, utils.Internal("Failed to fetch products", err)
	}
	return products, nil
}

func (s *DefaultProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("Product not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to fetch product", err)
	}
	return p, nil
}

func (s *DefaultProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if input.Price == nil || *input.Price < 0 {
		return nil, utils.Invalid("Invalid product", utils.FieldIssue{Field: "price", Message: "must be zero or more"})
	}
	p := &models.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(input.Name),
		Price:       *input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		ImageID:     input.ImageID,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, utils.Internal("Failed to create product", err)
	}
	return p, nil
}

// UpdateProduct applies patch. When the image is swapped the old hosted
// asset is destroyed after the write succeeds.
func (s *DefaultProductService) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, utils.Invalid("Invalid product", utils.FieldIssue{Field: "price", Message: "must be zero or more"})
	}

	oldImage := p.ImageID
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.ImageID != nil {
		p.ImageID = *patch.ImageID
	}

	if err := s.Repo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("Product not found")
		}
		return nil, utils.Internal("Failed to update product", err)
	}
	if oldImage != "" && oldImage != p.ImageID {
		storage.DestroyBestEffort(ctx, s.Images, oldImage)
	}
	return p, nil
}

func (s *DefaultProductService) DeleteProduct(ctx context.Context, id string) error {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("Product not found")
		}
		return utils.Internal("Failed to delete product", err)
	}
	storage.DestroyBestEffort(ctx, s.Images, p.ImageID)
	return nil
}
