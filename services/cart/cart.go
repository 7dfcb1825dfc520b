package cart

import (
	"context"
	"errors"
	"fmt"

	"grambazaar/database/repository"
	cartRepo "grambazaar/database/repository/cart"
	productRepo "grambazaar/database/repository/product"
	"grambazaar/models"
	"grambazaar/utils"

	"github.com/google/uuid"
)

// CartService manages the caller's cart.
type CartService interface {
	GetCart(ctx context.Context, identity models.Identity) (*models.Cart, error)
	AddItems(ctx context.Context, identity models.Identity, items []models.CartItemInput) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, identity models.Identity, productID string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, identity models.Identity, productID string) (*models.Cart, error)
	ClearCart(ctx context.Context, identity models.Identity) error
}

// DefaultCartService is the production implementation.
type DefaultCartService struct {
	Carts    cartRepo.CartRepository
	Products productRepo.ProductRepository
}

func NewCartService(carts cartRepo.CartRepository, products productRepo.ProductRepository) *DefaultCartService {
	return &DefaultCartService{Carts: carts, Products: products}
}

// load returns the user's cart, or nil when none exists yet.
func (s *DefaultCartService) load(ctx context.Context, userID string) (*models.Cart, error) {
	c, err := s.Carts.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.Internal("Failed to load cart", err)
	}
	return c, nil
}

func (s *DefaultCartService) save(ctx context.Context, c *models.Cart) error {
	if err := s.Carts.Save(ctx, c); err != nil {
		return utils.Internal("Failed to save cart", err)
	}
	return nil
}

// GetCart never fails with NotFound; a user without a cart gets an empty one.
func (s *DefaultCartService) GetCart(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	c, err := s.load(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &models.Cart{UserID: identity.UserID, Items: []models.CartItem{}}, nil
	}
	return c, nil
}

// AddItems merges each requested line into the cart. Every product is resolved
// before anything is written, so an unknown id leaves the cart untouched.
func (s *DefaultCartService) AddItems(ctx context.Context, identity models.Identity, items []models.CartItemInput) (*models.Cart, error) {
	if len(items) == 0 {
		return nil, utils.Invalid("No items provided")
	}

	ids := make([]string, 0, len(items))
	for i, it := range items {
		if it.Quantity < 0 {
			return nil, utils.Invalid("Quantity must be positive", utils.FieldIssue{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "must be greater than 0",
			})
		}
		ids = append(ids, it.ProductID)
	}

	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, utils.Internal("Failed to look up products", err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, utils.NotFound(fmt.Sprintf("Product not found: %s", id))
		}
	}

	c, err := s.load(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &models.Cart{ID: uuid.New().String(), UserID: identity.UserID, Items: []models.CartItem{}}
	}

	for _, it := range items {
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		if idx := c.FindItem(it.ProductID); idx >= 0 {
			c.Items[idx].Quantity += qty
			continue
		}
		p := byID[it.ProductID]
		c.Items = append(c.Items, models.CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  qty,
		})
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity sets the exact quantity of an existing line.
func (s *DefaultCartService) UpdateQuantity(ctx context.Context, identity models.Identity, productID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, utils.Invalid("Quantity must be greater than 0", utils.FieldIssue{
			Field:   "quantity",
			Message: "must be greater than 0",
		})
	}
	c, err := s.load(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.NotFound("Cart not found")
	}
	idx := c.FindItem(productID)
	if idx < 0 {
		return nil, utils.NotFound("Item not found in cart")
	}
	c.Items[idx].Quantity = quantity

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *DefaultCartService) RemoveItem(ctx context.Context, identity models.Identity, productID string) (*models.Cart, error) {
	c, err := s.load(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.NotFound("Cart not found")
	}
	idx := c.FindItem(productID)
	if idx < 0 {
		return nil, utils.NotFound("Item not found in cart")
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ClearCart empties the cart. Missing or already-empty carts are not an error.
func (s *DefaultCartService) ClearCart(ctx context.Context, identity models.Identity) error {
	c, err := s.load(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if c == nil || len(c.Items) == 0 {
		return nil
	}
	c.Items = []models.CartItem{}
	return s.save(ctx, c)
}

// DeleteUserCart drops the cart document; used when an account is removed.
func (s *DefaultCartService) DeleteUserCart(ctx context.Context, userID string) error {
	if err := s.Carts.DeleteByUserID(ctx, userID); err != nil {
		return utils.Internal("Failed to delete cart", err)
	}
	return nil
}
