package booking

import (
	"context"
	"fmt"

	"grambazaar/models"
	"grambazaar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the requested lines against the catalog, snapshots
// name and price, and stores a Pending booking whose total is derived here.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, identity models.Identity, items []models.BookingItemInput, idempotencyKey string) (*models.Booking, error) {
	lines, err := s.resolveLines(ctx, items)
	if err != nil {
		return nil, err
	}

	var scopedKey string
	if idempotencyKey != "" && s.Idempotency != nil {
		scopedKey = identity.UserID + ":" + idempotencyKey
		existingID, claimed, err := s.Idempotency.Claim(ctx, scopedKey)
		if err != nil {
			return nil, utils.Internal("Failed to claim idempotency key", err)
		}
		if !claimed {
			if existingID == "" {
				return nil, utils.Conflict("A booking with this idempotency key is already in progress")
			}
			return s.replay(ctx, identity, existingID)
		}
	}

	b := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        identity.UserID,
		Items:         lines,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
		TotalAmount:   models.ComputeTotal(lines),
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		if scopedKey != "" {
			if relErr := s.Idempotency.Release(ctx, scopedKey); relErr != nil {
				zap.L().Warn("Failed to release idempotency key", zap.String("key", scopedKey), zap.Error(relErr))
			}
		}
		return nil, utils.Internal("Failed to create booking", err)
	}
	if scopedKey != "" {
		if err := s.Idempotency.Complete(ctx, scopedKey, b.ID); err != nil {
			zap.L().Warn("Failed to record idempotency key", zap.String("key", scopedKey), zap.Error(err))
		}
	}

	s.attachUsers(ctx, []*models.Booking{b})
	return b, nil
}

// resolveLines turns requested items into snapshotted booking lines.
func (s *DefaultBookingService) resolveLines(ctx context.Context, items []models.BookingItemInput) ([]models.BookingItem, error) {
	if len(items) == 0 {
		return nil, utils.Invalid("Booking must contain at least one item")
	}
	ids := make([]string, 0, len(items))
	for i, it := range items {
		if it.ProductID == "" {
			return nil, utils.Invalid("Invalid booking item", utils.FieldIssue{
				Field: fmt.Sprintf("items[%d].productId", i), Message: "is required",
			})
		}
		if it.Quantity < 1 {
			return nil, utils.Invalid("Invalid booking item", utils.FieldIssue{
				Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be at least 1",
			})
		}
		ids = append(ids, it.ProductID)
	}

	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, utils.Internal("Failed to look up products", err)
	}
	if len(products) == 0 {
		return nil, utils.Invalid("No valid products found")
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]models.BookingItem, 0, len(items))
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, utils.Invalid(fmt.Sprintf("Product not found: %s", it.ProductID))
		}
		lines = append(lines, models.BookingItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
	}
	return lines, nil
}

func (s *DefaultBookingService) replay(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	b, err := s.loadOwned(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}
	s.attachUsers(ctx, []*models.Booking{b})
	return b, nil
}

// attachUsers fills Booking.User; lookup failures only log.
func (s *DefaultBookingService) attachUsers(ctx context.Context, bookings []*models.Booking) {
	if s.Users == nil || len(bookings) == 0 {
		return
	}
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.UserID)
	}
	summaries, err := s.Users.GetSummaries(ctx, ids)
	if err != nil {
		zap.L().Warn("Failed to attach users to bookings", zap.Error(err))
		return
	}
	for _, b := range bookings {
		if u, ok := summaries[b.UserID]; ok {
			u := u
			b.User = &u
		}
	}
}
