package bookingRepo

import (
	"context"

	"grambazaar/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByUser returns the user's bookings newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// List returns all bookings newest first, optionally filtered by status.
	List(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)
	// Update replaces the stored booking; last write wins.
	Update(ctx context.Context, b *models.Booking) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	// Revenue sums price × quantity over every booked line item.
	Revenue(ctx context.Context) (float64, error)
	Recent(ctx context.Context, n int64) ([]models.Booking, error)
}
