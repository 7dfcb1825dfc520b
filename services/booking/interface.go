package booking

import (
	"context"
	"io"
	"time"

	bookingRepo "grambazaar/database/repository/booking"
	productRepo "grambazaar/database/repository/product"
	userRepo "grambazaar/database/repository/user"
	"grambazaar/models"
	"grambazaar/services/payment"
)

// BookingService covers booking creation, owner access, payment
// reconciliation and the admin back office.
type BookingService interface {
	CreateBooking(ctx context.Context, identity models.Identity, items []models.BookingItemInput, idempotencyKey string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, identity models.Identity) ([]models.Booking, error)
	GetUserBooking(ctx context.Context, identity models.Identity, id string) (*models.Booking, error)
	UpdateUserBooking(ctx context.Context, identity models.Identity, id string, patch models.BookingPatch) (*models.Booking, error)

	CreateCheckoutSession(ctx context.Context, identity models.Identity, id string) (*models.CheckoutSessionResponse, error)
	ConfirmPayment(ctx context.Context, identity models.Identity, sessionID, bookingID string) (*ConfirmResult, error)

	ListBookings(ctx context.Context, status string) ([]models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, update models.BookingStatusUpdate) (*models.Booking, error)
	ExportBookingsCSV(ctx context.Context, status string, w io.Writer) error
	DeleteUserBookings(ctx context.Context, userID string) (int64, error)
}

// IdempotencyStore remembers which booking a client-supplied key produced.
type IdempotencyStore interface {
	// Claim reserves key. When the key was already used it returns claimed=false
	// and the booking id, or an empty id while the first request is in flight.
	Claim(ctx context.Context, key string) (bookingID string, claimed bool, err error)
	Complete(ctx context.Context, key, bookingID string) error
	Release(ctx context.Context, key string) error
}

// ReconcileScheduler queues a later settlement check for a booking's payment.
type ReconcileScheduler interface {
	ScheduleReconcile(ctx context.Context, bookingID, paymentID string) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Products productRepo.ProductRepository
	Users    userRepo.UserRepository
	Gateway  payment.Gateway

	// Optional collaborators; nil disables the feature.
	Idempotency IdempotencyStore
	Reconciler  ReconcileScheduler

	// BaseURL is the storefront origin used for checkout return links.
	BaseURL  string
	Currency string
	Now      func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) currency() string {
	if s.Currency == "" {
		return "inr"
	}
	return s.Currency
}
