package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grambazaar/database/repository"
	"grambazaar/models"
	"grambazaar/utils"

	"go.uber.org/zap"
)

// loadOwned fetches a booking the identity may act on. Bookings owned by
// someone else look exactly like missing ones.
func (s *DefaultBookingService) loadOwned(ctx context.Context, identity models.Identity, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("Booking not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to load booking", err)
	}
	if !identity.CanAccess(b.UserID) {
		return nil, utils.NotFound("Booking not found")
	}
	return b, nil
}

func (s *DefaultBookingService) ListUserBookings(ctx context.Context, identity models.Identity) ([]models.Booking, error) {
	bookings, err := s.Bookings.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, utils.Internal("Failed to list bookings", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) GetUserBooking(ctx context.Context, identity models.Identity, id string) (*models.Booking, error) {
	return s.loadOwned(ctx, identity, id)
}

// ownerStatuses are the states a customer may move their own booking to.
var ownerStatuses = map[models.BookingStatus]bool{
	models.BookingPending:   true,
	models.BookingApproved:  true,
	models.BookingCancelled: true,
}

// UpdateUserBooking applies the owner-editable subset of fields.
func (s *DefaultBookingService) UpdateUserBooking(ctx context.Context, identity models.Identity, id string, patch models.BookingPatch) (*models.Booking, error) {
	if patch.PaymentStatus != nil && !patch.PaymentStatus.Valid() {
		return nil, utils.Invalid("Invalid payment status", utils.FieldIssue{
			Field: "paymentStatus", Message: fmt.Sprintf("unknown value %q", *patch.PaymentStatus),
		})
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, utils.Invalid("Invalid status", utils.FieldIssue{
				Field: "status", Message: fmt.Sprintf("unknown value %q", *patch.Status),
			})
		}
		if !ownerStatuses[*patch.Status] && !identity.IsAdmin() {
			return nil, utils.Forbidden(fmt.Sprintf("Only administrators can set status %s", *patch.Status))
		}
	}

	b, err := s.loadOwned(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if patch.CancellationReason != nil {
		b.CancellationReason = strings.TrimSpace(*patch.CancellationReason)
	}
	if patch.Status != nil {
		if *patch.Status == models.BookingCancelled && b.CancellationReason == "" {
			return nil, utils.Invalid("A cancellation reason is required", utils.FieldIssue{
				Field: "cancellationReason", Message: "is required when cancelling",
			})
		}
		b.Status = *patch.Status
	}
	if patch.PaymentStatus != nil {
		b.PaymentStatus = *patch.PaymentStatus
	}
	if patch.ShippingAddress != nil {
		addr := *patch.ShippingAddress
		b.ShippingAddress = &addr
	}
	if patch.TrackingNumber != nil {
		b.TrackingNumber = *patch.TrackingNumber
	}
	paymentChanged := false
	if patch.PaymentIntentID != nil && *patch.PaymentIntentID != b.PaymentIntentID {
		b.PaymentIntentID = *patch.PaymentIntentID
		paymentChanged = b.PaymentIntentID != ""
	}

	b.TotalAmount = models.ComputeTotal(b.Items)
	if err := s.Bookings.Update(ctx, b); err != nil {
		return nil, utils.Internal("Failed to update booking", err)
	}

	if paymentChanged && b.PaymentStatus != models.PaymentCompleted {
		s.scheduleReconcile(ctx, b.ID, b.PaymentIntentID)
	}
	return b, nil
}

// scheduleReconcile queues a background settlement check; failures only log.
func (s *DefaultBookingService) scheduleReconcile(ctx context.Context, bookingID, paymentID string) {
	if s.Reconciler == nil {
		return
	}
	if err := s.Reconciler.ScheduleReconcile(ctx, bookingID, paymentID); err != nil {
		zap.L().Warn("Failed to schedule payment reconcile",
			zap.String("bookingId", bookingID), zap.String("paymentId", paymentID), zap.Error(err))
	}
}
