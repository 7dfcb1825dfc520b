package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grambazaar/database/repository"
	"grambazaar/models"
	"grambazaar/utils"
)

// parseStatusFilter maps the admin status query to a filter; "" and "All" mean none.
func parseStatusFilter(status string) (models.BookingStatus, error) {
	if status == "" || strings.EqualFold(status, "all") {
		return "", nil
	}
	s := models.BookingStatus(status)
	if !s.Valid() {
		return "", utils.Invalid("Invalid status filter", utils.FieldIssue{
			Field: "status", Message: fmt.Sprintf("unknown value %q", status),
		})
	}
	return s, nil
}

func (s *DefaultBookingService) listForAdmin(ctx context.Context, status string) ([]models.Booking, error) {
	filter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	bookings, err := s.Bookings.List(ctx, filter)
	if err != nil {
		return nil, utils.Internal("Failed to list bookings", err)
	}
	ptrs := make([]*models.Booking, len(bookings))
	for i := range bookings {
		ptrs[i] = &bookings[i]
	}
	s.attachUsers(ctx, ptrs)
	return bookings, nil
}

// ListBookings returns every booking, newest first, with user summaries attached.
func (s *DefaultBookingService) ListBookings(ctx context.Context, status string) ([]models.Booking, error) {
	return s.listForAdmin(ctx, status)
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("Booking not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to load booking", err)
	}
	s.attachUsers(ctx, []*models.Booking{b})
	return b, nil
}

// UpdateBookingStatus is the admin decision path; any valid status is allowed.
func (s *DefaultBookingService) UpdateBookingStatus(ctx context.Context, id string, update models.BookingStatusUpdate) (*models.Booking, error) {
	if !update.Status.Valid() {
		return nil, utils.Invalid("Invalid status", utils.FieldIssue{
			Field: "status", Message: fmt.Sprintf("unknown value %q", update.Status),
		})
	}

	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if reason := strings.TrimSpace(update.CancellationReason); reason != "" {
		b.CancellationReason = reason
	}
	if update.Status == models.BookingCancelled && b.CancellationReason == "" {
		return nil, utils.Invalid("A cancellation reason is required", utils.FieldIssue{
			Field: "cancellationReason", Message: "is required when cancelling",
		})
	}
	if update.TrackingNumber != nil {
		b.TrackingNumber = *update.TrackingNumber
	}
	b.Status = update.Status
	b.TotalAmount = models.ComputeTotal(b.Items)

	if err := s.Bookings.Update(ctx, b); err != nil {
		return nil, utils.Internal("Failed to update booking", err)
	}
	return b, nil
}

// DeleteUserBookings removes every booking of userID; part of account deletion.
func (s *DefaultBookingService) DeleteUserBookings(ctx context.Context, userID string) (int64, error) {
	n, err := s.Bookings.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, utils.Internal("Failed to delete user bookings", err)
	}
	return n, nil
}
