package booking

import (
	"context"
	"fmt"
	"strings"

	"grambazaar/models"
	"grambazaar/services/payment"
	"grambazaar/utils"

	"go.uber.org/zap"
)

// ConfirmResult is the outcome of a payment confirmation. A processor that has
// not settled yet is not an error: Success is false and the booking is untouched.
type ConfirmResult struct {
	Success       bool            `json:"success"`
	PaymentStatus string          `json:"paymentStatus"`
	Message       string          `json:"message"`
	Booking       *models.Booking `json:"booking,omitempty"`
}

// ConfirmPayment asks the processor whether sessionID is paid and, if so,
// marks the booking Completed/Approved. Repeating it is harmless: paidAt is
// stamped once and an already-settled booking is returned without a write.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, identity models.Identity, sessionID, bookingID string) (*ConfirmResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" || bookingID == "" {
		return nil, utils.Invalid("session_id and bookingId are required")
	}

	b, err := s.loadOwned(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}

	if b.PaymentStatus == models.PaymentCompleted && b.PaymentIntentID == sessionID && b.PaidAt != nil {
		return paidResult(b), nil
	}

	settlement, err := s.Gateway.RetrieveSettlement(ctx, sessionID)
	if err != nil {
		return nil, utils.Internal("Failed to verify payment", err)
	}
	if settlement.BookingID != "" && settlement.BookingID != b.ID {
		return nil, utils.Invalid("Payment does not belong to this booking")
	}
	if !settlement.Paid {
		return &ConfirmResult{
			Success:       false,
			PaymentStatus: settlement.Status,
			Message:       "Payment not completed",
		}, nil
	}

	b.PaymentStatus = models.PaymentCompleted
	b.Status = models.BookingApproved
	b.PaymentIntentID = sessionID
	if b.PaidAt == nil {
		paidAt := s.now()
		b.PaidAt = &paidAt
	}
	b.TotalAmount = models.ComputeTotal(b.Items)
	if err := s.Bookings.Update(ctx, b); err != nil {
		return nil, utils.Internal("Failed to record payment", err)
	}

	zap.L().Info("Payment confirmed",
		zap.String("bookingId", b.ID),
		zap.String("paymentId", sessionID),
		zap.String("confirmedBy", identity.Role))
	return paidResult(b), nil
}

func paidResult(b *models.Booking) *ConfirmResult {
	return &ConfirmResult{
		Success:       true,
		PaymentStatus: "completed",
		Message:       "Payment confirmed successfully",
		Booking:       b,
	}
}

// CreateCheckoutSession opens an embedded processor checkout for the booking's
// lines and records the session id on the booking.
func (s *DefaultBookingService) CreateCheckoutSession(ctx context.Context, identity models.Identity, id string) (*models.CheckoutSessionResponse, error) {
	b, err := s.loadOwned(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if b.PaymentStatus == models.PaymentCompleted {
		return nil, utils.Conflict("Booking is already paid")
	}
	if b.Status == models.BookingCancelled || b.Status == models.BookingRejected {
		return nil, utils.Invalid(fmt.Sprintf("Cannot pay for a %s booking", strings.ToLower(string(b.Status))))
	}

	lines := make([]payment.CheckoutLine, 0, len(b.Items))
	for _, it := range b.Items {
		lines = append(lines, payment.CheckoutLine{
			Name:       it.Name,
			UnitAmount: models.ToMinorUnits(it.Price),
			Quantity:   int64(it.Quantity),
		})
	}
	returnURL := fmt.Sprintf("%s/users/dashboard/bookings/%s?session_id={CHECKOUT_SESSION_ID}",
		strings.TrimRight(s.BaseURL, "/"), b.ID)

	sess, err := s.Gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		Currency:          s.currency(),
		Lines:             lines,
		ReturnURL:         returnURL,
		ClientReferenceID: b.ID,
		Metadata:          map[string]string{"bookingId": b.ID, "userId": b.UserID},
	})
	if err != nil {
		return nil, utils.Internal("Failed to create checkout session", err)
	}

	b.PaymentIntentID = sess.ID
	if err := s.Bookings.Update(ctx, b); err != nil {
		return nil, utils.Internal("Failed to record checkout session", err)
	}
	s.scheduleReconcile(ctx, b.ID, sess.ID)

	return &models.CheckoutSessionResponse{ClientSecret: sess.ClientSecret, SessionID: sess.ID}, nil
}
