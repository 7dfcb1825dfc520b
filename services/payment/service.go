package payment

import (
	"context"
	"fmt"
	"strings"

	"grambazaar/models"
	"grambazaar/utils"

	"go.uber.org/zap"
)

// PaymentService starts card payments with the processor. Nothing is persisted locally.
type PaymentService interface {
	CreateIntent(ctx context.Context, identity models.Identity, req models.PaymentIntentRequest) (*models.PaymentIntentResponse, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Gateway Gateway
	// MinAmount is the smallest accepted amount in minor units; 0 only requires a positive amount.
	MinAmount int64
	Currency  string
}

func NewPaymentService(gateway Gateway, minAmount int64, currency string) *DefaultPaymentService {
	if minAmount <= 0 {
		zap.L().Warn("PAYMENT_MIN_AMOUNT is not set; only positive amounts are enforced")
	}
	if currency == "" {
		currency = "inr"
	}
	return &DefaultPaymentService{Gateway: gateway, MinAmount: minAmount, Currency: currency}
}

func (s *DefaultPaymentService) CreateIntent(ctx context.Context, identity models.Identity, req models.PaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	amount := req.Amount
	if amount <= 0 {
		return nil, utils.Invalid("Invalid amount", utils.FieldIssue{Field: "amount", Message: "must be greater than 0"})
	}
	if s.MinAmount > 0 && amount < s.MinAmount {
		return nil, utils.Invalid(fmt.Sprintf("Invalid amount. Minimum payment is %d", s.MinAmount),
			utils.FieldIssue{Field: "amount", Message: fmt.Sprintf("must be at least %d", s.MinAmount)})
	}

	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.Currency
	}

	intentReq := IntentRequest{
		Amount:   amount,
		Currency: currency,
		Metadata: map[string]string{"userId": identity.UserID},
	}
	if req.BookingID != "" {
		intentReq.Metadata["bookingId"] = req.BookingID
		intentReq.IdempotencyKey = fmt.Sprintf("intent:%s:%d:%s", req.BookingID, amount, currency)
	}

	intent, err := s.Gateway.CreatePaymentIntent(ctx, intentReq)
	if err != nil {
		return nil, utils.Internal("Failed to create payment intent", err)
	}
	return &models.PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}
