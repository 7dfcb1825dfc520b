package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// IntentRequest asks the processor for a card payment intent. Amount is in minor units.
type IntentRequest struct {
	Amount         int64
	Currency       string
	Metadata       map[string]string
	IdempotencyKey string
}

type Intent struct {
	ID           string
	ClientSecret string
}

// CheckoutLine is one line of an embedded checkout session. UnitAmount is in minor units.
type CheckoutLine struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type CheckoutRequest struct {
	Currency          string
	Lines             []CheckoutLine
	ReturnURL         string
	ClientReferenceID string
	Metadata          map[string]string
}

type CheckoutSession struct {
	ID           string
	ClientSecret string
}

// Settlement is the processor's view of whether a payment went through.
// BookingID is the booking recorded on the payment when it was created, if any.
type Settlement struct {
	ID        string
	Paid      bool
	Status    string
	BookingID string
}

// Gateway is the narrow surface of the payment processor the app depends on.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	// RetrieveSettlement accepts either a checkout session id or a payment intent id.
	RetrieveSettlement(ctx context.Context, id string) (*Settlement, error)
}

// StripeGateway implements Gateway with stripe-go. The package-level stripe.Key must be set.
type StripeGateway struct{}

func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{}
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Lines))
	for _, l := range req.Lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(req.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(l.Name),
				},
				UnitAmount: stripe.Int64(l.UnitAmount),
			},
			Quantity: stripe.Int64(l.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		UIMode:            stripe.String(string(stripe.CheckoutSessionUIModeEmbedded)),
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         lineItems,
		ReturnURL:         stripe.String(req.ReturnURL),
		ClientReferenceID: stripe.String(req.ClientReferenceID),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}
	return &CheckoutSession{ID: s.ID, ClientSecret: s.ClientSecret}, nil
}

func (g *StripeGateway) RetrieveSettlement(ctx context.Context, id string) (*Settlement, error) {
	if strings.HasPrefix(id, "pi_") {
		params := &stripe.PaymentIntentParams{}
		params.Context = ctx
		pi, err := paymentintent.Get(id, params)
		if err != nil {
			return nil, fmt.Errorf("stripe: retrieve payment intent %s: %w", id, err)
		}
		return &Settlement{
			ID:        pi.ID,
			Paid:      pi.Status == stripe.PaymentIntentStatusSucceeded,
			Status:    string(pi.Status),
			BookingID: pi.Metadata["bookingId"],
		}, nil
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := session.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: retrieve checkout session %s: %w", id, err)
	}
	return checkoutSettlement(s), nil
}

// checkoutSettlement maps a checkout session to a Settlement. An unpaid
// session reports its lifecycle state (open, complete, expired) so callers
// can tell an abandoned checkout from one still in progress.
func checkoutSettlement(s *stripe.CheckoutSession) *Settlement {
	st := &Settlement{
		ID:        s.ID,
		Paid:      s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Status:    string(s.PaymentStatus),
		BookingID: s.Metadata["bookingId"],
	}
	if st.BookingID == "" {
		st.BookingID = s.ClientReferenceID
	}
	if !st.Paid && s.Status != "" {
		st.Status = string(s.Status)
	}
	return st
}
