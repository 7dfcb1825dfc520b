package models

// PaymentIntentRequest is the body of POST /api/payment-intent.
// Amount is in minor units (paise); fractional values fail binding.
type PaymentIntentRequest struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	BookingID string `json:"bookingId"`
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// PaymentConfirmRequest is the body of POST /api/payment-confirm.
type PaymentConfirmRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	BookingID string `json:"bookingId" binding:"required"`
}

type CheckoutSessionResponse struct {
	ClientSecret string `json:"clientSecret"`
	SessionID    string `json:"sessionId"`
}

// ReconcilePayload is carried by the payment:reconcile task.
type ReconcilePayload struct {
	BookingID string `json:"bookingId"`
	PaymentID string `json:"paymentId"`
}
