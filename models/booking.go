package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingApproved  BookingStatus = "Approved"
	BookingRejected  BookingStatus = "Rejected"
	BookingCompleted BookingStatus = "Completed"
	BookingCancelled BookingStatus = "Cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Booking is a placed order. TotalAmount is always derived from Items.
type Booking struct {
	ID                 string           `bson:"id" json:"id"`
	UserID             string           `bson:"userId" json:"userId"`
	User               *UserSummary     `bson:"-" json:"user,omitempty"`
	Items              []BookingItem    `bson:"items" json:"items"`
	Status             BookingStatus    `bson:"status" json:"status"`
	PaymentStatus      PaymentStatus    `bson:"paymentStatus" json:"paymentStatus"`
	TotalAmount        float64          `bson:"totalAmount" json:"totalAmount"`
	ShippingAddress    *ShippingAddress `bson:"shippingAddress,omitempty" json:"shippingAddress,omitempty"`
	TrackingNumber     string           `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	CancellationReason string           `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	PaymentIntentID    string           `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	PaidAt             *time.Time       `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CreatedAt          time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time        `bson:"updatedAt" json:"updatedAt"`
}

type BookingItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

type ShippingAddress struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Pincode string `bson:"pincode" json:"pincode"`
}

// ComputeTotal returns the sum of price × quantity over items, rounded to paise.
func ComputeTotal(items []BookingItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
	}
	f, _ := total.Round(2).Float64()
	return f
}

// ToMinorUnits converts a rupee amount to paise for the payment processor.
func ToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

// BookingItemInput is one requested line of POST /api/bookings.
type BookingItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type CreateBookingRequest struct {
	Items []BookingItemInput `json:"items"`
}

// BookingPatch is the owner-editable subset of a booking.
type BookingPatch struct {
	PaymentStatus      *PaymentStatus   `json:"paymentStatus"`
	Status             *BookingStatus   `json:"status"`
	PaymentIntentID    *string          `json:"paymentIntentId"`
	ShippingAddress    *ShippingAddress `json:"shippingAddress"`
	TrackingNumber     *string          `json:"trackingNumber"`
	CancellationReason *string          `json:"cancellationReason"`
}

// BookingStatusUpdate is the admin body of PATCH /api/admin/bookings/:id.
type BookingStatusUpdate struct {
	Status             BookingStatus `json:"status" binding:"required"`
	CancellationReason string        `json:"cancellationReason"`
	TrackingNumber     *string       `json:"trackingNumber"`
}
