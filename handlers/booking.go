package handlers

import (
	"net/http"

	"grambazaar/models"
	"grambazaar/services/booking"
	"grambazaar/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves customer bookings and payments.
type BookingHandler struct {
	Bookings booking.BookingService
	Payments payment.PaymentService
}

func NewBookingHandler(bookings booking.BookingService, payments payment.PaymentService) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Payments: payments}
}

func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Bookings.CreateBooking(c.Request.Context(), id, req.Items, c.GetHeader("Idempotency-Key"))
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Booking created", zap.String("bookingId", b.ID), zap.Float64("total", b.TotalAmount))
	c.JSON(http.StatusOK, gin.H{"message": "Booking successful", "booking": b})
}

func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	bookings, err := h.Bookings.ListUserBookings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	b, err := h.Bookings.GetUserBooking(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var patch models.BookingPatch
	if !bindJSON(c, &patch) {
		return
	}
	b, err := h.Bookings.UpdateUserBooking(c.Request.Context(), id, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated", "booking": b})
}

func (h *BookingHandler) CheckoutSessionHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	sess, err := h.Bookings.CreateCheckoutSession(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *BookingHandler) PaymentIntentHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.PaymentIntentRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Payments.CreateIntent(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmPaymentHandler reconciles a processor session with its booking.
// An unsettled payment is reported as 400 with the processor state.
func (h *BookingHandler) ConfirmPaymentHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.PaymentConfirmRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Bookings.ConfirmPayment(c.Request.Context(), id, req.SessionID, req.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !res.Success {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	c.JSON(http.StatusOK, res)
}
