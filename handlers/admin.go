package handlers

import (
	"bytes"
	"net/http"

	"grambazaar/models"
	"grambazaar/services/admin"
	"grambazaar/services/booking"
	"grambazaar/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the back office: dashboard, users and bookings.
type AdminHandler struct {
	Admin    admin.AdminService
	Users    user.UserService
	Bookings booking.BookingService
}

func NewAdminHandler(adminSvc admin.AdminService, users user.UserService, bookings booking.BookingService) *AdminHandler {
	return &AdminHandler{Admin: adminSvc, Users: users, Bookings: bookings}
}

func (h *AdminHandler) OverviewHandler(c *gin.Context) {
	out, err := h.Admin.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.Users.ListUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UpdateRoleHandler(c *gin.Context) {
	var req models.RoleUpdate
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.UpdateRole(c.Request.Context(), req.ID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("User role changed", zap.String("userId", u.ID), zap.String("role", u.Role))
	c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		id = c.Param("id")
	}
	if err := h.Users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *AdminHandler) ListBookingsHandler(c *gin.Context) {
	bookings, err := h.Bookings.ListBookings(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *AdminHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Bookings.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *AdminHandler) UpdateBookingHandler(c *gin.Context) {
	var req models.BookingStatusUpdate
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Bookings.UpdateBookingStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ExportBookingsHandler streams the filtered booking list as a CSV download.
func (h *AdminHandler) ExportBookingsHandler(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.Bookings.ExportBookingsCSV(c.Request.Context(), c.Query("status"), &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="bookings.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
