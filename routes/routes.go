package routes

import (
	"net/http"
	"time"

	"grambazaar/config"
	"grambazaar/handlers"
	"grambazaar/middleware"
	"grambazaar/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	h := hb.AuthHandler
	api.POST("/register", h.RegisterHandler)
	api.POST("/login", h.LoginHandler)
	api.POST("/logout", h.LogoutHandler)
	api.GET("/me", middleware.OptionalAuth(hb.Auth), h.MeHandler)

	profile := api.Group("/users", middleware.RequireUser(hb.Auth))
	{
		profile.GET("/profile", h.GetProfileHandler)
		profile.PUT("/profile", h.UpdateProfileHandler)
	}
}

// RegisterCatalogRoutes registers the public storefront endpoints.
func RegisterCatalogRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	h := hb.CatalogHandler
	api.GET("/products", h.ListProductsHandler)
	api.GET("/products/:id", h.GetProductHandler)
	api.GET("/services", h.ListServicesHandler)
	api.GET("/services/:id", h.GetServiceHandler)
	api.GET("/news", h.ListNewsHandler)
	api.GET("/settings", h.GetSettingsHandler)
	api.POST("/contact", h.ContactHandler)
}

// RegisterShopRoutes registers the cart, booking and payment endpoints.
func RegisterShopRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	shop := api.Group("", middleware.RequireUser(hb.Auth))

	cart := hb.CartHandler
	shop.GET("/cart", cart.GetCartHandler)
	shop.POST("/cart", cart.AddToCartHandler)
	shop.PATCH("/cart", cart.UpdateCartHandler)
	shop.DELETE("/cart", cart.ClearCartHandler)
	shop.DELETE("/cart/:productId", cart.RemoveCartItemHandler)

	bk := hb.BookingHandler
	shop.POST("/bookings", bk.CreateBookingHandler)
	shop.GET("/bookings", bk.ListBookingsHandler)
	shop.GET("/bookings/:id", bk.GetBookingHandler)
	shop.PATCH("/bookings/:id", bk.UpdateBookingHandler)
	shop.POST("/bookings/:id/checkout-session", bk.CheckoutSessionHandler)
	shop.POST("/payment-intent", bk.PaymentIntentHandler)
	shop.POST("/payment-confirm", bk.ConfirmPaymentHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	adminGroup := api.Group("/admin", middleware.RequireUser(hb.Auth), middleware.RequireAdmin())
	{
		a := hb.AdminHandler
		adminGroup.GET("/overview", a.OverviewHandler)
		adminGroup.GET("/users", a.ListUsersHandler)
		adminGroup.PUT("/users", a.UpdateRoleHandler)
		adminGroup.DELETE("/users", a.DeleteUserHandler)
		adminGroup.DELETE("/users/:id", a.DeleteUserHandler)
		adminGroup.GET("/bookings", a.ListBookingsHandler)
		adminGroup.GET("/bookings/export", a.ExportBookingsHandler)
		adminGroup.GET("/bookings/:id", a.GetBookingHandler)
		adminGroup.PATCH("/bookings/:id", a.UpdateBookingHandler)

		c := hb.CatalogHandler
		adminGroup.POST("/products", c.CreateProductHandler)
		adminGroup.PATCH("/products/:id", c.UpdateProductHandler)
		adminGroup.DELETE("/products/:id", c.DeleteProductHandler)
		adminGroup.POST("/services", c.CreateServiceHandler)
		adminGroup.PUT("/services/:id", c.UpdateServiceHandler)
		adminGroup.DELETE("/services/:id", c.DeleteServiceHandler)
		adminGroup.POST("/news", c.CreateNewsHandler)
		adminGroup.PUT("/news/:id", c.UpdateNewsHandler)
		adminGroup.DELETE("/news/:id", c.DeleteNewsHandler)
		adminGroup.GET("/contact", c.ListMessagesHandler)
		adminGroup.DELETE("/contact", c.DeleteMessagesHandler)
		adminGroup.DELETE("/contact/:id", c.DeleteMessageHandler)
		adminGroup.GET("/settings", c.GetSettingsHandler)
		adminGroup.PUT("/settings", c.SaveSettingsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		if !status.CheckedAt.IsZero() && !status.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": status})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.AllowedOrigins()
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	if hb.RateLimit > 0 {
		api.Use(middleware.RateLimitMiddleware(hb.RateLimit))
	}
	RegisterAuthRoutes(api, hb)
	RegisterCatalogRoutes(api, hb)
	RegisterShopRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
}
