package handlers

import (
	"grambazaar/middleware"
)

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	Auth      middleware.Authenticator
	RateLimit int

	AuthHandler    *AuthHandler
	CartHandler    *CartHandler
	BookingHandler *BookingHandler
	CatalogHandler *CatalogHandler
	AdminHandler   *AdminHandler
}
