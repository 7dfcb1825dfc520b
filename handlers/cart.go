package handlers

import (
	"net/http"

	"grambazaar/models"
	"grambazaar/services/cart"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Carts cart.CartService
}

func NewCartHandler(carts cart.CartService) *CartHandler {
	return &CartHandler{Carts: carts}
}

func (h *CartHandler) GetCartHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	ct, err := h.Carts.GetCart(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

func (h *CartHandler) AddToCartHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}
	ct, err := h.Carts.AddItems(c.Request.Context(), id, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

func (h *CartHandler) UpdateCartHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.UpdateCartRequest
	if !bindJSON(c, &req) {
		return
	}
	ct, err := h.Carts.UpdateQuantity(c.Request.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

func (h *CartHandler) ClearCartHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Carts.ClearCart(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully", "items": []models.CartItem{}})
}

func (h *CartHandler) RemoveCartItemHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	ct, err := h.Carts.RemoveItem(c.Request.Context(), id, c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart", "cart": ct})
}
