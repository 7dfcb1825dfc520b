package handlers

import (
	"net/http"

	"grambazaar/models"
	"grambazaar/services/content"
	"grambazaar/services/product"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves products and storefront content, public and admin.
type CatalogHandler struct {
	Products product.ProductService
	Content  content.ContentService
}

func NewCatalogHandler(products product.ProductService, content content.ContentService) *CatalogHandler {
	return &CatalogHandler{Products: products, Content: content}
}

// Products

func (h *CatalogHandler) ListProductsHandler(c *gin.Context) {
	products, err := h.Products.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProductHandler(c *gin.Context) {
	p, err := h.Products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product fetched", "product": p})
}

func (h *CatalogHandler) CreateProductHandler(c *gin.Context) {
	var input models.ProductInput
	if !bindJSON(c, &input) {
		return
	}
	p, err := h.Products.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": p})
}

func (h *CatalogHandler) UpdateProductHandler(c *gin.Context) {
	var patch models.ProductPatch
	if !bindJSON(c, &patch) {
		return
	}
	p, err := h.Products.UpdateProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": p})
}

func (h *CatalogHandler) DeleteProductHandler(c *gin.Context) {
	if err := h.Products.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// Services

func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Content.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	s, err := h.Content.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	var input models.ServiceInput
	if !bindJSON(c, &input) {
		return
	}
	s, err := h.Content.CreateService(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *CatalogHandler) UpdateServiceHandler(c *gin.Context) {
	var input models.ServiceInput
	if !bindJSON(c, &input) {
		return
	}
	s, err := h.Content.UpdateService(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *CatalogHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.Content.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

// News

func (h *CatalogHandler) ListNewsHandler(c *gin.Context) {
	news, err := h.Content.ListNews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, news)
}

func (h *CatalogHandler) CreateNewsHandler(c *gin.Context) {
	var input models.NewsInput
	if !bindJSON(c, &input) {
		return
	}
	n, err := h.Content.CreateNews(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "News created", "news": n})
}

func (h *CatalogHandler) UpdateNewsHandler(c *gin.Context) {
	var input models.NewsInput
	if !bindJSON(c, &input) {
		return
	}
	n, err := h.Content.UpdateNews(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "News updated", "news": n})
}

func (h *CatalogHandler) DeleteNewsHandler(c *gin.Context) {
	if err := h.Content.DeleteNews(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "News deleted"})
}

// Contact and settings

func (h *CatalogHandler) ContactHandler(c *gin.Context) {
	var input models.MessageInput
	if !bindJSON(c, &input) {
		return
	}
	if _, err := h.Content.SubmitMessage(c.Request.Context(), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message received!"})
}

func (h *CatalogHandler) ListMessagesHandler(c *gin.Context) {
	msgs, err := h.Content.ListMessages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type deleteMessagesRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

func (h *CatalogHandler) DeleteMessagesHandler(c *gin.Context) {
	var req deleteMessagesRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.Content.DeleteMessages(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Messages deleted", "deletedCount": n})
}

func (h *CatalogHandler) DeleteMessageHandler(c *gin.Context) {
	if err := h.Content.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}

func (h *CatalogHandler) GetSettingsHandler(c *gin.Context) {
	s, err := h.Content.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": s.Name, "logo": s.Logo})
}

func (h *CatalogHandler) SaveSettingsHandler(c *gin.Context) {
	var input models.SettingInput
	if !bindJSON(c, &input) {
		return
	}
	s, err := h.Content.SaveSettings(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
