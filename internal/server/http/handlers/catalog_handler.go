package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public product endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/products.
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(products))
}

// Get handles GET /api/products/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// ShopifyConfig handles GET /api/shopify/config.
func (h *CatalogHandler) ShopifyConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"configured": h.facade.ShopifyConfigured(c.Request.Context())})
}

// ShopifyProducts handles GET /api/shopify/products.
func (h *CatalogHandler) ShopifyProducts(c *gin.Context) {
	products, err := h.facade.ShopifyProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(products))
}

// EbayConfig handles GET /api/ebay/config.
func (h *CatalogHandler) EbayConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"configured": h.facade.EbayConfigured(c.Request.Context())})
}

// EbayProducts handles GET /api/ebay/products.
func (h *CatalogHandler) EbayProducts(c *gin.Context) {
	query := c.DefaultQuery("q", "jewelry")
	products, err := h.facade.EbayProducts(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(products))
}
