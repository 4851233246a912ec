package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glimmerco/lumiere/internal/adapter/ebay"
	"github.com/glimmerco/lumiere/internal/adapter/shopify"
	"github.com/glimmerco/lumiere/internal/adapter/stripe"
	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/server/http/dto"
)

// writeError maps domain failures onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	if ve, ok := domainErrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "fields": ve.Fields})
		return
	}

	var (
		apiErr     *stripe.APIError
		storageErr *domainErrors.StorageError
	)
	switch {
	case errors.Is(err, domainErrors.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items are required"})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, stripe.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Stripe not configured"})
	case errors.Is(err, shopify.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Shopify integration not configured"})
	case errors.Is(err, ebay.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "eBay integration not configured"})
	case errors.Is(err, stripe.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Message})
	case errors.As(err, &storageErr):
		// Driver errors carry connection details; never echo them to clients.
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Category:       p.Category,
		MetalType:      p.MetalType,
		Gemstone:       p.Gemstone,
		Weight:         p.Weight,
		Images:         images,
		StockQuantity:  p.StockQuantity,
		IsFeatured:     p.IsFeatured,
		IsBundle:       p.IsBundle,
		BundleDiscount: p.BundleDiscount,
		MinPrice:       p.MinPrice,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toProductResponses(products []model.Product) []dto.ProductResponse {
	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	return response
}

func toOrderResponse(order model.Order, items []model.OrderItem) dto.OrderResponse {
	response := dto.OrderResponse{
		ID:             order.ID,
		OrderNumber:    order.Number,
		Email:          order.Email,
		FirstName:      order.FirstName,
		LastName:       order.LastName,
		Address:        order.Address,
		City:           order.City,
		State:          order.State,
		ZipCode:        order.ZipCode,
		Subtotal:       order.Subtotal,
		BundleDiscount: order.BundleDiscount,
		Tax:            order.Tax,
		Shipping:       order.Shipping,
		Total:          order.Total,
		Status:         string(order.Status),
		PaymentStatus:  string(order.PaymentStatus),
		CreatedAt:      order.CreatedAt,
	}
	for _, item := range items {
		response.Items = append(response.Items, dto.OrderItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
		})
	}
	return response
}
