package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/pkg/validate"
	"github.com/glimmerco/lumiere/internal/server/http/dto"
)

// OrderHandler manages checkout and order lookup endpoints.
type OrderHandler struct {
	facade   CheckoutFacade
	validate *validatorv10.Validate
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade CheckoutFacade, v *validatorv10.Validate) *OrderHandler {
	return &OrderHandler{facade: facade, validate: v}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items are required"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(c, domainErrors.NewValidationError(validate.Fields(err)...))
		return
	}

	info := model.ShippingInfo{
		Email:     req.Shipping.Email,
		FirstName: req.Shipping.FirstName,
		LastName:  req.Shipping.LastName,
		Address:   req.Shipping.Address,
		City:      req.Shipping.City,
		State:     req.Shipping.State,
		ZipCode:   req.Shipping.ZipCode,
	}
	items := make([]model.LineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.LineItem{
			ProductRef: item.ProductID,
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   item.Quantity,
		}
	}

	result, err := h.facade.Checkout(c.Request.Context(), info, items)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{
		ClientSecret: result.ClientSecret,
		OrderID:      result.Order.ID,
		OrderNumber:  result.Order.Number,
	})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id := c.Param("id")
	order, items, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order, items))
}
