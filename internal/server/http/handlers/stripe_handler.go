package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/glimmerco/lumiere/internal/server/http/dto"
)

// StripeHandler exposes the payment processor surface.
type StripeHandler struct {
	facade   CheckoutFacade
	validate *validatorv10.Validate
}

// NewStripeHandler constructs StripeHandler.
func NewStripeHandler(facade CheckoutFacade, v *validatorv10.Validate) *StripeHandler {
	return &StripeHandler{facade: facade, validate: v}
}

// CreateIntent handles POST /api/stripe/create-payment-intent.
func (h *StripeHandler) CreateIntent(c *gin.Context) {
	var req dto.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid amount is required"})
		return
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}

	clientSecret, err := h.facade.CreatePaymentIntent(c.Request.Context(), req.Amount, req.Currency)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// Config handles GET /api/stripe/config.
func (h *StripeHandler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"configured": h.facade.PaymentConfigured(),
		"webhook":    h.facade.WebhookConfigured(),
	})
}

// PublicKey handles GET /api/stripe/public-key.
func (h *StripeHandler) PublicKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"publishableKey": h.facade.PublishableKey()})
}

// Webhook handles POST /api/stripe/webhook. The raw body is needed for
// signature verification, so no binding happens here.
func (h *StripeHandler) Webhook(c *gin.Context) {
	signature := c.GetHeader("Stripe-Signature")
	if signature == "" || !h.facade.WebhookConfigured() {
		c.String(http.StatusBadRequest, "Missing signature or secret")
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "Unreadable body")
		return
	}

	if err := h.facade.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
