package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/glimmerco/lumiere/internal/adapter/stripe"
	"github.com/glimmerco/lumiere/internal/pkg/validate"
)

func stripeRouter(facade *facadeStub) *gin.Engine {
	handler := NewStripeHandler(facade, validate.New())
	router := gin.New()
	router.POST("/api/stripe/create-payment-intent", handler.CreateIntent)
	router.GET("/api/stripe/config", handler.Config)
	router.GET("/api/stripe/public-key", handler.PublicKey)
	router.POST("/api/stripe/webhook", handler.Webhook)
	return router
}

func TestStripeCreateIntent(t *testing.T) {
	var gotAmount int64
	var gotCurrency string
	facade := &facadeStub{
		createIntentFn: func(_ context.Context, amount int64, currency string) (string, error) {
			gotAmount = amount
			gotCurrency = currency
			return "pi_secret", nil
		},
	}
	router := stripeRouter(facade)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/stripe/create-payment-intent",
		bytes.NewBufferString(`{"amount":167076}`)))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotAmount != 167076 || gotCurrency != "usd" {
		t.Fatalf("unexpected intent args: %d %q", gotAmount, gotCurrency)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/stripe/create-payment-intent",
		bytes.NewBufferString(`{"amount":0}`)))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero amount, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/stripe/create-payment-intent",
		bytes.NewBufferString(`{`)))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestStripeCreateIntentUnconfigured(t *testing.T) {
	facade := &facadeStub{
		createIntentFn: func(context.Context, int64, string) (string, error) {
			return "", stripe.ErrNotConfigured
		},
	}

	resp := httptest.NewRecorder()
	stripeRouter(facade).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/stripe/create-payment-intent",
		bytes.NewBufferString(`{"amount":100}`)))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestStripeConfigAndPublicKey(t *testing.T) {
	facade := &facadeStub{paymentConfigured: true, webhookConfigured: false, publishableKey: "pk_test"}
	router := stripeRouter(facade)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/stripe/config", nil))
	var cfg map[string]bool
	if err := json.Unmarshal(resp.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !cfg["configured"] || cfg["webhook"] {
		t.Fatalf("unexpected config %v", cfg)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/stripe/public-key", nil))
	var key map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &key); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if key["publishableKey"] != "pk_test" {
		t.Fatalf("unexpected key %v", key)
	}
}

func TestStripeWebhook(t *testing.T) {
	t.Run("missing signature", func(t *testing.T) {
		facade := &facadeStub{webhookConfigured: true}
		resp := httptest.NewRecorder()
		stripeRouter(facade).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/stripe/webhook",
			bytes.NewBufferString(`{}`)))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.Code)
		}
	})

	t.Run("secret not configured", func(t *testing.T) {
		facade := &facadeStub{webhookConfigured: false}
		req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBufferString(`{}`))
		req.Header.Set("Stripe-Signature", "t=1,v1=abc")
		resp := httptest.NewRecorder()
		stripeRouter(facade).ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.Code)
		}
	})

	t.Run("invalid signature", func(t *testing.T) {
		facade := &facadeStub{
			webhookConfigured: true,
			webhookFn: func(context.Context, []byte, string) error {
				return stripe.ErrInvalidSignature
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBufferString(`{}`))
		req.Header.Set("Stripe-Signature", "t=1,v1=bad")
		resp := httptest.NewRecorder()
		stripeRouter(facade).ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.Code)
		}
	})

	t.Run("accepted", func(t *testing.T) {
		var gotPayload []byte
		var gotSignature string
		facade := &facadeStub{
			webhookConfigured: true,
			webhookFn: func(_ context.Context, payload []byte, signature string) error {
				gotPayload = payload
				gotSignature = signature
				return nil
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewBufferString(`{"type":"payment_intent.succeeded"}`))
		req.Header.Set("Stripe-Signature", "t=1,v1=good")
		resp := httptest.NewRecorder()
		stripeRouter(facade).ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
		if string(gotPayload) != `{"type":"payment_intent.succeeded"}` || gotSignature != "t=1,v1=good" {
			t.Fatalf("raw payload not passed through: %q %q", gotPayload, gotSignature)
		}
	})
}
