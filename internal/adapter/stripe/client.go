package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.stripe.com"

// ErrNotConfigured indicates the payment processor has no secret key set.
var ErrNotConfigured = errors.New("stripe is not configured")

// APIError represents a rejection reported by the payment processor.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stripe: %d %s", e.StatusCode, e.Message)
}

// PaymentIntent is the processor-side session for an in-progress charge.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// Succeeded reports whether the intent finished with a captured charge.
func (p *PaymentIntent) Succeeded() bool {
	return p.Status == "succeeded"
}

// Client exposes payment session operations.
type Client interface {
	Configured() bool
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

// HTTPClient implements Client against the Stripe REST API.
type HTTPClient struct {
	secretKey string
	rest      *resty.Client
	logger    *slog.Logger
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Option customizes the HTTP client.
type Option func(*HTTPClient)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *HTTPClient) {
		c.rest.SetBaseURL(baseURL)
	}
}

// NewHTTPClient creates a Stripe client with default timeout. An empty secret
// key yields a client that fails every call with ErrNotConfigured.
func NewHTTPClient(secretKey string, logger *slog.Logger, opts ...Option) *HTTPClient {
	rest := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/json")

	client := &HTTPClient{secretKey: secretKey, rest: rest, logger: logger}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Configured reports whether a secret key is present.
func (c *HTTPClient) Configured() bool {
	return c.secretKey != ""
}

// CreatePaymentIntent opens a payment session for the given amount in minor
// currency units.
func (c *HTTPClient) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*PaymentIntent, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var intent PaymentIntent
	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(c.secretKey).
		SetFormData(map[string]string{
			"amount":   strconv.FormatInt(amount, 10),
			"currency": currency,
		}).
		SetResult(&intent).
		Post("/v1/payment_intents")
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, c.apiError(resp)
	}

	return &intent, nil
}

// GetPaymentIntent fetches the current state of a payment session.
func (c *HTTPClient) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var intent PaymentIntent
	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(c.secretKey).
		SetResult(&intent).
		Get("/v1/payment_intents/" + id)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, c.apiError(resp)
	}

	return &intent, nil
}

func (c *HTTPClient) apiError(resp *resty.Response) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil || envelope.Error.Message == "" {
		envelope.Error.Message = resp.Status()
	}
	c.logger.Error("stripe request failed",
		slog.Int("status", resp.StatusCode()),
		slog.String("code", envelope.Error.Code),
	)
	return &APIError{StatusCode: resp.StatusCode(), Code: envelope.Error.Code, Message: envelope.Error.Message}
}
