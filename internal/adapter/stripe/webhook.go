package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSignature indicates the webhook payload failed verification and
// must not be trusted.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// EventPaymentSucceeded is the event type delivered after a captured charge.
const EventPaymentSucceeded = "payment_intent.succeeded"

// DefaultTolerance bounds the accepted age of a signed webhook payload.
const DefaultTolerance = 5 * time.Minute

// Event is a verified webhook notification.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// PaymentIntentID extracts the payment session id from the event object.
func (e *Event) PaymentIntentID() string {
	var object struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(e.Data.Object, &object); err != nil {
		return ""
	}
	return object.ID
}

// ConstructEvent verifies the signature header against the shared secret and
// decodes the payload. The payload is never inspected before the signature
// checks out.
func ConstructEvent(payload []byte, sigHeader, secret string) (*Event, error) {
	return constructEvent(payload, sigHeader, secret, DefaultTolerance, time.Now)
}

func constructEvent(payload []byte, sigHeader, secret string, tolerance time.Duration, now func() time.Time) (*Event, error) {
	if sigHeader == "" || secret == "" {
		return nil, ErrInvalidSignature
	}

	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}

	age := now().Sub(time.Unix(timestamp, 0))
	if age > tolerance || age < -tolerance {
		return nil, ErrInvalidSignature
	}

	expected := computeSignature(payload, timestamp, secret)
	verified := false
	for _, sig := range signatures {
		if hmac.Equal(expected, sig) {
			verified = true
			break
		}
	}
	if !verified {
		return nil, ErrInvalidSignature
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// parseSignatureHeader decodes "t=<unix>,v1=<hex>[,v1=<hex>...]".
func parseSignatureHeader(header string) (int64, [][]byte, error) {
	var (
		timestamp  int64
		signatures [][]byte
	)

	for _, pair := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignature
			}
			timestamp = ts
		case "v1":
			sig, err := hex.DecodeString(value)
			if err != nil {
				continue
			}
			signatures = append(signatures, sig)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, ErrInvalidSignature
	}
	return timestamp, signatures, nil
}

func computeSignature(payload []byte, timestamp int64, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}
