package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"
)

const testSecret = "whsec_secret"

func sign(payload []byte, ts int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func header(payload []byte, ts int64) string {
	return fmt.Sprintf("t=%d,v1=%s", ts, sign(payload, ts, testSecret))
}

func fixedNow() time.Time {
	return time.Unix(1700000000, 0)
}

func TestConstructEventValidSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)
	ts := fixedNow().Unix()

	event, err := constructEvent(payload, header(payload, ts), testSecret, DefaultTolerance, fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Type != EventPaymentSucceeded {
		t.Fatalf("unexpected type %q", event.Type)
	}
	if event.PaymentIntentID() != "pi_1" {
		t.Fatalf("unexpected intent id %q", event.PaymentIntentID())
	}
}

func TestConstructEventRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)
	ts := fixedNow().Unix()
	sigHeader := header(payload, ts)

	tampered := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_2"}}}`)
	if _, err := constructEvent(tampered, sigHeader, testSecret, DefaultTolerance, fixedNow); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected signature error, got %v", err)
	}
}

func TestConstructEventRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	ts := fixedNow().Unix()
	sigHeader := fmt.Sprintf("t=%d,v1=%s", ts, sign(payload, ts, "whsec_other"))

	if _, err := constructEvent(payload, sigHeader, testSecret, DefaultTolerance, fixedNow); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected signature error, got %v", err)
	}
}

func TestConstructEventRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	ts := fixedNow().Add(-10 * time.Minute).Unix()

	if _, err := constructEvent(payload, header(payload, ts), testSecret, DefaultTolerance, fixedNow); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected stale payload to be rejected, got %v", err)
	}
}

func TestConstructEventRejectsMissingHeaderParts(t *testing.T) {
	payload := []byte(`{}`)
	cases := []string{
		"",
		"t=1700000000",
		"v1=deadbeef",
		"nonsense",
	}
	for _, sigHeader := range cases {
		if _, err := constructEvent(payload, sigHeader, testSecret, DefaultTolerance, fixedNow); !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("header %q: expected signature error, got %v", sigHeader, err)
		}
	}
}

func TestConstructEventAcceptsSecondarySignature(t *testing.T) {
	// key rotation sends multiple v1 entries, any valid one passes
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	ts := fixedNow().Unix()
	sigHeader := fmt.Sprintf("t=%d,v1=deadbeef,v1=%s", ts, sign(payload, ts, testSecret))

	if _, err := constructEvent(payload, sigHeader, testSecret, DefaultTolerance, fixedNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConstructEventEmptySecret(t *testing.T) {
	payload := []byte(`{}`)
	ts := fixedNow().Unix()
	if _, err := constructEvent(payload, header(payload, ts), "", DefaultTolerance, fixedNow); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected signature error with empty secret, got %v", err)
	}
}

func TestPaymentIntentIDMalformedObject(t *testing.T) {
	event := &Event{}
	event.Data.Object = []byte(`"not an object"`)
	if got := event.PaymentIntentID(); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}
