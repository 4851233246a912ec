package auth

import (
	"strings"
	"testing"
	"time"
)

func fixedSessions(secret string, ttl time.Duration, now time.Time) *HMACSessions {
	s := NewHMACSessions(secret, Options{TTL: ttl})
	s.now = func() time.Time { return now }
	return s
}

func TestIssueAndVerify(t *testing.T) {
	sessions := NewHMACSessions("secret", Options{TTL: time.Hour})

	token, err := sessions.Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !strings.Contains(token, ".") {
		t.Fatalf("token missing signature separator: %q", token)
	}
	if err := sessions.Verify(token); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	sessions := fixedSessions("secret", time.Hour, issued)

	token, err := sessions.Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	sessions.now = time.Now
	if err := sessions.Verify(token); err != ErrInvalidSession {
		t.Fatalf("expected invalid session, got %v", err)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer := NewHMACSessions("secret-a", Options{TTL: time.Hour})
	verifier := NewHMACSessions("secret-b", Options{TTL: time.Hour})

	token, err := issuer.Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := verifier.Verify(token); err != ErrInvalidSession {
		t.Fatalf("expected invalid session, got %v", err)
	}
}

func TestVerifyRejectsMalformedTokens(t *testing.T) {
	sessions := NewHMACSessions("secret", Options{TTL: time.Hour})

	for _, token := range []string{"", "no-separator", ".sig", "payload.", "a.b.c"} {
		if err := sessions.Verify(token); err != ErrInvalidSession {
			t.Fatalf("token %q: expected invalid session, got %v", token, err)
		}
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	sessions := NewHMACSessions("secret", Options{TTL: time.Hour})

	token, err := sessions.Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.SplitN(token, ".", 2)
	forged := "eyJleHAiOjk5OTk5OTk5OTl9." + parts[1]
	if err := sessions.Verify(forged); err != ErrInvalidSession {
		t.Fatalf("expected invalid session, got %v", err)
	}
}

func TestDefaultTTLApplied(t *testing.T) {
	sessions := NewHMACSessions("secret", Options{})
	if sessions.ttl != 12*time.Hour {
		t.Fatalf("unexpected default ttl %v", sessions.ttl)
	}
}
