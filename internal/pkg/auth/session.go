package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

var ErrInvalidSession = errors.New("invalid admin session")

// Sessions issues and verifies signed admin session tokens.
type Sessions interface {
	Issue() (string, error)
	Verify(token string) error
}

// Options tunes session issuance.
type Options struct {
	TTL time.Duration
}

// HMACSessions implements Sessions with HMAC-SHA256 signed payloads. A token
// is base64url(JSON{exp}) + "." + base64url signature of the first part.
type HMACSessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type sessionPayload struct {
	Exp int64 `json:"exp"`
}

// NewHMACSessions builds HMACSessions with provided secret and options.
func NewHMACSessions(secret string, opts Options) *HMACSessions {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &HMACSessions{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue generates a signed session token.
func (s *HMACSessions) Issue() (string, error) {
	payload, err := json.Marshal(sessionPayload{Exp: s.now().Add(s.ttl).Unix()})
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + s.sign(encoded), nil
}

// Verify checks the token signature and expiry.
func (s *HMACSessions) Verify(token string) error {
	encoded, sig, ok := splitToken(token)
	if !ok {
		return ErrInvalidSession
	}

	if !hmac.Equal([]byte(s.sign(encoded)), []byte(sig)) {
		return ErrInvalidSession
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return ErrInvalidSession
	}

	var payload sessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ErrInvalidSession
	}

	if payload.Exp == 0 || time.Unix(payload.Exp, 0).Before(s.now()) {
		return ErrInvalidSession
	}

	return nil
}

func (s *HMACSessions) sign(encoded string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func splitToken(token string) (payload, sig string, ok bool) {
	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			if i == 0 || i == len(token)-1 {
				return "", "", false
			}
			return token[:i], token[i+1:], true
		}
	}
	return "", "", false
}
