package auth

import (
	"crypto/subtle"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid admin credentials")

// Guard authenticates the admin console. A caller is admitted either with a
// signed session cookie obtained through Login, or with the shared API token
// header used by automation.
type Guard struct {
	sessions     Sessions
	hasher       PasswordHasher
	apiToken     string
	passwordHash string
}

// NewGuard constructs Guard.
func NewGuard(sessions Sessions, hasher PasswordHasher, apiToken, passwordHash string) *Guard {
	return &Guard{sessions: sessions, hasher: hasher, apiToken: apiToken, passwordHash: passwordHash}
}

// Login verifies the admin password and issues a session token. When no
// password hash is configured the shared API token doubles as the password.
func (g *Guard) Login(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidCredentials
	}

	if g.passwordHash != "" {
		if err := g.hasher.Compare(g.passwordHash, password); err != nil {
			return "", ErrInvalidCredentials
		}
	} else if !g.VerifyAPIToken(password) {
		return "", ErrInvalidCredentials
	}

	return g.sessions.Issue()
}

// VerifySession reports whether a session token is valid.
func (g *Guard) VerifySession(token string) error {
	return g.sessions.Verify(token)
}

// VerifyAPIToken compares the shared admin token in constant time.
func (g *Guard) VerifyAPIToken(token string) bool {
	if g.apiToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.apiToken), []byte(token)) == 1
}
