package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const adminCookieName = "admin_session"

// AdminVerifier is what the guard middleware needs from the auth layer.
type AdminVerifier interface {
	VerifySession(token string) error
	VerifyAPIToken(token string) bool
}

// AdminRequired accepts either a signed session cookie or the shared-secret
// header before letting a request through.
func AdminRequired(verifier AdminVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(adminCookieName); err == nil {
			if verifier.VerifySession(cookie) == nil {
				c.Next()
				return
			}
		}

		if token := c.GetHeader("X-Admin-Token"); token != "" && verifier.VerifyAPIToken(token) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}

// SetAdminSessionCookie writes the session cookie to the response.
func SetAdminSessionCookie(c *gin.Context, token string) {
	c.SetCookie(adminCookieName, token, 0, "/", "", false, true)
}

// ClearAdminSessionCookie expires the session cookie.
func ClearAdminSessionCookie(c *gin.Context) {
	c.SetCookie(adminCookieName, "", -1, "/", "", false, true)
}
