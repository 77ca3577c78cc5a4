package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/shared/apperr"
)

const (
	csrfCookieName = "admin_csrf"
	CSRFFormField  = "csrf_token"
	CtxKeyCSRF     = "csrf_token"
)

// CSRF implements the double submit pattern: a random token lives in
// its own cookie and every POST form must echo it back in a hidden
// field. The token is per browser, not per request.
func CSRF(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(csrfCookieName)
		if err != nil || len(tok) != 64 {
			tok = newCSRFToken()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(csrfCookieName, tok, 0, "/", "", secure, true)
		}
		c.Set(CtxKeyCSRF, tok)

		if c.Request.Method == http.MethodPost {
			field := c.PostForm(CSRFFormField)
			if subtle.ConstantTimeCompare([]byte(field), []byte(tok)) != 1 {
				Fail(c, apperr.ForbiddenErr("The form expired. Go back and try again."))
				return
			}
		}

		c.Next()
	}
}

func GetCSRFToken(c *gin.Context) string {
	if v, ok := c.Get(CtxKeyCSRF); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func newCSRFToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
