// Package tokencookie reads and writes the admin_token cookie. The
// cookie carries the storefront bearer token itself so the console can
// replay it against the API; the session store only ever sees a hash.
package tokencookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Name is the cookie the signed in admin carries between requests.
const Name = "admin_token"

// Lifetime matches the session row TTL.
const Lifetime = 7 * 24 * time.Hour

type Codec struct {
	CookieName string
	Secure     bool
}

func New(secure bool) *Codec {
	return &Codec{CookieName: Name, Secure: secure}
}

func (c *Codec) Get(ctx *gin.Context) (string, bool) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

func (c *Codec) Set(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, token, int(Lifetime.Seconds()), "/", "", c.Secure, true)
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}
