package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/internal/http/flash"
	"github.com/Marat1506/apple-admin/internal/http/tokencookie"
	"github.com/Marat1506/apple-admin/internal/session"
	"github.com/Marat1506/apple-admin/internal/shared/apperr"
	"github.com/Marat1506/apple-admin/pkg/view"
)

// Fail records err on the context and stops the handler chain; the
// error handler turns it into a response.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler turns errors collected during the request into a
// response. A 401 from the storefront API means the token died mid
// session: the local session and cookie are dropped exactly once and
// the admin restarts at the login page. Everything else renders a
// minimal error page; the full layout is off limits here because the
// failure may have come from rendering itself.
func ErrorHandler(l *slog.Logger, store *session.Store, tokens *tokencookie.Codec, flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		rid := GetRequestID(c)

		if errors.Is(err, api.ErrUnauthorized) {
			if tok, ok := tokens.Get(c); ok {
				if derr := store.Delete(c.Request.Context(), tok); derr != nil {
					l.LogAttrs(c.Request.Context(), slog.LevelWarn, "session_delete_failed",
						slog.String("request_id", rid),
						slog.Any("err", derr),
					)
				}
			}
			tokens.Clear(c)

			l.LogAttrs(c.Request.Context(), slog.LevelWarn, "api_token_rejected",
				slog.String("request_id", rid),
				slog.String("path", c.Request.URL.Path),
			)

			// Never redirect /login to itself: a 401 there is a failed
			// credential check and renders as a plain error below.
			if c.Request.URL.Path != "/login" {
				SetFlashCookie(c, flashCodec, view.Flash{
					Kind:    view.FlashWarning,
					Message: "Your session has expired. Please sign in again.",
				})
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
		}

		status := apperr.HTTPStatus(err)
		publicMsg := apperr.PublicMessage(err)

		l.LogAttrs(c.Request.Context(), slog.LevelError, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		c.Abort()
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(status, fmt.Sprintf("<html><body><h1>%d %s</h1><p>%s</p><p>Request ID: %s</p></body></html>",
			status, http.StatusText(status), publicMsg, rid))
	}
}
