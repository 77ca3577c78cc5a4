package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/internal/http/tokencookie"
	"github.com/Marat1506/apple-admin/internal/session"
)

const (
	CtxKeyUser   = "admin_user"
	CtxKeyToken  = "admin_api_token"
	CtxKeyClient = "admin_api_client"
)

// snapshotMaxAge bounds how long a cached admin snapshot is trusted
// before the token is re-verified against /users/me.
const snapshotMaxAge = 5 * time.Minute

type AuthCfg struct {
	API    *api.Client
	Store  *session.Store
	Tokens *tokencookie.Codec
	Log    *slog.Logger
}

// Authenticate resolves the admin_token cookie into the signed in
// admin. Every request ends in exactly one of two states: anonymous
// (no cookie, or a token the backend no longer honors, or a token
// owned by a non-admin) or authenticated (api.User plus a token
// scoped API client in the context). Rejected tokens are dropped on
// the spot: session row deleted, cookie cleared.
func Authenticate(cfg AuthCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := cfg.Tokens.Get(c)
		if !ok {
			c.Next()
			return
		}
		ctx := c.Request.Context()

		sess, err := cfg.Store.Lookup(ctx, token)
		switch {
		case err == nil && !sess.StaleAfter(snapshotMaxAge):
			setIdentity(c, cfg.API, token, sess.User())

		case err == nil:
			// Snapshot aged out. Ask the backend who the token belongs
			// to before trusting it further.
			u, verr := cfg.API.WithToken(token).Me(ctx)
			if verr != nil || u.Role != api.RoleAdmin {
				cfg.dropToken(c, token, verr)
				break
			}
			if rerr := cfg.Store.Refresh(ctx, token, *u); rerr != nil {
				cfg.Log.LogAttrs(ctx, slog.LevelWarn, "session_refresh_failed",
					slog.String("request_id", GetRequestID(c)),
					slog.Any("err", rerr),
				)
			}
			setIdentity(c, cfg.API, token, *u)

		case errors.Is(err, session.ErrNotFound):
			// Cookie without a session row (restarted console, wiped
			// db). Adopt the token if it still maps to an admin.
			u, verr := cfg.API.WithToken(token).Me(ctx)
			if verr != nil || u.Role != api.RoleAdmin {
				cfg.dropToken(c, token, verr)
				break
			}
			if _, cerr := cfg.Store.Create(ctx, token, *u); cerr != nil {
				cfg.Log.LogAttrs(ctx, slog.LevelWarn, "session_create_failed",
					slog.String("request_id", GetRequestID(c)),
					slog.Any("err", cerr),
				)
			}
			setIdentity(c, cfg.API, token, *u)

		default:
			// Session store outage. Treat the request as anonymous
			// instead of taking the whole console down.
			cfg.Log.LogAttrs(ctx, slog.LevelError, "session_lookup_failed",
				slog.String("request_id", GetRequestID(c)),
				slog.Any("err", err),
			)
		}

		c.Next()
	}
}

func (cfg AuthCfg) dropToken(c *gin.Context, token string, cause error) {
	if err := cfg.Store.Delete(c.Request.Context(), token); err != nil {
		cfg.Log.LogAttrs(c.Request.Context(), slog.LevelWarn, "session_delete_failed",
			slog.String("request_id", GetRequestID(c)),
			slog.Any("err", err),
		)
	}
	cfg.Tokens.Clear(c)

	if cause != nil {
		cfg.Log.LogAttrs(c.Request.Context(), slog.LevelInfo, "token_rejected",
			slog.String("request_id", GetRequestID(c)),
			slog.Any("err", cause),
		)
	}
}

func setIdentity(c *gin.Context, base *api.Client, token string, u api.User) {
	c.Set(CtxKeyUser, u)
	c.Set(CtxKeyToken, token)
	c.Set(CtxKeyClient, base.WithToken(token))
}

// CurrentUser returns the authenticated admin, if any.
func CurrentUser(c *gin.Context) (api.User, bool) {
	if v, ok := c.Get(CtxKeyUser); ok {
		if u, ok := v.(api.User); ok {
			return u, true
		}
	}
	return api.User{}, false
}

func CurrentToken(c *gin.Context) (string, bool) {
	if v, ok := c.Get(CtxKeyToken); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// APIClient returns the request's token scoped storefront client.
// Only present after Authenticate resolved an admin.
func APIClient(c *gin.Context) (*api.Client, bool) {
	if v, ok := c.Get(CtxKeyClient); ok {
		if cl, ok := v.(*api.Client); ok {
			return cl, true
		}
	}
	return nil, false
}
