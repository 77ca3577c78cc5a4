package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/internal/http/flash"
	"github.com/Marat1506/apple-admin/internal/http/middleware"
	"github.com/Marat1506/apple-admin/internal/http/render"
	"github.com/Marat1506/apple-admin/internal/http/tokencookie"
	"github.com/Marat1506/apple-admin/internal/http/validation"
	"github.com/Marat1506/apple-admin/internal/session"
	"github.com/Marat1506/apple-admin/pkg/view"
)

// AuthHandler signs admins in against the storefront API and manages
// the local session cache.
type AuthHandler struct {
	API    *api.Client
	Store  *session.Store
	Tokens *tokencookie.Codec
	Flash  *flash.Codec
	Render *render.Renderer
}

func NewAuthHandler(apiClient *api.Client, store *session.Store, tokens *tokencookie.Codec, f *flash.Codec, r *render.Renderer) *AuthHandler {
	return &AuthHandler{API: apiClient, Store: store, Tokens: tokens, Flash: f, Render: r}
}

func (h *AuthHandler) loginPage(c *gin.Context, email, returnTo string, errs validation.FieldErrors) view.LoginPage {
	return view.LoginPage{
		Base:     basePage(c, "Sign in", ""),
		Email:    email,
		ReturnTo: returnTo,
		Errors:   errs,
	}
}

func (h *AuthHandler) LoginGet(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	returnTo := normalizeReturnTo(c.Query("return_to"))
	h.Render.HTML(c, http.StatusOK, "login", h.loginPage(c, "", returnTo, nil))
}

type loginInput struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func (h *AuthHandler) LoginPost(c *gin.Context) {
	returnTo := normalizeReturnTo(c.PostForm("return_to"))

	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		h.Render.HTML(c, http.StatusBadRequest, "login", h.loginPage(c, in.Email, returnTo, errs))
		return
	}

	ctx := c.Request.Context()
	res, err := h.API.Login(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.Render.HTML(c, http.StatusUnauthorized, "login", h.loginPage(c, in.Email, returnTo,
				validation.FieldErrors{"_": "Email or password is incorrect."}))
			return
		}
		h.Render.HTML(c, upstreamStatus(err), "login", h.loginPage(c, in.Email, returnTo,
			validation.FieldErrors{"_": apiMessage(err, "The storefront API is not reachable right now.")}))
		return
	}

	user := res.User
	if user == nil {
		// Some deployments return only the token; ask who it belongs to.
		u, merr := h.API.WithToken(res.Token).Me(ctx)
		if merr != nil {
			h.Render.HTML(c, upstreamStatus(merr), "login", h.loginPage(c, in.Email, returnTo,
				validation.FieldErrors{"_": apiMessage(merr, "The storefront API is not reachable right now.")}))
			return
		}
		user = u
	}

	if user.Role != api.RoleAdmin {
		h.Render.HTML(c, http.StatusForbidden, "login", h.loginPage(c, in.Email, returnTo,
			validation.FieldErrors{"_": "This account does not have administrator access."}))
		return
	}

	if _, err := h.Store.Create(ctx, res.Token, *user); err != nil {
		middleware.Fail(c, err)
		return
	}
	h.Tokens.Set(c, res.Token)

	dest := "/"
	if returnTo != "" {
		dest = returnTo
	}
	render.RedirectWithFlash(c, h.Flash, dest, view.FlashSuccess, "Signed in as "+user.Name+".")
}

func (h *AuthHandler) LogoutPost(c *gin.Context) {
	if token, ok := middleware.CurrentToken(c); ok {
		_ = h.Store.Delete(c.Request.Context(), token)
	}
	h.Tokens.Clear(c)
	render.RedirectWithFlash(c, h.Flash, "/login", view.FlashInfo, "Signed out.")
}
