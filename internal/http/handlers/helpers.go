package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/internal/http/middleware"
	"github.com/Marat1506/apple-admin/internal/shared/apperr"
	"github.com/Marat1506/apple-admin/pkg/view"
)

// normalizeReturnTo validates and sanitizes the return_to parameter.
// Open redirect protection: only relative paths are accepted.
func normalizeReturnTo(s string) string {
	if s == "" {
		return ""
	}
	if s[0] != '/' {
		return ""
	}
	// protocol-relative ("//evil.com") is not a path
	if len(s) >= 2 && s[0:2] == "//" {
		return ""
	}
	if containsScheme(s) {
		return ""
	}
	return s
}

func containsScheme(s string) bool {
	for i := 0; i+2 < len(s); i++ {
		if s[i] == ':' && s[i+1] == '/' && s[i+2] == '/' {
			return true
		}
	}
	return false
}

// basePage assembles the layout fields every page shares.
func basePage(c *gin.Context, title, active string) view.Base {
	b := view.Base{
		Title:  title,
		Active: active,
		Flash:  middleware.GetFlash(c),
		CSRF:   middleware.GetCSRFToken(c),
	}
	if u, ok := middleware.CurrentUser(c); ok {
		b.Admin = &view.Admin{Name: u.Name, Email: u.Email}
	}
	return b
}

// apiClient returns the request's token scoped storefront client.
// Routes calling it sit behind RequireAdmin, so a miss means the route
// table is wired wrong.
func apiClient(c *gin.Context) (*api.Client, bool) {
	cl, ok := middleware.APIClient(c)
	if !ok {
		middleware.Fail(c, apperr.Wrap(errors.New("handlers: no api client in context")))
		return nil, false
	}
	return cl, true
}

// abortOnAuth routes rejected tokens to the global error handler,
// which signs the admin out. Returns true when the response is taken
// over.
func abortOnAuth(c *gin.Context, err error) bool {
	if errors.Is(err, api.ErrUnauthorized) {
		middleware.Fail(c, err)
		return true
	}
	return false
}

func errorFlash(msg string) *view.Flash {
	return &view.Flash{Kind: view.FlashError, Message: msg}
}

// apiMessage surfaces the backend's own error message when it sent
// one, so the admin sees "Slug already in use" instead of a generic
// failure.
func apiMessage(err error, fallback string) string {
	var ae *api.Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// upstreamStatus picks the status for re-rendering a form after the
// backend rejected a write. Client errors pass through; everything
// else reads as a bad gateway.
func upstreamStatus(err error) int {
	var ae *api.Error
	if errors.As(err, &ae) && ae.Status >= 400 && ae.Status < 500 {
		return ae.Status
	}
	return http.StatusBadGateway
}

// assetURL resolves storefront-relative upload paths ("/uploads/x.jpg")
// against the API host. Absolute URLs pass through untouched.
func assetURL(apiBase, p string) string {
	if p == "" || strings.Contains(p, "://") {
		return p
	}
	host := strings.TrimSuffix(strings.TrimRight(apiBase, "/"), "/api")
	return strings.TrimRight(host, "/") + "/" + strings.TrimLeft(p, "/")
}

// formFiles pulls the uploaded files for one multipart field. A
// non-multipart submit just means nothing was attached.
func formFiles(c *gin.Context, field string) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return form.File[field], nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinCSV(xs []string) string {
	return strings.Join(xs, ", ")
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func joinLines(xs []string) string {
	return strings.Join(xs, "\n")
}
