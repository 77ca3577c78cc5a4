package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/http/flash"
	"github.com/Marat1506/apple-admin/internal/http/tokencookie"
)

func newCSRFEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, _ := testStore(t)
	flashCodec := flash.NewCodec([]byte("s"), "admin_flash", false)

	r := gin.New()
	r.Use(ErrorHandler(testLogger(), store, tokencookie.New(false), flashCodec))
	r.Use(CSRF(false))
	r.GET("/form", func(c *gin.Context) {
		c.String(http.StatusOK, GetCSRFToken(c))
	})
	r.POST("/save", func(c *gin.Context) {
		c.String(http.StatusOK, "saved")
	})
	return r
}

func TestCSRF_IssuesTokenOnGet(t *testing.T) {
	r := newCSRFEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	tok := w.Body.String()
	if len(tok) != 64 {
		t.Errorf("expected 64 char token, got %q", tok)
	}
	var issued bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == csrfCookieName && ck.Value == tok {
			issued = true
		}
	}
	if !issued {
		t.Error("expected csrf cookie matching the page token")
	}
}

func TestCSRF_AllowsMatchingPost(t *testing.T) {
	r := newCSRFEngine(t)

	// First request obtains the token.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))
	tok := w.Body.String()

	form := url.Values{CSRFFormField: {tok}}
	req := httptest.NewRequest(http.MethodPost, "/save", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: tok})

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK || w2.Body.String() != "saved" {
		t.Errorf("expected post accepted, got %d %q", w2.Code, w2.Body.String())
	}
}

func TestCSRF_RejectsMissingOrWrongToken(t *testing.T) {
	r := newCSRFEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))
	tok := w.Body.String()

	// No form field at all.
	req := httptest.NewRequest(http.MethodPost, "/save", nil)
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: tok})
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusForbidden {
		t.Errorf("expected 403 without form token, got %d", w2.Code)
	}

	// Mismatched form field.
	form := url.Values{CSRFFormField: {strings.Repeat("0", 64)}}
	req2 := httptest.NewRequest(http.MethodPost, "/save", strings.NewReader(form.Encode()))
	req2.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req2.AddCookie(&http.Cookie{Name: csrfCookieName, Value: tok})
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req2)
	if w3.Code != http.StatusForbidden {
		t.Errorf("expected 403 for wrong token, got %d", w3.Code)
	}
}
