package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/http/flash"
	"github.com/Marat1506/apple-admin/pkg/view"
)

func TestFlashMiddleware_PopsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := flash.NewCodec([]byte("test-secret"), "admin_flash", false)

	r := gin.New()
	r.Use(FlashMiddleware(codec))
	r.GET("/", func(c *gin.Context) {
		f := GetFlash(c)
		if f == nil {
			c.String(http.StatusOK, "none")
			return
		}
		c.String(http.StatusOK, string(f.Kind)+":"+f.Message)
	})

	val, err := codec.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Saved."})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: codec.CookieName, Value: val})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "success:Saved." {
		t.Errorf("expected flash in context, got %q", w.Body.String())
	}
	if !clearsCookie(w.Result().Cookies(), codec.CookieName) {
		t.Error("expected flash cookie cleared after read")
	}
}

func TestFlashMiddleware_ClearsInvalidCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := flash.NewCodec([]byte("test-secret"), "admin_flash", false)

	r := gin.New()
	r.Use(FlashMiddleware(codec))
	r.GET("/", func(c *gin.Context) {
		if GetFlash(c) != nil {
			t.Error("forged cookie must not produce a flash")
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: codec.CookieName, Value: "forged.payload"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !clearsCookie(w.Result().Cookies(), codec.CookieName) {
		t.Error("expected invalid cookie cleared")
	}
}

func TestFlashMiddleware_NoCookieNoFlash(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := flash.NewCodec([]byte("test-secret"), "admin_flash", false)

	r := gin.New()
	r.Use(FlashMiddleware(codec))
	r.GET("/", func(c *gin.Context) {
		if GetFlash(c) != nil {
			t.Error("expected no flash")
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Result().Cookies()) != 0 {
		t.Errorf("expected no cookies written, got %v", w.Result().Cookies())
	}
}
