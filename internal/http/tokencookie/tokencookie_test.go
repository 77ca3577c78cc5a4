package tokencookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCodec_SetAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := New(false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	codec.Set(c, "tok-abc")

	res := w.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != Name || ck.Value != "tok-abc" {
		t.Errorf("unexpected cookie %s=%s", ck.Name, ck.Value)
	}
	if !ck.HttpOnly {
		t.Error("expected HttpOnly")
	}
	if ck.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite=Lax, got %v", ck.SameSite)
	}
	if ck.MaxAge != int(Lifetime.Seconds()) {
		t.Errorf("expected 7 day max age, got %d", ck.MaxAge)
	}
	if ck.Path != "/" {
		t.Errorf("expected path /, got %q", ck.Path)
	}

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(&http.Cookie{Name: Name, Value: "tok-abc"})

	got, ok := codec.Get(c2)
	if !ok || got != "tok-abc" {
		t.Errorf("expected token back, got %q ok=%v", got, ok)
	}
}

func TestCodec_GetMissingOrBlank(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := New(false)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := codec.Get(c); ok {
		t.Error("expected no token without cookie")
	}

	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(&http.Cookie{Name: Name, Value: "   "})
	if _, ok := codec.Get(c2); ok {
		t.Error("expected blank cookie to count as missing")
	}
}

func TestCodec_Clear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := New(false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	codec.Clear(c)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge != -1 || cookies[0].Value != "" {
		t.Errorf("expected expired empty cookie, got MaxAge=%d Value=%q", cookies[0].MaxAge, cookies[0].Value)
	}
}
