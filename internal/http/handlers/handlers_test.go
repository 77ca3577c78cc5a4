package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/internal/config"
	apphttp "github.com/Marat1506/apple-admin/internal/http"
	"github.com/Marat1506/apple-admin/internal/http/flash"
	"github.com/Marat1506/apple-admin/internal/http/tokencookie"
	"github.com/Marat1506/apple-admin/internal/session"
	"github.com/Marat1506/apple-admin/pkg/view"
)

const (
	testSecret = "handlers-test-secret"
	testCSRF   = "cccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc"
)

// backend fakes the storefront REST API. Tests register routes as
// "METHOD /path"; /users/me is always served from the me field.
type backend struct {
	mu     sync.Mutex
	me     api.User
	routes map[string]http.HandlerFunc
	calls  map[string]int
}

func newBackend() *backend {
	return &backend{
		me:     api.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "admin"},
		routes: map[string]http.HandlerFunc{},
		calls:  map[string]int{},
	}
}

func (b *backend) handle(key string, fn http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[key] = fn
}

func (b *backend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[key]
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	b.mu.Lock()
	b.calls[key]++
	fn := b.routes[key]
	me := b.me
	b.mu.Unlock()

	if fn != nil {
		fn(w, r)
		return
	}
	if key == "GET /users/me" {
		writeJSON(w, http.StatusOK, me)
		return
	}
	http.NotFound(w, r)
}

// writeJSON responds the way the storefront does: payload wrapped in a
// {data, timestamp} envelope.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data":      data,
		"timestamp": time.Now().UnixMilli(),
	})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T, b *backend) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	db, err := session.Open(config.DBConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "console.db"),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	store := session.NewStore(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Env:       "test",
		SecretKey: testSecret,
		API:       config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5},
	}
	r, err := apphttp.NewRouter(cfg, testLogger(), db, api.New(srv.Client(), srv.URL))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return r, store
}

// signIn seeds a fresh session so requests carrying the returned token
// resolve without touching the backend.
func signIn(t *testing.T, store *session.Store) string {
	t.Helper()
	token := "test-token-1"
	u := api.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "admin"}
	if _, err := store.Create(context.Background(), token, u); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return token
}

func doGet(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: tokencookie.Name, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doPost(t *testing.T, r *gin.Engine, path, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", testCSRF)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "admin_csrf", Value: testCSRF})
	if token != "" {
		req.AddCookie(&http.Cookie{Name: tokencookie.Name, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doPostRaw(t *testing.T, r *gin.Engine, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(&http.Cookie{Name: "admin_csrf", Value: testCSRF})
	if token != "" {
		req.AddCookie(&http.Cookie{Name: tokencookie.Name, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func popFlash(t *testing.T, w *httptest.ResponseRecorder) *view.Flash {
	t.Helper()
	codec := flash.NewCodec([]byte(testSecret), apphttp.FlashCookieName, false)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == apphttp.FlashCookieName && ck.Value != "" && ck.MaxAge >= 0 {
			f, err := codec.Decode(ck.Value)
			if err != nil {
				t.Fatalf("decode flash cookie: %v", err)
			}
			return f
		}
	}
	return nil
}

func tokenCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == tokencookie.Name {
			return ck
		}
	}
	return nil
}

func wantRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d (body: %.200s)", w.Code, http.StatusFound, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func TestLoginCreatesSessionAndCookie(t *testing.T) {
	b := newBackend()
	b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode login body: %v", err)
		}
		if in.Email != "ada@example.com" || in.Password != "hunter22" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, api.LoginResult{
			Token: "backend-token-9",
			User:  &api.User{ID: "u1", Name: "Ada", Email: in.Email, Role: "admin"},
		})
	})
	r, store := newTestRouter(t, b)

	w := doPost(t, r, "/login", "", url.Values{
		"email":    {"ada@example.com"},
		"password": {"hunter22"},
	})
	wantRedirect(t, w, "/")

	ck := tokenCookie(w)
	if ck == nil || ck.Value != "backend-token-9" {
		t.Fatalf("admin token cookie = %+v, want value backend-token-9", ck)
	}
	if !ck.HttpOnly || ck.MaxAge != int(tokencookie.Lifetime.Seconds()) {
		t.Fatalf("cookie attrs HttpOnly=%v MaxAge=%d", ck.HttpOnly, ck.MaxAge)
	}

	sess, err := store.Lookup(context.Background(), "backend-token-9")
	if err != nil {
		t.Fatalf("session not created: %v", err)
	}
	if sess.UserEmail != "ada@example.com" {
		t.Fatalf("session email = %q", sess.UserEmail)
	}

	if f := popFlash(t, w); f == nil || f.Kind != view.FlashSuccess {
		t.Fatalf("flash = %+v, want success", f)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	b := newBackend()
	b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	})
	r, store := newTestRouter(t, b)

	w := doPost(t, r, "/login", "", url.Values{
		"email":    {"ada@example.com"},
		"password": {"wrong"},
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Email or password is incorrect.") {
		t.Fatalf("body missing credential message: %.300s", w.Body.String())
	}
	if ck := tokenCookie(w); ck != nil {
		t.Fatalf("no token cookie expected, got %+v", ck)
	}
	if _, err := store.Lookup(context.Background(), "backend-token-9"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("no session expected, got err=%v", err)
	}
}

func TestLoginRejectsNonAdminAccount(t *testing.T) {
	b := newBackend()
	b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.LoginResult{
			Token: "customer-token",
			User:  &api.User{ID: "u2", Name: "Cem", Email: "cem@example.com", Role: "customer"},
		})
	})
	r, _ := newTestRouter(t, b)

	w := doPost(t, r, "/login", "", url.Values{
		"email":    {"cem@example.com"},
		"password": {"hunter22"},
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "administrator access") {
		t.Fatalf("body missing access message: %.300s", w.Body.String())
	}
	if ck := tokenCookie(w); ck != nil {
		t.Fatalf("no token cookie expected for non-admin, got %+v", ck)
	}
}

func TestLoginValidatesForm(t *testing.T) {
	b := newBackend()
	r, _ := newTestRouter(t, b)

	w := doPost(t, r, "/login", "", url.Values{"email": {"not-an-email"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Enter a valid email address.") {
		t.Fatalf("body missing email message: %.300s", body)
	}
	if !strings.Contains(body, "This field is required.") {
		t.Fatalf("body missing password message: %.300s", body)
	}
	if b.count("POST /auth/login") != 0 {
		t.Fatal("backend must not be called on a bad form")
	}
}

func TestLoginFollowsReturnTo(t *testing.T) {
	b := newBackend()
	b.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.LoginResult{
			Token: "backend-token-9",
			User:  &api.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "admin"},
		})
	})

	cases := []struct {
		name     string
		returnTo string
		want     string
	}{
		{"relative path", "/orders?status=pending", "/orders?status=pending"},
		{"absolute url rejected", "https://evil.example", "/"},
		{"protocol relative rejected", "//evil.example", "/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := newTestRouter(t, b)
			w := doPost(t, r, "/login", "", url.Values{
				"email":     {"ada@example.com"},
				"password":  {"hunter22"},
				"return_to": {tc.returnTo},
			})
			wantRedirect(t, w, tc.want)
		})
	}
}

func TestLogoutDropsSessionAndCookie(t *testing.T) {
	b := newBackend()
	r, store := newTestRouter(t, b)
	token := signIn(t, store)

	w := doPost(t, r, "/logout", token, nil)
	wantRedirect(t, w, "/login")

	ck := tokenCookie(w)
	if ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("token cookie not cleared: %+v", ck)
	}
	if _, err := store.Lookup(context.Background(), token); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("session still present, err=%v", err)
	}
}

func TestAnonymousIsRedirectedToLogin(t *testing.T) {
	b := newBackend()
	r, _ := newTestRouter(t, b)

	w := doGet(t, r, "/products", "")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login?return_to=") || !strings.Contains(loc, "%2Fproducts") {
		t.Fatalf("Location = %q", loc)
	}
}

func TestPostWithoutCSRFTokenIsRejected(t *testing.T) {
	b := newBackend()
	r, store := newTestRouter(t, b)
	token := signIn(t, store)

	form := url.Values{"confirm": {"1"}}
	req := httptest.NewRequest(http.MethodPost, "/products/p1/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: tokencookie.Name, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if b.count("DELETE /products/p1") != 0 {
		t.Fatal("backend must not see the delete")
	}
}

func TestExpiredTokenMidSessionLogsOut(t *testing.T) {
	b := newBackend()
	b.handle("GET /products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "jwt expired"})
	})
	r, store := newTestRouter(t, b)
	token := signIn(t, store)

	w := doGet(t, r, "/products", token)
	wantRedirect(t, w, "/login")

	ck := tokenCookie(w)
	if ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("token cookie not cleared: %+v", ck)
	}
	if _, err := store.Lookup(context.Background(), token); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("session should be deleted, err=%v", err)
	}
	if f := popFlash(t, w); f == nil || !strings.Contains(f.Message, "expired") {
		t.Fatalf("flash = %+v, want session expired warning", f)
	}
}
