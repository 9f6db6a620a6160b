package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/session"
	testhelpers "github.com/Shanthi551/telecom-data-plan/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func bearer(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthRequired(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired(testhelpers.DashboardFacadeStub{}))
	router.GET("/", func(c *gin.Context) {})
	if resp := serve(router, httptest.NewRequest(http.MethodGet, "/", nil)); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
	if resp := serve(router, bearer("wrong")); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", resp.Code)
	}

	router = gin.New()
	router.Use(AuthRequired(testhelpers.DashboardFacadeStub{AuthorizeFn: func(context.Context, string) (*model.Session, *model.User, error) {
		return nil, nil, context.DeadlineExceeded
	}}))
	router.GET("/", func(c *gin.Context) {})
	if resp := serve(router, bearer("token")); resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var (
		storedUser    *model.User
		storedSession *model.Session
	)
	router = gin.New()
	router.Use(AuthRequired(testhelpers.DashboardFacadeStub{Actor: &model.User{ID: 42, Role: model.RoleAnalyst}}))
	router.GET("/", func(c *gin.Context) {
		if v, ok := c.Get(UserContextKey); ok {
			storedUser = v.(*model.User)
		}
		if v, ok := c.Get(SessionContextKey); ok {
			storedSession = v.(*model.Session)
		}
		c.Status(http.StatusOK)
	})
	if resp := serve(router, bearer("token")); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if storedUser == nil || storedUser.ID != 42 {
		t.Fatalf("expected user 42, got %+v", storedUser)
	}
	if storedSession == nil || storedSession.ID != "sid" {
		t.Fatalf("expected session sid, got %+v", storedSession)
	}
}

func TestAuthRequiredMapsUnauthorized(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired(testhelpers.DashboardFacadeStub{AuthorizeFn: func(context.Context, string) (*model.Session, *model.User, error) {
		return nil, nil, domainErrors.ErrUnauthorized
	}}))
	router.GET("/", func(c *gin.Context) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: "expired"})
	if resp := serve(router, req); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRequirePage(t *testing.T) {
	build := func(u *model.User) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if u != nil {
				c.Set(UserContextKey, u)
			}
		})
		router.Use(RequirePage(session.PageRoles))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	cases := []struct {
		name   string
		user   *model.User
		status int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"customer", &model.User{Role: model.RoleCustomer}, http.StatusForbidden},
		{"analyst", &model.User{Role: model.RoleAnalyst}, http.StatusForbidden},
		{"admin", &model.User{Role: model.RoleAdmin}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := serve(build(tc.user), httptest.NewRequest(http.MethodGet, "/", nil))
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestSetAndClearAuthCookie(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	SetAuthCookie(c, "token", 60)
	if got := recorder.Header().Get("Authorization"); got != "Bearer token" {
		t.Fatalf("expected auth header, got %q", got)
	}
	result := recorder.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	cookies := result.Cookies()
	if len(cookies) == 0 || cookies[0].Value != "token" || cookies[0].MaxAge != 60 || !cookies[0].HttpOnly {
		t.Fatalf("expected cookie with token, got %+v", cookies)
	}

	recorder = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(recorder)
	ClearAuthCookie(c)
	cleared := recorder.Result()
	t.Cleanup(func() {
		_ = cleared.Body.Close()
	})
	if cookies := cleared.Cookies(); len(cookies) == 0 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", cookies)
	}
}

func TestExtractToken(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	if token := extractToken(c); token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
	c.Request.Header.Set("Authorization", "Bearer abc")
	if token := extractToken(c); token != "abc" {
		t.Fatalf("expected token from header, got %q", token)
	}
	c.Request.Header.Del("Authorization")
	c.Request.AddCookie(&http.Cookie{Name: authCookieName, Value: "cookie"})
	if token := extractToken(c); token != "cookie" {
		t.Fatalf("expected token from cookie, got %q", token)
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	var seen string
	router.GET("/", func(c *gin.Context) {
		seen = c.GetString(RequestIDHeader)
		c.Status(http.StatusOK)
	})

	resp := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || resp.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected generated request id, got %q / %q", seen, resp.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp = serve(router, req)
	if seen != "abc-123" || resp.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected incoming request id to be kept, got %q", seen)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	router.Use(func(c *gin.Context) { c.Set(UserContextKey, &model.User{ID: 77}) })
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(router, httptest.NewRequest(http.MethodGet, "/ok", nil))
	line := buf.String()
	for _, want := range []string{`"level":"INFO"`, `"path":"/ok"`, `"status":200`, `"user_id":77`, `"request_id":`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in log line %s", want, line)
		}
	}

	buf.Reset()
	serve(router, httptest.NewRequest(http.MethodGet, "/fail", nil))
	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Fatalf("expected error level for 5xx, got %s", buf.String())
	}
}

func TestRateLimit(t *testing.T) {
	limiter := NewClientLimiter(60, 2)
	router := gin.New()
	router.POST("/login", RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		return serve(router, req)
	}

	for i := 0; i < 2; i++ {
		if resp := send("10.0.0.1"); resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.Code)
		}
	}
	resp := send("10.0.0.1")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
	if resp := send("10.0.0.2"); resp.Code != http.StatusOK {
		t.Fatalf("other clients must not be limited, got %d", resp.Code)
	}
}

func TestClientLimiterReusesBuckets(t *testing.T) {
	l := NewClientLimiter(0, 0)
	a := l.Limiter("a")
	if a != l.Limiter("a") {
		t.Fatal("expected the same limiter for the same key")
	}
	if a == l.Limiter("b") {
		t.Fatal("expected separate limiters per key")
	}
	if a.Burst() != 1 {
		t.Fatalf("expected burst normalized to 1, got %d", a.Burst())
	}
	if a.Limit() != rate.Every(time.Minute) {
		t.Fatalf("expected one event per minute, got %v", a.Limit())
	}
}

func TestDecompressRequest(t *testing.T) {
	router := gin.New()
	router.Use(DecompressRequest())
	var (
		body     string
		encoding string
	)
	router.POST("/", func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		body = string(raw)
		encoding = c.GetHeader("Content-Encoding")
		c.Status(http.StatusOK)
	})

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(`{"plan_id":2}`))
	_ = gz.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	if resp := serve(router, req); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body != `{"plan_id":2}` || encoding != "" {
		t.Fatalf("expected decoded body without encoding header, got %q / %q", body, encoding)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"plan_id":3}`))
	if resp := serve(router, req); resp.Code != http.StatusOK || body != `{"plan_id":3}` {
		t.Fatalf("expected plain body untouched, got %d %q", resp.Code, body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	if resp := serve(router, req); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed gzip, got %d", resp.Code)
	}
}

func TestClientLimiterEvictsIdleClients(t *testing.T) {
	l := NewClientLimiter(60, 2)
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		l.Limiter(ip)
	}
	if n := l.Clients(); n != 3 {
		t.Fatalf("expected 3 tracked clients, got %d", n)
	}

	now = now.Add(30 * time.Second)
	active := l.Limiter("10.0.0.1")
	if n := l.Clients(); n != 3 {
		t.Fatalf("expected no eviction before idle timeout, got %d", n)
	}

	now = now.Add(40 * time.Second)
	if l.Limiter("10.0.0.1") != active {
		t.Fatal("recently seen client must keep its bucket")
	}
	if n := l.Clients(); n != 1 {
		t.Fatalf("expected idle clients evicted, got %d", n)
	}
}
