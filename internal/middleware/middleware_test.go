package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"greencart/internal/domain"
	"greencart/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	claims map[string]*service.Claims
}

func (v stubVerifier) VerifyToken(token string) (*service.Claims, error) {
	if c, ok := v.claims[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

func newVerifier() stubVerifier {
	return stubVerifier{claims: map[string]*service.Claims{
		"admin-token": {Role: domain.UserRoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Subject: "u-admin"}},
		"mgr-token":   {Role: domain.UserRoleManager, RegisteredClaims: jwt.RegisteredClaims{Subject: "u-mgr"}},
	}}
}

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	router := gin.New()
	router.Use(Authenticate(newVerifier()))
	router.GET("/who", func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		c.String(http.StatusOK, claims.Subject)
	})

	testCases := []struct {
		name     string
		path     string
		headers  map[string]string
		wantCode int
		wantBody string
	}{
		{"no token", "/who", nil, http.StatusUnauthorized, ""},
		{"bad token", "/who", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized, ""},
		{"wrong scheme", "/who", map[string]string{"Authorization": "Basic admin-token"}, http.StatusUnauthorized, ""},
		{"bearer header", "/who", map[string]string{"Authorization": "Bearer admin-token"}, http.StatusOK, "u-admin"},
		{"lowercase scheme", "/who", map[string]string{"Authorization": "bearer mgr-token"}, http.StatusOK, "u-mgr"},
		{"query token", "/who?token=mgr-token", nil, http.StatusOK, "u-mgr"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(router, http.MethodGet, tc.path, tc.headers)
			if w.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, w.Code)
			}
			if tc.wantBody != "" && w.Body.String() != tc.wantBody {
				t.Errorf("expected body %q, got %q", tc.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	router := gin.New()
	router.Use(Authenticate(newVerifier()))
	router.DELETE("/thing", RequireRole(domain.UserRoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := serve(router, http.MethodDelete, "/thing", map[string]string{"Authorization": "Bearer mgr-token"})
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for manager, got %d", w.Code)
	}

	w = serve(router, http.MethodDelete, "/thing", map[string]string{"Authorization": "Bearer admin-token"})
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for admin, got %d", w.Code)
	}
}

func TestRateLimiter_PerClient(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("a") || !limiter.Allow("a") {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if limiter.Allow("a") {
		t.Error("expected third request to be rejected")
	}
	if !limiter.Allow("b") {
		t.Error("expected other client to have its own budget")
	}

	now = now.Add(time.Second)
	if !limiter.Allow("a") {
		t.Error("expected a token to refill after one second")
	}
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("a")
	now = now.Add(visitorIdleTimeout + 2*time.Minute)
	limiter.Allow("b")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.visitors["a"]; ok {
		t.Error("expected idle client to be evicted")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitMiddleware(NewRateLimiter(0.001, 1)))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := serve(router, http.MethodGet, "/", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w := serve(router, http.MethodGet, "/", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "too many requests") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware("http://localhost:3000"))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, http.MethodOptions, "/", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected preflight 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("unexpected origin header %q", got)
	}

	w = serve(router, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestIdempotencyMiddleware_Replays(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	var calls int32
	router := gin.New()
	router.Use(IdempotencyMiddleware(client))
	router.POST("/v1/simulations", func(c *gin.Context) {
		n := atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusCreated, gin.H{"run": n})
	})

	first := serve(router, http.MethodPost, "/v1/simulations", map[string]string{idempotencyHeader: "k1"})
	second := serve(router, http.MethodPost, "/v1/simulations", map[string]string{idempotencyHeader: "k1"})

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Errorf("expected replay of %d %s, got %d %s", first.Code, first.Body.String(), second.Code, second.Body.String())
	}
	if second.Header().Get(replayedHeader) != "true" {
		t.Error("expected replay header")
	}

	serve(router, http.MethodPost, "/v1/simulations", map[string]string{idempotencyHeader: "k2"})
	serve(router, http.MethodPost, "/v1/simulations", nil)
	if calls != 3 {
		t.Errorf("expected new key and missing key to run the handler, ran %d times", calls)
	}
}

func TestIdempotencyMiddleware_SkipsClientErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	var calls int32
	router := gin.New()
	router.Use(IdempotencyMiddleware(client))
	router.POST("/v1/simulations", func(c *gin.Context) {
		if atomic.AddInt32(&calls, 1) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "available_drivers must be positive"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	first := serve(router, http.MethodPost, "/v1/simulations", map[string]string{idempotencyHeader: "k"})
	second := serve(router, http.MethodPost, "/v1/simulations", map[string]string{idempotencyHeader: "k"})

	if first.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", first.Code)
	}
	if calls != 2 || second.Code != http.StatusCreated {
		t.Errorf("expected corrected retry to run, ran %d times with %d", calls, second.Code)
	}
	if second.Header().Get(replayedHeader) != "" {
		t.Error("expected a fresh response, not a replay")
	}
	if len(mr.Keys()) != 1 {
		t.Errorf("expected only the 201 to be stored, got keys %v", mr.Keys())
	}
}

func TestIdempotencyMiddleware_SkipsServerErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	var calls int32
	router := gin.New()
	router.Use(IdempotencyMiddleware(client))
	router.POST("/x", func(c *gin.Context) {
		atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})

	serve(router, http.MethodPost, "/x", map[string]string{idempotencyHeader: "k"})
	serve(router, http.MethodPost, "/x", map[string]string{idempotencyHeader: "k"})

	if calls != 2 {
		t.Errorf("expected retries after a server error to run again, ran %d times", calls)
	}
}
