package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/guild-payout-api/internal/metrics"
	"github.com/onerilhan/guild-payout-api/internal/middleware/errors"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestRecoveryMiddleware panic JSON 500 olarak dönmeli, request ID korunmalı
func TestRecoveryMiddleware(t *testing.T) {
	// Arrange
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("beklenmeyen durum")
	})
	handler := RequestLoggingMiddleware(nil)(RecoveryMiddleware(errors.ProductionErrorConfig())(panicking))
	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "req-1", body.RequestID)
	assert.Empty(t, body.Stack)
}

// TestRecoveryMiddleware_APIError APIError panic'i kendi status'unu kullanmalı
func TestRecoveryMiddleware_APIError(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.BadRequest("id", "geçersiz id", nil))
	})
	rec := httptest.NewRecorder()

	RecoveryMiddleware(nil)(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prices/x", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestRequestLoggingMiddleware_GeneratesID header yoksa UUID üretilmeli ve context'e konmalı
func TestRequestLoggingMiddleware_GeneratesID(t *testing.T) {
	var fromCtx string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = RequestIDFromContext(r.Context())
	})
	rec := httptest.NewRecorder()

	RequestLoggingMiddleware(nil)(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members", nil))

	id := rec.Header().Get("X-Request-ID")
	assert.Len(t, id, 36)
	assert.Equal(t, id, fromCtx)
}

// TestCORSMiddleware_Preflight izinli origin için preflight 204 dönmeli
func TestCORSMiddleware_Preflight(t *testing.T) {
	// Arrange
	handler := CORSMiddleware(DefaultCORSConfig([]string{"http://localhost:3000"}))(okHandler())
	req := httptest.NewRequest(http.MethodOptions, "/member/alice", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

// TestCORSMiddleware_UnknownOrigin izinsiz origin header almamalı
func TestCORSMiddleware_UnknownOrigin(t *testing.T) {
	handler := CORSMiddleware(DefaultCORSConfig(nil))(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

// TestRateLimiter burst aşılınca 429 dönmeli
func TestRateLimiter(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, &RateLimitConfig{RequestsPerMinute: 1, Burst: 2})
	handler := rl.Handler(okHandler())

	codes := make([]int, 0, 3)

	// Act
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/members", nil)
		req.RemoteAddr = "10.1.1.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	// Assert
	assert.Equal(t, []int{200, 200, 429}, codes)
}

// TestRateLimiter_SkipPaths health check sınırlanmamalı
func TestRateLimiter_SkipPaths(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, &RateLimitConfig{RequestsPerMinute: 1, Burst: 1, SkipPaths: []string{"/health"}})
	handler := rl.Handler(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

// TestMetricsMiddleware route template etiketi kullanılmalı
func TestMetricsMiddleware(t *testing.T) {
	// Arrange
	m := metrics.New()
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.Handle("/member/{username}", okHandler()).Methods(http.MethodGet)

	// Act
	for _, name := range []string{"alice", "bob"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/member/"+name, nil))
	}

	// Assert
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/member/{username}", "200")))
}

// TestSecurityHeadersMiddleware temel header'lar eklenmeli
func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()

	SecurityHeadersMiddleware(ProductionSecurityConfig())(okHandler()).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Strict-Transport-Security"), "max-age=31536000")
}

// TestNotFoundJSONHandler 404 JSON dönmeli
func TestNotFoundJSONHandler(t *testing.T) {
	rec := httptest.NewRecorder()

	NotFoundJSONHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestShouldSkip(t *testing.T) {
	assert.True(t, shouldSkip("/health", []string{"/health"}))
	assert.True(t, shouldSkip("/debug/vars", []string{"/debug/*"}))
	assert.False(t, shouldSkip("/members", []string{"/health", "/debug/*"}))
}
