package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimingMiddleware(t *testing.T) {
	h := TimingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	require.NotEmpty(t, rec.Header().Get("X-Process-Time"))
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimitMiddleware(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	// Burst is half the window budget; the first request passes, then the
	// bucket is empty.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "60", rec.Header().Get("Retry-After"))

	// A different client IP has its own bucket.
	other := httptest.NewRequest("GET", "/", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	l := newIPLimiter(10, time.Minute)

	l.getLimiter("10.0.0.1")
	l.clients["10.0.0.1"].lastSeen = time.Now().Add(-24 * time.Hour)

	// Inserting a new client sweeps the stale one.
	l.getLimiter("10.0.0.2")
	require.NotContains(t, l.clients, "10.0.0.1")
	require.Contains(t, l.clients, "10.0.0.2")

	// An active client is refreshed, not evicted.
	l.clients["10.0.0.2"].lastSeen = time.Now().Add(-time.Minute)
	l.getLimiter("10.0.0.2")
	l.getLimiter("10.0.0.3")
	require.Contains(t, l.clients, "10.0.0.2")
}
