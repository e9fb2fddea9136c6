package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 10; i++ {
		if !rl.Allow("10.0.0.1", 10, time.Minute) {
			t.Fatalf("attempt %d denied within limit", i+1)
		}
	}
	if rl.Allow("10.0.0.1", 10, time.Minute) {
		t.Error("attempt over limit was allowed")
	}
	if !rl.Allow("10.0.0.2", 10, time.Minute) {
		t.Error("a different key shares the first key's bucket")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 3; i++ {
		rl.Allow("ip", 3, 10*time.Millisecond)
	}
	if rl.Allow("ip", 3, 10*time.Millisecond) {
		t.Error("allowed while the window is still open")
	}

	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("ip", 3, 10*time.Millisecond) {
		t.Error("denied after the window passed")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter()

	rl.Allow("stale", 5, 10*time.Millisecond)
	time.Sleep(15 * time.Millisecond)
	rl.Allow("live", 5, time.Minute)

	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.buckets["stale"]; ok {
		t.Error("stale bucket survived cleanup")
	}
	if _, ok := rl.buckets["live"]; !ok {
		t.Error("live bucket was dropped")
	}
}

func TestRateLimitLogin(t *testing.T) {
	rl := NewRateLimiter()

	login := RateLimit(rl, RealIP, 2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	attempt := func() int {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "192.0.2.7:55001"
		rec := httptest.NewRecorder()
		login.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := attempt(); code != http.StatusOK {
			t.Errorf("attempt %d: status = %d, want %d", i+1, code, http.StatusOK)
		}
	}
	if code := attempt(); code != http.StatusTooManyRequests {
		t.Errorf("throttled attempt: status = %d, want %d", code, http.StatusTooManyRequests)
	}
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.7:55001"
	if got := RealIP(req); got != "192.0.2.7" {
		t.Errorf("RealIP = %q, want 192.0.2.7", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := RealIP(req); got != "203.0.113.9" {
		t.Errorf("RealIP with XFF = %q, want 203.0.113.9", got)
	}

	req.Header.Set("CF-Connecting-IP", "198.51.100.4")
	if got := RealIP(req); got != "198.51.100.4" {
		t.Errorf("RealIP with CF header = %q, want 198.51.100.4", got)
	}
}
