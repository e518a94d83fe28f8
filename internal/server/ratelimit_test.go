package server

import (
	"net/http"
	"testing"
)

func TestGetRateLimiterDisabled(t *testing.T) {
	s := &Server{RateLimitMbps: 0}
	if lim := s.getRateLimiter("192.0.2.1"); lim != nil {
		t.Error("expected nil limiter when rate limiting is disabled")
	}
}

func TestGetRateLimiterReusedPerClient(t *testing.T) {
	s := &Server{RateLimitMbps: 100}

	lim1 := s.getRateLimiter("192.0.2.1")
	lim2 := s.getRateLimiter("192.0.2.1")
	if lim1 == nil || lim1 != lim2 {
		t.Error("expected the same limiter instance for one client IP")
	}

	other := s.getRateLimiter("192.0.2.2")
	if other == lim1 {
		t.Error("expected distinct limiters for distinct clients")
	}
}

func TestCleanupRateLimitersKeepsFresh(t *testing.T) {
	s := &Server{RateLimitMbps: 100}
	_ = s.getRateLimiter("192.0.2.1")

	s.cleanupRateLimiters()

	if _, ok := s.rateLimiters.Load("192.0.2.1"); !ok {
		t.Error("fresh limiter was evicted")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "192.0.2.1:4242", nil, "192.0.2.1"},
		{"forwarded for", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"real ip", "10.0.0.1:80", map[string]string{"X-Real-IP": "203.0.113.9"}, "203.0.113.9"},
	}

	for _, tt := range tests {
		r, err := http.NewRequest(http.MethodGet, "/sitemaps/sitemap0.html", nil)
		if err != nil {
			t.Fatal(err)
		}
		r.RemoteAddr = tt.remoteAddr
		for k, v := range tt.headers {
			r.Header.Set(k, v)
		}

		if got := getClientIP(r); got != tt.want {
			t.Errorf("%s: getClientIP = %s, want %s", tt.name, got, tt.want)
		}
	}
}
