package server

import (
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// rateLimiterEntry tracks a per-client limiter with last access time
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// getRateLimiter gets or creates a rate limiter for a client IP
func (s *Server) getRateLimiter(clientIP string) *rate.Limiter {
	if s.RateLimitMbps <= 0 {
		return nil // No rate limiting
	}

	if val, ok := s.rateLimiters.Load(clientIP); ok {
		entry := val.(*rateLimiterEntry)
		// Update last access time
		entry.lastAccess = time.Now()
		return entry.limiter
	}

	// Convert Mbps to bytes per second
	bytesPerSecond := (s.RateLimitMbps * 1_000_000) / 8
	burst := max(
		// 100ms burst
		int(bytesPerSecond/10),
		// Minimum 4KB burst
		4096,
	)

	lim := rate.NewLimiter(rate.Limit(bytesPerSecond), burst)

	entry := &rateLimiterEntry{
		limiter:    lim,
		lastAccess: time.Now(),
	}

	s.rateLimiters.Store(clientIP, entry)
	return lim
}

// cleanupRateLimiters removes stale rate limiters to prevent memory leak
func (s *Server) cleanupRateLimiters() {
	staleThreshold := time.Now().Add(-StaleRateLimiterThreshold)

	s.rateLimiters.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimiterEntry)
		if entry.lastAccess.Before(staleThreshold) {
			s.rateLimiters.Delete(key)
		}
		return true
	})
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (if behind proxy)
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// Take the first IP in the list
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	// Check X-Real-IP header
	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	// Use RemoteAddr
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
