// Package server is the HTTP surface of sitemapd: it exposes the configured
// sitemap prefix plus health and metrics endpoints, and streams resolved
// files with conditional-request and range support.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/repoharbor/sitemapd/internal/journal"
	"github.com/repoharbor/sitemapd/internal/locator"
	"github.com/repoharbor/sitemapd/internal/logging"
)

// Server serves sitemap files over HTTP
type Server struct {
	ListenAddr string
	PathPrefix string // URL segment, e.g. "sitemaps"
	// Disposition threshold in bytes; negative never forces attachment
	DispositionThreshold int64
	RateLimitMbps        float64 // 0 = no limit
	Gzip                 bool
	CacheMaxAge          int // seconds

	Locator *locator.Locator
	Journal *journal.Journal // nil = journal disabled

	httpServer   *http.Server
	rateLimiters sync.Map // clientIP -> *rateLimiterEntry
	// Graceful shutdown support
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// Start initializes and starts the HTTP server. It returns the base sitemap URL.
func (s *Server) Start() (string, error) {
	if s.PathPrefix == "" {
		s.PathPrefix = "sitemaps"
	}

	mux := http.NewServeMux()
	// Health endpoint for realtime status checks
	mux.HandleFunc("/health", s.handleHealth)
	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/"+s.PathPrefix+"/", s.handleSitemap)

	s.httpServer = &http.Server{
		ReadHeaderTimeout: ReadHeaderTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
		MaxHeaderBytes:    1 << 20, // 1MB
		Handler:           mux,
	}

	ln, err := net.Listen("tcp", s.ListenAddr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", s.ListenAddr, err)
	}

	// Wrap with TCP keepalive so dead crawler connections are detected
	tcpListener, ok := ln.(*net.TCPListener)
	if !ok {
		_ = ln.Close()
		return "", fmt.Errorf("expected TCP listener")
	}
	optimizedListener := tcpKeepAliveListener{tcpListener}

	addr := optimizedListener.Addr().String()

	// Initialize shutdown context for graceful termination of background goroutines
	s.shutdownCtx, s.shutdownCancel = context.WithCancel(context.Background())

	go func() {
		_ = s.httpServer.Serve(optimizedListener)
	}()

	// Start rate limiter cleanup routine to prevent memory leak
	go func() {
		ticker := time.NewTicker(RateLimiterCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.cleanupRateLimiters()
			case <-s.shutdownCtx.Done():
				logging.Debug("Stopping rate limiter cleanup goroutine")
				return
			}
		}
	}()

	logging.Info("Sitemap server started",
		zap.String("addr", addr),
		zap.String("prefix", s.PathPrefix),
		zap.String("dir", s.Locator.Dir()))

	return fmt.Sprintf("http://%s/%s/", addr, s.PathPrefix), nil
}

// handleHealth returns a simple JSON payload indicating the server is alive
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	// Prevent caching to ensure fresh status on each request
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	resp := map[string]interface{}{
		"status": "ok",
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown() error {
	// Cancel shutdown context to stop background goroutines
	if s.shutdownCancel != nil {
		s.shutdownCancel()
	}

	if s.httpServer == nil {
		return nil
	}

	// Use context with timeout for graceful HTTP server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// tcpKeepAliveListener sets TCP keepalive on accepted connections
type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, fmt.Errorf("failed to accept TCP connection: %w", err)
	}
	// Enable TCP keepalive to detect dead connections
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(TCPKeepAlivePeriod)
	_ = tc.SetNoDelay(true)

	return tc, nil
}
