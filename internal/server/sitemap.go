package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/repoharbor/sitemapd/internal/headers"
	"github.com/repoharbor/sitemapd/internal/locator"
	"github.com/repoharbor/sitemapd/internal/logging"
	"github.com/repoharbor/sitemapd/internal/metrics"
)

// handleSitemap resolves and streams one sitemap file. Per request the flow
// is: resolve name, compute headers, flush the journal entry, then stream;
// the journal handle is always released before the first body byte.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	metrics.ActiveDeliveries.Inc()
	defer metrics.ActiveDeliveries.Dec()

	name := strings.TrimPrefix(r.URL.Path, "/"+s.PathPrefix+"/")
	ext := extLabel(name)

	clientIP := getClientIP(r)
	entry := s.Journal.Obtain(clientIP, name)
	// Release on every exit path; Complete is idempotent
	defer entry.Complete()

	cw := &countingWriter{ResponseWriter: w}
	if limiter := s.getRateLimiter(clientIP); limiter != nil {
		cw.limiter = limiter
		metrics.RateLimitedRequests.WithLabelValues(clientIP).Inc()
	}
	defer func() {
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, "/"+s.PathPrefix, fmt.Sprintf("%d", cw.Status())).Inc()
	}()

	fh, err := s.Locator.Locate(name)
	if err != nil {
		s.logLocateFailure(name, err)
		entry.Outcome = "not_found"
		entry.Complete()
		metrics.DeliveriesTotal.WithLabelValues(ext, "not_found").Inc()
		// All lookup failures collapse to 404; no internal paths in the body
		http.Error(cw, "sitemap not found", http.StatusNotFound)
		return
	}

	hdrs, err := headers.Build(headers.Meta{
		Name:        fh.Name,
		Size:        fh.Size,
		ModTime:     fh.ModTime,
		ContentType: headers.ProbeContentType(fh.Path),
	}, headers.Options{
		DispositionThreshold: s.DispositionThreshold,
		CacheMaxAge:          s.CacheMaxAge,
	})
	if err != nil {
		// Malformed header state: send no headers and no body
		logging.Warn("Header computation failed", zap.String("name", fh.Name), zap.Error(err))
		entry.Outcome = "invalid"
		entry.Complete()
		return
	}

	f, err := os.Open(fh.Path)
	if err != nil {
		logging.Warn("Located sitemap file disappeared before open", zap.String("path", fh.Path), zap.Error(err))
		entry.Outcome = "not_found"
		entry.Complete()
		metrics.DeliveriesTotal.WithLabelValues(ext, "not_found").Inc()
		http.Error(cw, "sitemap not found", http.StatusNotFound)
		return
	}
	defer func() { _ = f.Close() }()

	for key, vals := range hdrs {
		for _, v := range vals {
			w.Header().Add(key, v)
		}
	}

	// All the data we need is in hand; flush the journal entry now so the
	// store handle is not held open during a long download
	entry.Resolved = fh.Name
	entry.Size = fh.Size
	entry.Outcome = "ok"
	entry.Complete()

	if s.shouldGzip(r, fh) {
		s.serveGzip(cw, f, fh)
	} else {
		http.ServeContent(cw, r, fh.Name, fh.ModTime, f)
	}

	if cw.Aborted() {
		// The connection is already gone; there is no one left to tell
		logging.Debug("Client aborted the request before the download was completed. "+
			"Client is probably switching to a Range request.",
			zap.String("name", fh.Name), zap.String("client", clientIP))
		metrics.ClientAborts.Inc()
		metrics.DeliveriesTotal.WithLabelValues(ext, "aborted").Inc()
		return
	}

	if cw.Status() == http.StatusPartialContent {
		metrics.RangeDeliveriesTotal.Inc()
	}

	duration := time.Since(startTime).Seconds()
	metrics.DeliveryDuration.WithLabelValues(ext).Observe(duration)
	metrics.DeliverySize.WithLabelValues(ext).Observe(float64(fh.Size))
	metrics.DeliveriesTotal.WithLabelValues(ext, "success").Inc()

	logging.Debug("Served sitemap",
		zap.String("name", fh.Name),
		zap.Int64("size", fh.Size),
		zap.Int("status", cw.Status()),
		zap.Int64("sent", cw.BytesWritten()))
}

// logLocateFailure gives operators distinct messages for states that all
// look like 404 to the client
func (s *Server) logLocateFailure(name string, err error) {
	switch {
	case errors.Is(err, locator.ErrDirectoryMissing):
		logging.Warn("Sitemap directory does not exist; sitemaps have not been "+
			"generated or are located elsewhere",
			zap.String("dir", s.Locator.Dir()), zap.Error(err))
	case errors.Is(err, locator.ErrConflict):
		logging.Warn("Directory with requested sitemap name found, but no file",
			zap.String("name", name), zap.String("dir", s.Locator.Dir()))
	default:
		logging.Debug("Sitemap file not found", zap.String("name", name))
	}
}

// shouldGzip reports whether this request can take the compressed path.
// Conditional and range requests always go through ServeContent instead.
func (s *Server) shouldGzip(r *http.Request, fh *locator.FileHandle) bool {
	if !s.Gzip || fh.Size <= GzipMinSize || !isCompressible(fh.Name) {
		return false
	}
	if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		return false
	}
	for _, h := range []string{"Range", "If-Range", "If-Modified-Since", "If-None-Match"} {
		if r.Header.Get(h) != "" {
			return false
		}
	}
	return true
}

// serveGzip streams the file through a gzip writer
func (s *Server) serveGzip(cw *countingWriter, f *os.File, fh *locator.FileHandle) {
	h := cw.Header()
	h.Set("Content-Encoding", "gzip")
	h.Del("Content-Length") // compressed length is unknown up front
	h.Add("Vary", "Accept-Encoding")

	gz := gzip.NewWriter(cw)
	_, _ = io.Copy(gz, f)
	_ = gz.Close()
}

// isCompressible checks if the file extension indicates compressible content
func isCompressible(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".xml", ".txt":
		return true
	}
	return false
}

// extLabel normalizes a file extension for metric labels
func extLabel(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return "no_ext"
	}
	return ext
}
